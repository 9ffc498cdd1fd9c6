package engine

import "sort"

// PortOwner is implemented by anything that exposes named Ports.
type PortOwner interface {
	AddPort(name string, port Port)
	GetPortByName(name string) Port
	Ports() []Port
}

// PortOwnerBase implements PortOwner.
type PortOwnerBase struct {
	ports map[string]Port
}

// MakePortOwnerBase creates an empty PortOwnerBase.
func MakePortOwnerBase() PortOwnerBase {
	return PortOwnerBase{ports: make(map[string]Port)}
}

// AddPort registers a port under the given name.
func (po *PortOwnerBase) AddPort(name string, port Port) {
	if po.ports == nil {
		po.ports = make(map[string]Port)
	}

	if _, found := po.ports[name]; found {
		panic("port " + name + " already exists")
	}

	po.ports[name] = port
}

// GetPortByName returns a previously registered port, panicking if it is
// not found.
func (po PortOwnerBase) GetPortByName(name string) Port {
	port, found := po.ports[name]
	if !found {
		panic("port " + name + " not found")
	}

	return port
}

// Ports returns every registered port, ordered by name.
func (po PortOwnerBase) Ports() []Port {
	names := make([]string, 0, len(po.ports))
	for n := range po.ports {
		names = append(names, n)
	}

	sort.Strings(names)

	ports := make([]Port, 0, len(names))
	for _, n := range names {
		ports = append(ports, po.ports[n])
	}

	return ports
}
