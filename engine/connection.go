package engine

// Connection is responsible for delivering messages sent on one Port to
// their destination Port.
type Connection interface {
	Named

	PlugIn(port Port)
	NotifyAvailable(port Port)
	NotifySend()
}

type directConnectionEnd struct {
	port Port
	busy bool
}

// DirectConnection moves messages between plugged-in ports with zero
// additional latency, once per tick. It is the wiring between a DRAM
// Comp's ToOutside port and the components outside it.
type DirectConnection struct {
	*TickingComponent

	ports      []Port
	ends       map[Port]*directConnectionEnd
	nextPortID int
}

// NewDirectConnection creates a DirectConnection driven at freq.
func NewDirectConnection(name string, engine Engine, freq Freq) *DirectConnection {
	c := &DirectConnection{
		ends: make(map[Port]*directConnectionEnd),
	}
	c.TickingComponent = NewSecondaryTickingComponent(name, engine, freq, c)

	return c
}

// PlugIn registers a port with this connection.
func (c *DirectConnection) PlugIn(port Port) {
	c.ports = append(c.ports, port)
	c.ends[port] = &directConnectionEnd{port: port}
	port.SetConnection(c)
}

// NotifyAvailable wakes the connection so it retries a stalled delivery.
func (c *DirectConnection) NotifyAvailable(_ Port) {
	c.TickNow()
}

// NotifySend wakes the connection so it drains a newly non-empty port.
func (c *DirectConnection) NotifySend() {
	c.TickNow()
}

// Tick drains every plugged-in port's outgoing buffer towards its
// destination, round-robin across ports.
func (c *DirectConnection) Tick() bool {
	madeProgress := false

	for i := 0; i < len(c.ports); i++ {
		idx := (i + c.nextPortID) % len(c.ports)
		madeProgress = c.forward(c.ends[c.ports[idx]]) || madeProgress
	}

	if len(c.ports) > 0 {
		c.nextPortID = (c.nextPortID + 1) % len(c.ports)
	}

	return madeProgress
}

func (c *DirectConnection) forward(end *directConnectionEnd) bool {
	madeProgress := false

	for {
		msg := end.port.PeekOutgoing()
		if msg == nil {
			break
		}

		dst := c.portByRemote(msg.Meta().Dst)
		if dst == nil {
			panic("destination port " + string(msg.Meta().Dst) + " is not connected")
		}

		if dst.Deliver(msg) != nil {
			end.busy = true
			break
		}

		end.port.RetrieveOutgoing()
		madeProgress = true

		if end.busy {
			end.port.NotifyAvailable()
			end.busy = false
		}
	}

	return madeProgress
}

func (c *DirectConnection) portByRemote(r RemotePort) Port {
	for _, p := range c.ports {
		if p.AsRemote() == r {
			return p
		}
	}

	return nil
}
