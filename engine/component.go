package engine

// Component is a simulated element that communicates through Ports and
// reacts to Handler events.
type Component interface {
	Named
	Handler
	Hookable
	PortOwner

	NotifyRecv(port Port)
	NotifyPortFree(port Port)
}

// ComponentBase provides the bookkeeping shared by all components.
type ComponentBase struct {
	NamedBase
	HookableBase
	PortOwnerBase
}

// NewComponentBase creates a ComponentBase with the given name.
func NewComponentBase(name string) *ComponentBase {
	return &ComponentBase{
		NamedBase:     MakeNamedBase(name),
		PortOwnerBase: MakePortOwnerBase(),
	}
}
