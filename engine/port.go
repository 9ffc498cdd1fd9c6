package engine

// HookPosPortSend fires when a message is sent out from a Port.
var HookPosPortSend = &HookPos{Name: "PortSend"}

// HookPosPortRecv fires when a message is delivered to a Port.
var HookPosPortRecv = &HookPos{Name: "PortRecv"}

// SendError marks a failed send or deliver, typically because the
// destination buffer is full. Callers are expected to have already
// checked CanSend/full() — this type exists so the result of a send
// attempt is a value, not a panic, at the one boundary where downstream
// fullness is a normal, expected condition rather than a contract
// violation.
type SendError struct{}

// Port is owned by a Component and is the only way messages cross
// component boundaries.
type Port interface {
	Named
	Hookable

	AsRemote() RemotePort
	SetConnection(conn Connection)
	Component() Component

	Deliver(msg Msg) *SendError
	RetrieveOutgoing() Msg
	PeekOutgoing() Msg
	NotifyAvailable()

	CanSend() bool
	Send(msg Msg) *SendError
	RetrieveIncoming() Msg
	PeekIncoming() Msg
}

type defaultPort struct {
	HookableBase
	NamedBase

	comp Component
	conn Connection

	incoming Buffer
	outgoing Buffer
}

// NewPort creates a Port owned by comp with the given buffer capacities.
func NewPort(comp Component, inCap, outCap int, name string) Port {
	return &defaultPort{
		NamedBase: MakeNamedBase(name),
		comp:      comp,
		incoming:  NewBuffer(name+".Incoming", inCap),
		outgoing:  NewBuffer(name+".Outgoing", outCap),
	}
}

func (p *defaultPort) AsRemote() RemotePort      { return RemotePort(p.Name()) }
func (p *defaultPort) Component() Component      { return p.comp }
func (p *defaultPort) SetConnection(c Connection) { p.conn = c }

func (p *defaultPort) CanSend() bool {
	return p.outgoing.CanPush()
}

func (p *defaultPort) Send(msg Msg) *SendError {
	p.msgMustBeValid(msg)

	if !p.outgoing.CanPush() {
		return &SendError{}
	}

	wasEmpty := p.outgoing.Size() == 0
	p.outgoing.Push(msg)
	p.InvokeHook(HookCtx{Domain: p, Pos: HookPosPortSend, Item: msg})

	if wasEmpty && p.conn != nil {
		p.conn.NotifySend()
	}

	return nil
}

func (p *defaultPort) Deliver(msg Msg) *SendError {
	if !p.incoming.CanPush() {
		return &SendError{}
	}

	wasEmpty := p.incoming.Size() == 0
	p.InvokeHook(HookCtx{Domain: p, Pos: HookPosPortRecv, Item: msg})
	p.incoming.Push(msg)

	if p.comp != nil && wasEmpty {
		p.comp.NotifyRecv(p)
	}

	return nil
}

func (p *defaultPort) RetrieveIncoming() Msg {
	item := p.incoming.Pop()
	if item == nil {
		return nil
	}

	if p.incoming.Size() == p.incoming.Capacity()-1 && p.conn != nil {
		p.conn.NotifyAvailable(p)
	}

	return item.(Msg)
}

func (p *defaultPort) RetrieveOutgoing() Msg {
	item := p.outgoing.Pop()
	if item == nil {
		return nil
	}

	if p.outgoing.Size() == p.outgoing.Capacity()-1 && p.comp != nil {
		p.comp.NotifyPortFree(p)
	}

	return item.(Msg)
}

func (p *defaultPort) PeekIncoming() Msg {
	item := p.incoming.Peek()
	if item == nil {
		return nil
	}

	return item.(Msg)
}

func (p *defaultPort) NotifyAvailable() {
	if p.comp != nil {
		p.comp.NotifyPortFree(p)
	}
}

func (p *defaultPort) PeekOutgoing() Msg {
	item := p.outgoing.Peek()
	if item == nil {
		return nil
	}

	return item.(Msg)
}

func (p *defaultPort) msgMustBeValid(msg Msg) {
	if p.Name() != string(msg.Meta().Src) {
		panic("sending port is not msg src")
	}

	if msg.Meta().Dst == "" {
		panic("message has no destination")
	}

	if msg.Meta().Src == msg.Meta().Dst {
		panic("message sent back to its own source")
	}
}

// PortBuilder builds Ports with a fluent interface.
type PortBuilder struct {
	comp   Component
	inCap  int
	outCap int
}

// WithComponent sets the owning component.
func (b PortBuilder) WithComponent(c Component) PortBuilder {
	b.comp = c
	return b
}

// WithBufferCap sets both the incoming and outgoing buffer capacity.
func (b PortBuilder) WithBufferCap(n int) PortBuilder {
	b.inCap = n
	b.outCap = n
	return b
}

// Build creates the configured Port.
func (b PortBuilder) Build(name string) Port {
	return NewPort(b.comp, b.inCap, b.outCap, name)
}
