package engine

import "log"

// HookPosBufPush fires when an element is pushed into a Buffer.
var HookPosBufPush = &HookPos{Name: "BufferPush"}

// HookPosBufPop fires when an element is popped from a Buffer.
var HookPosBufPop = &HookPos{Name: "BufferPop"}

// Buffer is a capacity-bounded FIFO of arbitrary elements. It backs the
// incoming and outgoing message buffers of every Port.
type Buffer interface {
	Named
	Hookable

	CanPush() bool
	Push(e interface{})
	Pop() interface{}
	Peek() interface{}
	Capacity() int
	Size() int
	Clear()
}

type bufferImpl struct {
	HookableBase
	NamedBase

	capacity int
	elements []interface{}
}

// NewBuffer creates a Buffer with the given name and capacity.
func NewBuffer(name string, capacity int) Buffer {
	return &bufferImpl{
		NamedBase: MakeNamedBase(name),
		capacity:  capacity,
	}
}

func (b *bufferImpl) CanPush() bool {
	return len(b.elements) < b.capacity
}

func (b *bufferImpl) Push(e interface{}) {
	if !b.CanPush() {
		log.Panicf("buffer %s overflow", b.Name())
	}

	b.elements = append(b.elements, e)

	if b.NumHooks() > 0 {
		b.InvokeHook(HookCtx{Domain: b, Pos: HookPosBufPush, Item: e})
	}
}

func (b *bufferImpl) Pop() interface{} {
	if len(b.elements) == 0 {
		return nil
	}

	e := b.elements[0]
	b.elements = b.elements[1:]

	if b.NumHooks() > 0 {
		b.InvokeHook(HookCtx{Domain: b, Pos: HookPosBufPop, Item: e})
	}

	return e
}

func (b *bufferImpl) Peek() interface{} {
	if len(b.elements) == 0 {
		return nil
	}

	return b.elements[0]
}

func (b *bufferImpl) Capacity() int { return b.capacity }
func (b *bufferImpl) Size() int     { return len(b.elements) }
func (b *bufferImpl) Clear()        { b.elements = nil }
