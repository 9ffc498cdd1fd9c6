package pipeline

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("DelayPipeline", func() {
	It("drains pushed payloads in order when min length is zero", func() {
		p := New[int]("rwq", 0, 4)

		p.Push(1)
		p.Push(2)

		v, ok := p.Pop()
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(1))

		v, ok = p.Pop()
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(2))

		_, ok = p.Pop()
		Expect(ok).To(BeFalse())

		Expect(p.Length()).To(Equal(0))
	})

	It("holds a payload behind bubbles until min length elapses", func() {
		p := New[int]("rwq", 3, 8)
		Expect(p.Length()).To(Equal(3))

		p.Push(7)
		Expect(p.Length()).To(Equal(3))

		for i := 0; i < 2; i++ {
			_, ok := p.Pop()
			Expect(ok).To(BeFalse())
		}

		v, ok := p.Pop()
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(7))
	})

	It("panics when pushed past max length", func() {
		p := New[int]("rwq", 0, 1)
		p.Push(1)

		Expect(func() { p.Push(2) }).To(Panic())
	})

	It("panics when max length is zero at construction", func() {
		Expect(func() { New[int]("rwq", 0, 0) }).To(Panic())
	})

	It("grows min length by appending bubbles without disturbing payloads", func() {
		p := New[int]("rwq", 0, 8)
		p.Push(1)

		p.SetMinLength(4)
		Expect(p.Length()).To(Equal(4))

		v, ok := p.Top()
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(1))
	})

	It("panics growing min length past max length", func() {
		p := New[int]("rwq", 0, 2)

		Expect(func() { p.SetMinLength(3) }).To(Panic())
	})

	It("shrinks min length by dropping trailing bubbles only", func() {
		p := New[int]("rwq", 4, 8)
		p.SetMinLength(1)

		Expect(p.Length()).To(Equal(1))
	})

	It("reports NElement counting only present payloads", func() {
		p := New[int]("rwq", 2, 8)
		p.Push(1)
		p.Push(2)

		Expect(p.NElement()).To(Equal(2))
		Expect(p.Length()).To(Equal(3))
	})
})
