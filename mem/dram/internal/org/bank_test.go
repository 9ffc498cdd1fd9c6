package org

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/dramsim/mem/dram/internal/signal"
)

var _ = Describe("Bank", func() {
	It("refuses to bind a bank that already has a pending request", func() {
		b := NewBank(0)
		b.Bind(&signal.MemRequest{})

		Expect(func() { b.Bind(&signal.MemRequest{}) }).To(Panic())
	})

	It("saturates every timer at zero instead of going negative", func() {
		b := NewBank(0)
		b.Rcd = 1

		b.decrementTimers()
		Expect(b.Rcd).To(Equal(0))

		b.decrementTimers()
		Expect(b.Rcd).To(Equal(0))
	})

	It("tallies an idle cycle only while unbound and Idle", func() {
		b := NewBank(0)

		b.decrementTimers()
		Expect(b.NIdle).To(Equal(1))

		b.Bind(&signal.MemRequest{})
		b.decrementTimers()
		Expect(b.NIdle).To(Equal(1))

		b.Unbind()
		b.State = Active
		b.decrementTimers()
		Expect(b.NIdle).To(Equal(1))
	})
})

var _ = Describe("BankGroup", func() {
	It("saturates its timers at zero", func() {
		g := &BankGroup{Ccdl: 1, Rtpl: 0}

		g.decrementTimers()
		Expect(g.Ccdl).To(Equal(0))
		Expect(g.Rtpl).To(Equal(0))
	})
})
