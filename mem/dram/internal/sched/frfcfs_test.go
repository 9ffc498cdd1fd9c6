package sched

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/dramsim/mem/dram/internal/signal"
)

func reqOn(bank, row int) *signal.MemRequest {
	return &signal.MemRequest{Bank: bank, Row: row, NBytes: 16}
}

var _ = Describe("FrFcfsScheduler", func() {
	It("prefers a row hit over an older request on a different row", func() {
		s := NewFrFcfsScheduler(2)

		a := reqOn(0, 1)
		b := reqOn(0, 2)
		c := reqOn(0, 1)

		s.Add(a)
		s.Add(b)
		s.Add(c)

		first := s.Schedule(0, 1)
		Expect(first).To(Equal(a))

		second := s.Schedule(0, 1)
		Expect(second).To(Equal(c))

		third := s.Schedule(0, 2)
		Expect(third).To(Equal(b))

		Expect(s.NumPending()).To(Equal(0))
	})

	It("falls back to the oldest pending request when the open row has no hit", func() {
		s := NewFrFcfsScheduler(1)

		a := reqOn(0, 1)
		b := reqOn(0, 2)

		s.Add(a)
		s.Add(b)

		req := s.Schedule(0, 99)
		Expect(req).To(Equal(a))
	})

	It("reports no request pending on an empty bank", func() {
		s := NewFrFcfsScheduler(1)

		Expect(s.Schedule(0, 0)).To(BeNil())
	})

	It("invokes OnRowSwitch when a bank is pulled off its serviced row", func() {
		s := NewFrFcfsScheduler(1)

		switches := 0
		s.OnRowSwitch = func(bank int) { switches++ }

		s.Add(reqOn(0, 1))
		s.Schedule(0, 1)

		s.Add(reqOn(0, 2))
		s.Schedule(0, 5)

		Expect(switches).To(Equal(1))
	})
})
