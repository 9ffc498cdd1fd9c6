package org

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/dramsim/mem/dram/internal/signal"
)

type fakePacket struct {
	tlx      signal.TLXAddr
	byteSize uint64
	write    bool
	accType  signal.AccessType
	replied  bool
}

func (p *fakePacket) TLXAddr() signal.TLXAddr          { return p.tlx }
func (p *fakePacket) ByteSize() uint64                 { return p.byteSize }
func (p *fakePacket) Address() uint64                  { return 0 }
func (p *fakePacket) IsWrite() bool                    { return p.write }
func (p *fakePacket) AccessType() signal.AccessType    { return p.accType }
func (p *fakePacket) IsTexture() bool                  { return false }
func (p *fakePacket) SubPartitionID() int               { return 0 }
func (p *fakePacket) SetStatus(_ string, _ uint64)      {}
func (p *fakePacket) SetReply()                         { p.replied = true }

func readPacket(bank, row, col int, nbytes uint64) *fakePacket {
	return &fakePacket{
		tlx:      signal.TLXAddr{Chip: 0, Bank: bank, Row: row, Col: col},
		byteSize: nbytes,
		accType:  signal.GlobalRead,
	}
}

var _ = Describe("DramChannel", func() {
	It("activates, reads, drains to the return queue, then unbinds the bank", func() {
		channel := NewDramChannel(0, Timing{
			NBK: 1, NBankGroups: 1,
			BusW: 8, BL: 2, CL: 4, WL: 4,
			DataCommandFreqRatio: 1, DramAtomSize: 16,
			TRCD: 4, TRP: 3, TRAS: 8, TRC: 12, TCCD: 1,
			Scheduler: FIFO,
		}, nil)

		channel.Push(readPacket(0, 5, 0, 16), 0)

		sawAct, sawRd := false, false

		for cycle := uint64(0); cycle < 20; cycle++ {
			channel.Tick()

			if channel.Counters.NAct > 0 {
				sawAct = true
			}

			if channel.Counters.NRd > 0 {
				sawRd = true
			}

			if _, ok := channel.ReturnQueuePeek(); ok {
				break
			}
		}

		Expect(sawAct).To(BeTrue())
		Expect(sawRd).To(BeTrue())
		Expect(channel.banks[0].Bound()).To(BeFalse())

		req, ok := channel.ReturnQueuePeek()
		Expect(ok).To(BeTrue())
		Expect(req.TxBytes).To(Equal(uint64(16)))
	})

	It("never issues more than one command in a single Tick", func() {
		channel := NewDramChannel(0, Timing{
			NBK: 2, NBankGroups: 1,
			BusW: 8, BL: 2, CL: 4, WL: 4,
			DataCommandFreqRatio: 1, DramAtomSize: 16,
			TRCD: 1, TRP: 1, TRAS: 1, TRC: 1, TCCD: 1, TRRD: 0,
			Scheduler: FIFO,
		}, nil)

		channel.Push(readPacket(0, 1, 0, 16), 0)
		channel.Push(readPacket(1, 2, 0, 16), 0)

		totalCmds := 0
		for cycle := 0; cycle < 30; cycle++ {
			before := channel.Counters.NCmd
			channel.Tick()
			issuedThisCycle := channel.Counters.NCmd - before

			Expect(issuedThisCycle).To(BeNumerically("<=", 1))
			totalCmds += issuedThisCycle
		}

		Expect(totalCmds).To(BeNumerically(">", 0))
	})

	It("issues two column commands for a two-atom request, each advancing tx_bytes", func() {
		channel := NewDramChannel(0, Timing{
			NBK: 1, NBankGroups: 1,
			BusW: 8, BL: 2, CL: 4, WL: 4,
			DataCommandFreqRatio: 1, DramAtomSize: 16,
			TRCD: 4, TRP: 3, TRAS: 8, TRC: 12, TCCD: 1,
			Scheduler: FIFO,
		}, nil)

		channel.Push(readPacket(0, 5, 0, 32), 0)

		for cycle := 0; cycle < 20; cycle++ {
			channel.Tick()
		}

		Expect(channel.Counters.NRd).To(Equal(2))

		req, ok := channel.ReturnQueuePeek()
		Expect(ok).To(BeTrue())
		Expect(req.TxBytes).To(Equal(uint64(32)))
	})
})
