package dram

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/dramsim/mem/dram/internal/org"
	"github.com/sarchlab/dramsim/mem/dram/internal/signal"
)

var _ = Describe("ArbitrationMetadata", func() {
	It("sizes the shared pool from sched and return queue capacities", func() {
		a := NewArbitrationMetadata(2, 8, 8)

		Expect(a.sharedCreditLimit).To(Equal(15))
	})

	It("treats either queue being unbounded as an unbounded shared pool", func() {
		a := NewArbitrationMetadata(2, 0, 8)

		Expect(a.sharedCreditLimit).To(Equal(0))
		Expect(a.HasCredits(0)).To(BeTrue())

		a.BorrowCredit(0)
		a.BorrowCredit(0)
		Expect(a.HasCredits(0)).To(BeTrue())
	})

	It("spends the private credit before touching the shared pool", func() {
		a := NewArbitrationMetadata(2, 8, 8)

		a.BorrowCredit(0)
		Expect(a.privateCredit[0]).To(Equal(1))
		Expect(a.sharedCredit).To(Equal(0))

		a.BorrowCredit(0)
		Expect(a.privateCredit[0]).To(Equal(1))
		Expect(a.sharedCredit).To(Equal(1))
	})

	It("returns credits to the same pool they were borrowed from", func() {
		a := NewArbitrationMetadata(2, 8, 8)

		a.BorrowCredit(0)
		a.BorrowCredit(0)

		a.ReturnCredit(0)
		Expect(a.privateCredit[0]).To(Equal(0))
		Expect(a.sharedCredit).To(Equal(1))

		a.ReturnCredit(0)
		Expect(a.sharedCredit).To(Equal(0))
	})

	It("panics when returning more credits than were borrowed", func() {
		a := NewArbitrationMetadata(2, 8, 8)

		Expect(func() { a.ReturnCredit(0) }).To(Panic())
	})

	It("tracks the last borrower for round-robin arbitration", func() {
		a := NewArbitrationMetadata(3, 8, 8)

		a.BorrowCredit(1)
		Expect(a.LastBorrower()).To(Equal(1))

		a.BorrowCredit(2)
		Expect(a.LastBorrower()).To(Equal(2))
	})
})

func newTestPartition(n int) (*MemoryPartition, []*MemorySubPartition) {
	channel := org.NewDramChannel(0, org.Timing{
		NBK: 4, NBankGroups: 1,
		BusW: 8, BL: 2, CL: 4, WL: 4,
		DataCommandFreqRatio: 1, DramAtomSize: 16,
		TRCD: 1, TRP: 1, TRAS: 1, TRC: 1, TCCD: 1,
		SchedQueueSize:      8,
		DramReturnQueueSize: 8,
		Scheduler:           org.FIFO,
	}, nil)

	subs := make([]*MemorySubPartition, n)
	for i := range subs {
		subs[i] = NewMemorySubPartition(i, SubPartitionQueueConfig{
			IcntToL2: 8, L2ToDram: 8, DramToL2: 8, L2ToIcnt: 8,
		}, 0, NewSimpleL2())
	}

	partition := NewMemoryPartition(0, channel, subs, 1, 8, 8)

	return partition, subs
}

var _ = Describe("MemoryPartition admission arbitration", func() {
	It("alternates admission between sub-partitions with pending misses", func() {
		partition, subs := newTestPartition(2)

		subs[0].l2ToDram.Push(readPacket(0, 1, 0, 16))
		subs[1].l2ToDram.Push(readPacket(1, 1, 0, 16))

		partition.arbitrateAdmission(0)
		firstGrant := partition.arb.LastBorrower()

		partition.arbitrateAdmission(0)
		secondGrant := partition.arb.LastBorrower()

		Expect(firstGrant).NotTo(Equal(secondGrant))
	})

	It("skips a sub-partition with no pending miss and admits the other", func() {
		partition, subs := newTestPartition(2)

		subs[1].l2ToDram.Push(readPacket(1, 1, 0, 16))

		partition.arbitrateAdmission(0)

		Expect(subs[1].l2ToDram.Empty()).To(BeTrue())
		entry, ok := partition.latencyQueue.Peek()
		Expect(ok).To(BeTrue())
		Expect(entry.pkt.TLXAddr().Bank).To(Equal(1))
	})
})

func readPacket(bank, row, col int, nbytes uint64) signal.Packet {
	return &requestPacketForTest{
		tlx:      signal.TLXAddr{Chip: 0, Bank: bank, Row: row, Col: col},
		byteSize: nbytes,
	}
}

type requestPacketForTest struct {
	tlx      signal.TLXAddr
	byteSize uint64
	accType  signal.AccessType
	texture  bool
	replied  bool
}

func (p *requestPacketForTest) TLXAddr() signal.TLXAddr { return p.tlx }
func (p *requestPacketForTest) ByteSize() uint64        { return p.byteSize }
func (p *requestPacketForTest) Address() uint64         { return 0 }
func (p *requestPacketForTest) IsWrite() bool           { return false }

func (p *requestPacketForTest) AccessType() signal.AccessType { return p.accType }

func (p *requestPacketForTest) IsTexture() bool               { return p.texture }
func (p *requestPacketForTest) SubPartitionID() int            { return p.tlx.Bank }
func (p *requestPacketForTest) SetStatus(_ string, _ uint64)   {}
func (p *requestPacketForTest) SetReply()                      { p.replied = true }
