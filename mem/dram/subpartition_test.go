package dram

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/dramsim/mem/dram/internal/signal"
)

func nonTexturePacket(accessType signal.AccessType) *requestPacketForTest {
	return &requestPacketForTest{
		tlx:     signal.TLXAddr{Bank: 0, Row: 0, Col: 0},
		accType: accessType,
	}
}

var _ = Describe("MemorySubPartition", func() {
	It("delays a non-texture push by rop_latency before it reaches icnt->L2", func() {
		sp := NewMemorySubPartition(0, SubPartitionQueueConfig{
			IcntToL2: 4, L2ToDram: 4, DramToL2: 4, L2ToIcnt: 4,
		}, 3, NewSimpleL2())

		pkt := nonTexturePacket(signal.GlobalRead)
		sp.Push(pkt, 0)

		Expect(sp.icntToL2.Empty()).To(BeTrue())

		sp.drainROP(2)
		Expect(sp.icntToL2.Empty()).To(BeTrue())

		sp.drainROP(3)
		Expect(sp.icntToL2.Empty()).To(BeFalse())
	})

	It("forwards a miss from icnt->L2 onto L2->dram and marks it in flight", func() {
		sp := NewMemorySubPartition(0, SubPartitionQueueConfig{
			IcntToL2: 4, L2ToDram: 4, DramToL2: 4, L2ToIcnt: 4,
		}, 0, NewSimpleL2())

		pkt := nonTexturePacket(signal.GlobalRead)
		sp.Push(pkt, 0)
		sp.drainROP(0)

		sp.admitNewAccesses(0)

		Expect(sp.icntToL2.Empty()).To(BeTrue())
		Expect(sp.l2ToDram.Empty()).To(BeFalse())
		Expect(sp.Busy()).To(BeTrue())
	})

	It("fills a returning read through the L2 and delivers it on L2->icnt", func() {
		sp := NewMemorySubPartition(0, SubPartitionQueueConfig{
			IcntToL2: 4, L2ToDram: 4, DramToL2: 4, L2ToIcnt: 4,
		}, 0, NewSimpleL2())

		pkt := nonTexturePacket(signal.GlobalRead)
		sp.Push(pkt, 0)
		sp.drainROP(0)
		sp.admitNewAccesses(0)

		sp.DramToL2Push(pkt)

		for i := 0; i < 3; i++ {
			sp.CacheCycle(uint64(i))
		}

		Expect(sp.Top()).To(Equal(signal.Packet(pkt)))
	})

	It("drops a write-back reply silently instead of delivering it upward", func() {
		sp := NewMemorySubPartition(0, SubPartitionQueueConfig{
			IcntToL2: 4, L2ToDram: 4, DramToL2: 4, L2ToIcnt: 4,
		}, 0, NewSimpleL2())

		pkt := nonTexturePacket(signal.L1Writeback)
		sp.tracker[pkt] = struct{}{}
		sp.l2ToIcnt.Push(pkt)

		Expect(sp.Pop()).To(BeNil())
		Expect(sp.Busy()).To(BeFalse())
	})
})
