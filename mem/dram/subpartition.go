package dram

import "github.com/sarchlab/dramsim/mem/dram/internal/signal"

type ropEntry struct {
	pkt   signal.Packet
	ready uint64
}

// MemorySubPartition owns the four inter-stage queues between the
// interconnect and the DRAM channel, plus a fixed-latency ROP stage for
// non-texture inbound traffic, and drives an L2Cache collaborator
// through cache_cycle.
type MemorySubPartition struct {
	id int

	icntToL2 *boundedQueue[signal.Packet]
	l2ToDram *boundedQueue[signal.Packet]
	dramToL2 *boundedQueue[signal.Packet]
	l2ToIcnt *boundedQueue[signal.Packet]

	rop        *boundedQueue[ropEntry]
	ropLatency uint64

	l2 L2Cache

	tracker map[signal.Packet]struct{}
}

// SubPartitionQueueConfig sizes the four inter-stage FIFOs, mirroring
// the core's "icnt_L2:L2_dram:dram_L2:L2_icnt" configuration string.
type SubPartitionQueueConfig struct {
	IcntToL2 int
	L2ToDram int
	DramToL2 int
	L2ToIcnt int
}

// NewMemorySubPartition builds a sub-partition with the given id,
// queue capacities, ROP latency, and L2Cache collaborator.
func NewMemorySubPartition(id int, cfg SubPartitionQueueConfig, ropLatency uint64, l2 L2Cache) *MemorySubPartition {
	return &MemorySubPartition{
		id:         id,
		icntToL2:   newBoundedQueue[signal.Packet](cfg.IcntToL2),
		l2ToDram:   newBoundedQueue[signal.Packet](cfg.L2ToDram),
		dramToL2:   newBoundedQueue[signal.Packet](cfg.DramToL2),
		l2ToIcnt:   newBoundedQueue[signal.Packet](cfg.L2ToIcnt),
		rop:        newBoundedQueue[ropEntry](0),
		ropLatency: ropLatency,
		l2:         l2,
		tracker:    make(map[signal.Packet]struct{}),
	}
}

// ID returns the sub-partition's global id.
func (s *MemorySubPartition) ID() int { return s.id }

// Full reports whether the sub-partition can accept another Push.
func (s *MemorySubPartition) Full() bool { return s.icntToL2.Full() }

// Busy reports whether any request is still in flight through this
// sub-partition.
func (s *MemorySubPartition) Busy() bool { return len(s.tracker) > 0 }

// Done drops req from the in-flight tracker without routing it further,
// used for write-back accesses that have no reply to deliver upward.
func (s *MemorySubPartition) Done(pkt signal.Packet) {
	delete(s.tracker, pkt)
}

// Push admits a packet from the interconnect: texture accesses go
// straight to the icnt->L2 queue, everything else is delayed by the
// fixed ROP latency first.
func (s *MemorySubPartition) Push(pkt signal.Packet, now uint64) {
	s.tracker[pkt] = struct{}{}

	if pkt.IsTexture() {
		s.icntToL2.Push(pkt)
		return
	}

	s.rop.Push(ropEntry{pkt: pkt, ready: now + s.ropLatency})
}

// Top returns the head of the L2->icnt queue without removing it,
// dropping and discarding a write-back ack in place since those never
// travel upward.
func (s *MemorySubPartition) Top() signal.Packet {
	pkt, ok := s.l2ToIcnt.Peek()
	if !ok {
		return nil
	}

	if pkt.AccessType().IsWriteback() {
		s.l2ToIcnt.Pop()
		delete(s.tracker, pkt)

		return nil
	}

	return pkt
}

// Pop removes and returns the head of the L2->icnt queue, dropping a
// write-back ack in place (it returns nil, matching Top's behavior).
func (s *MemorySubPartition) Pop() signal.Packet {
	pkt, ok := s.l2ToIcnt.Pop()
	if !ok {
		return nil
	}

	delete(s.tracker, pkt)

	if pkt.AccessType().IsWriteback() {
		return nil
	}

	return pkt
}

// L2ToDramEmpty reports whether there is a miss waiting to cross into
// the owning partition's DRAM channel.
func (s *MemorySubPartition) L2ToDramEmpty() bool { return s.l2ToDram.Empty() }

// L2ToDramTop peeks the packet that would be popped next toward DRAM.
func (s *MemorySubPartition) L2ToDramTop() signal.Packet {
	pkt, _ := s.l2ToDram.Peek()
	return pkt
}

// L2ToDramPop removes and returns the head of the L2->dram queue.
func (s *MemorySubPartition) L2ToDramPop() signal.Packet {
	pkt, _ := s.l2ToDram.Pop()
	return pkt
}

// DramToL2Full reports whether the partition can forward another reply
// into this sub-partition.
func (s *MemorySubPartition) DramToL2Full() bool { return s.dramToL2.Full() }

// DramToL2Push admits a completed DRAM reply for this sub-partition to
// drain through cache_cycle.
func (s *MemorySubPartition) DramToL2Push(pkt signal.Packet) { s.dramToL2.Push(pkt) }

// CacheCycle runs one cycle of the L2 clock domain: fill responses,
// DRAM replies crossing into the cache or straight to the interconnect,
// new accesses, and the ROP delay stage, in that fixed order.
func (s *MemorySubPartition) CacheCycle(now uint64) {
	s.drainFillResponses()
	s.routeDramReplies(now)
	s.l2.Cycle()
	s.admitNewAccesses(now)
	s.drainROP(now)
}

func (s *MemorySubPartition) drainFillResponses() {
	if !s.l2.AccessReady() || s.l2ToIcnt.Full() {
		return
	}

	pkt := s.l2.NextAccess()
	if pkt == nil {
		return
	}

	if pkt.AccessType() == signal.L2WriteAllocRead {
		delete(s.tracker, pkt)
		return
	}

	pkt.SetReply()
	s.l2ToIcnt.Push(pkt)
}

func (s *MemorySubPartition) routeDramReplies(now uint64) {
	pkt, ok := s.dramToL2.Peek()
	if !ok {
		return
	}

	if s.l2.WaitingForFill(pkt) {
		if s.l2.FillPortFree() {
			s.l2.Fill(pkt, now)
			s.dramToL2.Pop()
		}

		return
	}

	if !s.l2ToIcnt.Full() {
		s.l2ToIcnt.Push(pkt)
		s.dramToL2.Pop()
	}
}

func (s *MemorySubPartition) admitNewAccesses(now uint64) {
	if s.l2ToDram.Full() || s.icntToL2.Empty() {
		return
	}

	pkt, _ := s.icntToL2.Peek()

	if s.l2ToIcnt.Full() || !s.l2.DataPortFree() {
		return
	}

	status, events := s.l2.Access(pkt.Address(), pkt, now)
	writeSent := hasEvent(events, EventWriteSent)

	switch status {
	case Hit:
		if !writeSent {
			if pkt.AccessType() == signal.L1Writeback {
				delete(s.tracker, pkt)
			} else {
				pkt.SetReply()
				s.l2ToIcnt.Push(pkt)
			}
		}

		s.icntToL2.Pop()
	case Miss:
		if !s.l2ToDram.Full() {
			s.l2ToDram.Push(pkt)
			s.icntToL2.Pop()
		}
	case ReservationFail:
		// L2 is locked up this cycle; retry next cycle.
	}
}

func (s *MemorySubPartition) drainROP(now uint64) {
	entry, ok := s.rop.Peek()
	if !ok || now < entry.ready || s.icntToL2.Full() {
		return
	}

	s.rop.Pop()
	s.icntToL2.Push(entry.pkt)
}

func hasEvent(events []CacheEvent, want CacheEvent) bool {
	for _, e := range events {
		if e == want {
			return true
		}
	}

	return false
}
