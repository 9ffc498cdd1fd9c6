package dram

import (
	"github.com/sarchlab/dramsim/mem/dram/internal/org"
	"github.com/sarchlab/dramsim/mem/dram/internal/signal"
)

// ArbitrationMetadata is the credit accounting that stops one
// sub-partition from saturating the shared scheduler/return-queue
// buffers behind a channel: every sub-partition gets one guaranteed
// private credit, the rest are shared and handed out round-robin from
// whoever last borrowed.
type ArbitrationMetadata struct {
	privateCredit      []int
	privateCreditLimit int

	sharedCredit      int
	sharedCreditLimit int

	lastBorrower int
}

// NewArbitrationMetadata sizes the shared pool from the channel's
// scheduler-queue and return-queue capacities, per the core's
// "sched_queue_size + return_queue_size - (n-1)" formula; either queue
// being unbounded makes the shared pool unbounded too.
func NewArbitrationMetadata(n, schedQueueSize, returnQueueSize int) *ArbitrationMetadata {
	limit := schedQueueSize + returnQueueSize - (n - 1)
	if schedQueueSize == 0 || returnQueueSize == 0 {
		limit = 0
	}

	if limit < 0 {
		panic("arbitration metadata: negative shared credit limit")
	}

	return &ArbitrationMetadata{
		privateCredit:      make([]int, n),
		privateCreditLimit: 1,
		sharedCreditLimit:  limit,
		lastBorrower:       n - 1,
	}
}

// HasCredits reports whether sub-partition spid may borrow a credit.
func (a *ArbitrationMetadata) HasCredits(spid int) bool {
	if a.privateCredit[spid] < a.privateCreditLimit {
		return true
	}

	return a.sharedCreditLimit == 0 || a.sharedCredit < a.sharedCreditLimit
}

// BorrowCredit charges one credit to spid, private pool first.
func (a *ArbitrationMetadata) BorrowCredit(spid int) {
	switch {
	case a.privateCredit[spid] < a.privateCreditLimit:
		a.privateCredit[spid]++
	case a.sharedCreditLimit == 0 || a.sharedCredit < a.sharedCreditLimit:
		a.sharedCredit++
	default:
		panic("arbitration metadata: borrowing from depleted credit")
	}

	a.lastBorrower = spid
}

// ReturnCredit releases one credit from spid, private pool first.
func (a *ArbitrationMetadata) ReturnCredit(spid int) {
	if a.privateCredit[spid] > 0 {
		a.privateCredit[spid]--
		return
	}

	a.sharedCredit--
	if a.sharedCredit < 0 {
		panic("arbitration metadata: returning more than available credits")
	}
}

// LastBorrower returns the sub-partition id most recently granted a
// credit, the round-robin starting point for the next arbitration.
func (a *ArbitrationMetadata) LastBorrower() int { return a.lastBorrower }

type latencyEntry struct {
	pkt   signal.Packet
	ready uint64
}

// MemoryPartition owns one DramChannel and the sub-partitions that
// share it, orchestrating the return path, channel tick, and
// credit-arbitrated admission into the DRAM latency queue every cycle.
type MemoryPartition struct {
	id int

	channel       *org.DramChannel
	subPartitions []*MemorySubPartition

	latencyQueue *boundedQueue[latencyEntry]
	dramLatency  uint64

	arb *ArbitrationMetadata
}

// NewMemoryPartition wires a channel and its sub-partitions together.
// A packet's global sub-partition id maps to local index
// id - partitionID*len(subPartitions).
func NewMemoryPartition(id int, channel *org.DramChannel, subPartitions []*MemorySubPartition, dramLatency uint64, schedQueueSize, returnQueueSize int) *MemoryPartition {
	p := &MemoryPartition{
		id:            id,
		channel:       channel,
		subPartitions: subPartitions,
		latencyQueue:  newBoundedQueue[latencyEntry](0),
		dramLatency:   dramLatency,
		arb:           NewArbitrationMetadata(len(subPartitions), schedQueueSize, returnQueueSize),
	}

	channel.OnWritebackComplete = func(req *signal.MemRequest) {
		spid := p.localSubPartitionIndex(req.Pkt.SubPartitionID())
		p.subPartitions[spid].Done(req.Pkt)
		p.arb.ReturnCredit(spid)
	}

	return p
}

func (p *MemoryPartition) localSubPartitionIndex(globalID int) int {
	return globalID - p.id*len(p.subPartitions)
}

// Channel exposes the owned channel for tests and statistics.
func (p *MemoryPartition) Channel() *org.DramChannel { return p.channel }

// SubPartitions exposes the owned sub-partitions for tests and routing.
func (p *MemoryPartition) SubPartitions() []*MemorySubPartition { return p.subPartitions }

// Full reports whether the owned channel can accept another push.
func (p *MemoryPartition) Full() bool { return p.channel.Full() }

// Busy reports whether the partition has any request in flight: queued
// in the DRAM-latency queue, inside the channel, or still tracked by a
// sub-partition. The owning Comp uses this to know when it can stop
// re-ticking.
func (p *MemoryPartition) Busy() bool {
	if p.channel.Busy() || p.latencyQueue.Len() > 0 {
		return true
	}

	for _, sp := range p.subPartitions {
		if sp.Busy() {
			return true
		}
	}

	return false
}

// DramCycle runs the four ordered steps of one partition cycle: drain
// the return queue toward its destination sub-partition, tick the
// channel, arbitrate a new admission from the sub-partitions, and
// advance the latency queue into the channel.
func (p *MemoryPartition) DramCycle(now uint64) {
	p.drainReturnQueue()
	p.channel.Tick()
	p.arbitrateAdmission(now)
	p.drainLatencyQueue(now)
}

func (p *MemoryPartition) drainReturnQueue() {
	req, present := p.channel.ReturnQueuePeek()
	if !present {
		p.channel.ReturnQueuePop()
		return
	}

	spid := p.localSubPartitionIndex(req.Pkt.SubPartitionID())
	sp := p.subPartitions[spid]

	if sp.DramToL2Full() {
		return
	}

	if req.Pkt.AccessType().IsWriteback() {
		sp.Done(req.Pkt)
	} else {
		sp.DramToL2Push(req.Pkt)
	}

	p.arb.ReturnCredit(spid)
	p.channel.ReturnQueuePop()
}

func (p *MemoryPartition) canIssueToDram(spid int) bool {
	return p.arb.HasCredits(spid) && !p.subPartitions[spid].DramToL2Full()
}

func (p *MemoryPartition) arbitrateAdmission(now uint64) {
	if p.channel.Full() {
		return
	}

	n := len(p.subPartitions)
	last := p.arb.LastBorrower()

	for i := 0; i < n; i++ {
		spid := (last + 1 + i) % n
		sp := p.subPartitions[spid]

		if sp.L2ToDramEmpty() || !p.canIssueToDram(spid) {
			continue
		}

		pkt := sp.L2ToDramPop()
		p.latencyQueue.Push(latencyEntry{pkt: pkt, ready: now + p.dramLatency})
		p.arb.BorrowCredit(spid)

		break
	}
}

func (p *MemoryPartition) drainLatencyQueue(now uint64) {
	entry, ok := p.latencyQueue.Peek()
	if !ok || now < entry.ready || p.channel.Full() {
		return
	}

	p.latencyQueue.Pop()
	p.channel.Push(entry.pkt, now)
}
