package org

import (
	"github.com/sarchlab/dramsim/engine"
	"github.com/sarchlab/dramsim/mem/dram/internal/pipeline"
	"github.com/sarchlab/dramsim/mem/dram/internal/signal"
)

// HookPosCmdIssue fires whenever DramChannel.Tick issues a DRAM command.
var HookPosCmdIssue = &engine.HookPos{Name: "DramCmdIssue"}

// HookPosTick fires once per DramChannel.Tick call, before any command
// is considered, carrying the channel's current MRQ/scheduler
// occupancy as Item — the sample point periodic queue-depth and
// bandwidth-utilization statistics are collected from.
var HookPosTick = &engine.HookPos{Name: "DramTick"}

// Counters accumulates the per-channel statistics the core is required
// to expose for periodic reporting.
type Counters struct {
	NCmd      int
	NActivity int
	NNop      int
	NAct      int
	NPre      int
	NRd       int
	NWr       int
	NReq      int
}

// DramChannel is the per-channel JEDEC timing engine: bank state
// machines, the RWQ delay pipeline, the incoming MRQ, and the return
// queue feeding completed fills back toward the sub-partitions.
type DramChannel struct {
	engine.HookableBase

	id     int
	timing *Timing

	banks  []*Bank
	groups []*BankGroup

	mrq         *fifoQueue[*signal.MemRequest]
	rwq         *pipeline.DelayPipeline[*signal.MemRequest]
	returnQueue *fifoQueue[*signal.MemRequest]

	scheduler RequestScheduler

	rrd, ccd, rtw, wtr int
	rwLast             signal.RwDir
	prio               int

	Counters Counters

	// OnWritebackComplete is invoked when a drained write-back access
	// finishes transferring; the channel has no reference to the owning
	// partition, so this is how it reports completion outward.
	OnWritebackComplete func(req *signal.MemRequest)
}

// NewDramChannel builds a channel with nbk banks split evenly across
// nbkgrp groups, applying the core's defaulting rules (zero return
// queue size becomes 1024, an unset scheduler queue size means
// unbounded).
func NewDramChannel(id int, timing Timing, scheduler RequestScheduler) *DramChannel {
	timing.normalize()

	c := &DramChannel{
		id:          id,
		timing:      &timing,
		mrq:         newFifoQueue[*signal.MemRequest](0),
		rwq:         pipeline.New[*signal.MemRequest]("rwq", timing.CL, timing.RwqCapacity),
		returnQueue: newFifoQueue[*signal.MemRequest](timing.DramReturnQueueSize),
		scheduler:   scheduler,
		rwLast:      signal.Read,
	}

	if timing.Scheduler == FIFO {
		c.mrq = newFifoQueue[*signal.MemRequest](timing.SchedQueueSize)
	}

	c.groups = make([]*BankGroup, timing.NBankGroups)
	for i := range c.groups {
		c.groups[i] = &BankGroup{}
	}

	c.banks = make([]*Bank, timing.NBK)
	for i := range c.banks {
		c.banks[i] = NewBank(i % timing.NBankGroups)
	}

	return c
}

// ID returns the channel's chip/channel index, used to validate that an
// incoming packet was routed to the right channel.
func (c *DramChannel) ID() int { return c.id }

// Banks exposes the bank array for tests and statistics.
func (c *DramChannel) Banks() []*Bank { return c.banks }

// Timing returns the channel's own normalized timing, the copy
// NewDramChannel defaulted (zero return-queue size coerced to 1024,
// and so on) rather than whatever raw value a caller originally
// passed in — callers that need the defaulted sizes for a sibling
// component (e.g. the partition's credit accounting) must read them
// back from here instead of re-deriving their own copy.
func (c *DramChannel) Timing() Timing { return *c.timing }

// Full reports whether the channel can currently accept another push,
// per the scheduler-dependent fullness rule.
func (c *DramChannel) Full() bool {
	switch c.timing.Scheduler {
	case FRFCFS:
		if c.timing.SchedQueueSize == 0 {
			return false
		}

		return c.scheduler.NumPending() >= c.timing.SchedQueueSize
	case FIFO:
		return c.mrq.Full()
	default:
		panic("dram channel: unknown scheduler type")
	}
}

// Push admits a packet into the channel, building the MemRequest that
// will travel MRQ -> scheduler -> bank slot -> RWQ -> return queue.
func (c *DramChannel) Push(pkt signal.Packet, now uint64) {
	addr := pkt.TLXAddr()
	if addr.Chip != c.id {
		panic("dram channel: packet routed to the wrong channel")
	}

	if c.Full() {
		panic("dram channel: push on a full channel")
	}

	req := signal.NewMemRequest(pkt, now)
	c.mrq.Push(req)
	c.Counters.NReq++
}

// Tick runs the channel's fixed four-step algorithm for one cycle and
// reports whether a command issued.
func (c *DramChannel) Tick() bool {
	c.InvokeHook(engine.HookCtx{Domain: c, Pos: HookPosTick, Item: c.NumPending()})

	c.drainRWQ()
	c.schedule()
	issued := c.issueOneCommand()
	c.decrementTimers()

	return issued
}

// NumPending returns the number of requests currently queued ahead of
// any bank, in the MRQ for FIFO mode or the scheduler for FR-FCFS.
func (c *DramChannel) NumPending() int {
	if c.timing.Scheduler == FRFCFS {
		return c.scheduler.NumPending()
	}

	return c.mrq.Len()
}

func (c *DramChannel) drainRWQ() {
	if c.returnQueue.Full() {
		return
	}

	req, present := c.rwq.Pop()
	if !present {
		return
	}

	req.DqBytes += uint64(c.timing.DramAtomSize)

	if !req.DrainComplete() {
		return
	}

	if req.Pkt.AccessType().IsWriteback() {
		if c.OnWritebackComplete != nil {
			c.OnWritebackComplete(req)
		}

		return
	}

	req.Pkt.SetReply()
	c.returnQueue.Push(req)
}

func (c *DramChannel) schedule() {
	switch c.timing.Scheduler {
	case FIFO:
		c.scheduleFIFO()
	case FRFCFS:
		c.scheduleFRFCFS()
	default:
		panic("dram channel: unknown scheduler type")
	}
}

func (c *DramChannel) scheduleFIFO() {
	head, ok := c.mrq.Peek()
	if !ok {
		return
	}

	bank := c.banks[head.Bank]
	if bank.Bound() {
		return
	}

	c.mrq.Pop()
	bank.Bind(head)
}

func (c *DramChannel) scheduleFRFCFS() {
	limit := c.timing.SchedQueueSize

	for limit == 0 || c.scheduler.NumPending() < limit {
		req, ok := c.mrq.Pop()
		if !ok {
			break
		}

		c.scheduler.Add(req)
	}

	nbk := len(c.banks)
	for i := 0; i < nbk; i++ {
		bankID := (c.prio + i) % nbk
		bank := c.banks[bankID]

		if bank.Bound() {
			continue
		}

		req := c.scheduler.Schedule(bankID, bank.CurrRow)
		if req != nil {
			bank.Bind(req)
			break
		}
	}
}

func (c *DramChannel) issueOneCommand() bool {
	issued := false
	activity := 0

	nbk := len(c.banks)
	for i := 0; i < nbk; i++ {
		bankID := (c.prio + i) % nbk
		bank := c.banks[bankID]

		if !bank.Bound() {
			continue
		}

		if !issued && c.tryIssue(bankID) {
			issued = true
			continue
		}

		activity++
	}

	c.Counters.NActivity += activity
	if !issued {
		c.Counters.NNop++
	}

	return issued
}

func (c *DramChannel) tryIssue(bankID int) bool {
	if c.tryRead(bankID) {
		c.InvokeHook(engine.HookCtx{Domain: c, Pos: HookPosCmdIssue, Item: "RD"})
		return true
	}

	if c.tryWrite(bankID) {
		c.InvokeHook(engine.HookCtx{Domain: c, Pos: HookPosCmdIssue, Item: "WR"})
		return true
	}

	if c.tryActivate(bankID) {
		c.InvokeHook(engine.HookCtx{Domain: c, Pos: HookPosCmdIssue, Item: "ACT"})
		return true
	}

	if c.tryPrecharge(bankID) {
		c.InvokeHook(engine.HookCtx{Domain: c, Pos: HookPosCmdIssue, Item: "PRE"})
		return true
	}

	return false
}

func (c *DramChannel) tryRead(bankID int) bool {
	bank := c.banks[bankID]
	mrq := bank.Mrq
	group := c.groups[bank.Group]

	switch {
	case c.ccd != 0,
		bank.Rcd != 0,
		group.Ccdl != 0,
		bank.CurrRow != mrq.Row,
		mrq.RW != signal.Read,
		c.wtr != 0,
		bank.State != Active,
		c.rwq.Full():
		return false
	}

	if c.rwLast == signal.Write {
		c.rwLast = signal.Read
		c.rwq.SetMinLength(c.timing.CL)
	}

	c.rwq.Push(mrq)
	mrq.TxBytes += uint64(c.timing.DramAtomSize)
	bank.NAccess++

	c.ccd = c.timing.TCCD
	group.Ccdl = c.timing.TCCDL
	c.rtw = c.timing.TRTW
	bank.Rtp = c.timing.BL / c.timing.DataCommandFreqRatio
	group.Rtpl = c.timing.TRTPL

	if mrq.ReadComplete() {
		bank.Unbind()
	}

	c.Counters.NRd++
	c.Counters.NCmd++

	return true
}

func (c *DramChannel) tryWrite(bankID int) bool {
	bank := c.banks[bankID]
	mrq := bank.Mrq
	group := c.groups[bank.Group]

	switch {
	case c.ccd != 0,
		bank.RcdWr != 0,
		group.Ccdl != 0,
		bank.CurrRow != mrq.Row,
		mrq.RW != signal.Write,
		c.rtw != 0,
		bank.State != Active,
		c.rwq.Full():
		return false
	}

	if c.rwLast == signal.Read {
		c.rwLast = signal.Write
		c.rwq.SetMinLength(c.timing.WL)
	}

	c.rwq.Push(mrq)
	mrq.TxBytes += uint64(c.timing.DramAtomSize)
	bank.NAccess++

	c.ccd = c.timing.TCCD
	group.Ccdl = c.timing.TCCDL
	c.wtr = c.timing.TWTR
	bank.Wtp = c.timing.TWTP

	if mrq.ReadComplete() {
		bank.Unbind()
	}

	c.Counters.NWr++
	c.Counters.NCmd++

	return true
}

func (c *DramChannel) tryActivate(bankID int) bool {
	bank := c.banks[bankID]
	mrq := bank.Mrq

	if bank.State != Idle || c.rrd != 0 || bank.Rp != 0 || bank.Rc != 0 {
		return false
	}

	bank.CurrRow = mrq.Row
	bank.State = Active

	c.rrd = c.timing.TRRD
	bank.Rcd = c.timing.TRCD
	bank.RcdWr = c.timing.TRCDWR
	bank.Ras = c.timing.TRAS
	bank.Rc = c.timing.TRC

	c.prio = (bankID + 1) % len(c.banks)

	c.Counters.NAct++
	c.Counters.NCmd++

	return true
}

func (c *DramChannel) tryPrecharge(bankID int) bool {
	bank := c.banks[bankID]
	mrq := bank.Mrq
	group := c.groups[bank.Group]

	if bank.State != Active || bank.CurrRow == mrq.Row ||
		bank.Ras != 0 || bank.Wtp != 0 || bank.Rtp != 0 || group.Rtpl != 0 {
		return false
	}

	bank.State = Idle
	bank.Rp = c.timing.TRP

	c.prio = (bankID + 1) % len(c.banks)

	c.Counters.NPre++
	c.Counters.NCmd++

	return true
}

func (c *DramChannel) decrementTimers() {
	c.rrd = satDec(c.rrd)
	c.ccd = satDec(c.ccd)
	c.rtw = satDec(c.rtw)
	c.wtr = satDec(c.wtr)

	for _, b := range c.banks {
		b.decrementTimers()
	}

	for _, g := range c.groups {
		g.decrementTimers()
	}
}

// Busy reports whether the channel has any request in flight: queued,
// bound to a bank, draining through the RWQ, or waiting in the return
// queue. A component driving this channel can stop re-ticking once
// every channel it owns reports idle.
func (c *DramChannel) Busy() bool {
	if c.NumPending() > 0 || c.returnQueue.Len() > 0 || c.rwq.NElement() > 0 {
		return true
	}

	for _, b := range c.banks {
		if b.Bound() {
			return true
		}
	}

	return false
}

// ReturnQueuePeek returns the head of the return queue without removing
// it, for the owning partition's forwarding step.
func (c *DramChannel) ReturnQueuePeek() (*signal.MemRequest, bool) {
	return c.returnQueue.Peek()
}

// ReturnQueuePop removes and returns the head of the return queue.
func (c *DramChannel) ReturnQueuePop() (*signal.MemRequest, bool) {
	return c.returnQueue.Pop()
}
