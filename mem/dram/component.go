package dram

import (
	"github.com/sarchlab/dramsim/engine"
	"github.com/sarchlab/dramsim/mem"
)

// Comp is the engine-facing memory partition: one DramChannel and its
// sub-partitions, reachable through a single port that carries both
// incoming ReadReq/WriteReq traffic and outgoing DataReadyRsp/
// WriteDoneRsp replies.
type Comp struct {
	*engine.TickingComponent
	middleware engine.MiddlewareHolder

	ToOutside engine.Port

	partition *MemoryPartition
	decoder   AddressDecoder

	// Stats is nil until a Builder wires it up; tests that build a Comp
	// directly are free to leave it unset.
	Stats *StatsCollector
}

// NewComp wraps partition behind an engine component ticking at freq,
// decoding incoming packets through decoder and replying on ToOutside.
func NewComp(name string, e engine.Engine, freq engine.Freq, partition *MemoryPartition, decoder AddressDecoder) *Comp {
	c := &Comp{partition: partition, decoder: decoder}
	c.TickingComponent = engine.NewTickingComponent(name, e, freq, c)
	c.ToOutside = engine.NewPort(c, 16, 16, name+".ToOutside")
	c.AddPort(name+".ToOutside", c.ToOutside)

	c.middleware.AddMiddleware(tickFunc(c.parseIncoming))
	c.middleware.AddMiddleware(tickFunc(c.tickDomains))
	c.middleware.AddMiddleware(tickFunc(c.sendReplies))

	return c
}

// tickFunc adapts a bool-returning closure to engine.Middleware.
type tickFunc func() bool

func (f tickFunc) Tick() bool { return f() }

// Tick runs the component's three middlewares once: accept new
// requests from the interconnect, advance both clock domains, then
// flush completed replies.
func (c *Comp) Tick() bool {
	return c.middleware.Tick()
}

// Partition exposes the wrapped MemoryPartition for builders and tests.
func (c *Comp) Partition() *MemoryPartition { return c.partition }

func (c *Comp) now() uint64 { return c.Freq.Cycle(c.CurrentTime()) }

func (c *Comp) parseIncoming() bool {
	msg := c.ToOutside.PeekIncoming()
	if msg == nil {
		return false
	}

	req, ok := msg.(mem.AccessReq)
	if !ok {
		return false
	}

	pkt := newRequestPacket(req, c.decoder)

	sp := c.subPartitionFor(pkt)
	if sp == nil || sp.Full() {
		return false
	}

	c.ToOutside.RetrieveIncoming()
	sp.Push(pkt, c.now())

	return true
}

func (c *Comp) subPartitionFor(pkt *requestPacket) *MemorySubPartition {
	for _, sp := range c.partition.SubPartitions() {
		if sp.ID() == pkt.subPartitionID {
			return sp
		}
	}

	return nil
}

func (c *Comp) tickDomains() bool {
	now := c.now()

	for _, sp := range c.partition.SubPartitions() {
		sp.CacheCycle(now)
	}

	c.partition.DramCycle(now)

	return c.partition.Busy()
}

func (c *Comp) sendReplies() bool {
	progress := false

	for _, sp := range c.partition.SubPartitions() {
		pkt := sp.Pop()
		if pkt == nil {
			continue
		}

		rp, ok := pkt.(*requestPacket)
		if !ok {
			continue
		}

		rsp := buildReply(rp)
		if c.ToOutside.Send(rsp) == nil {
			progress = true
		}
	}

	return progress
}

func buildReply(rp *requestPacket) engine.Msg {
	meta := rp.Req.Meta()

	if rp.write {
		return &mem.WriteDoneRsp{
			MsgMeta:   engine.MsgMeta{ID: engine.GetIDGenerator().Generate(), Src: meta.Dst, Dst: meta.Src},
			RespondTo: meta.ID,
		}
	}

	return &mem.DataReadyRsp{
		MsgMeta:   engine.MsgMeta{ID: engine.GetIDGenerator().Generate(), Src: meta.Dst, Dst: meta.Src},
		RespondTo: meta.ID,
	}
}
