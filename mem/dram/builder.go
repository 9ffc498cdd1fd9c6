package dram

import (
	"strconv"

	"github.com/sarchlab/dramsim/engine"
	"github.com/sarchlab/dramsim/mem/dram/internal/org"
	"github.com/sarchlab/dramsim/mem/dram/internal/sched"
)

// TimingConfig collects every JEDEC-style and structural knob a channel
// is built from: bank/group geometry, burst sizing, the named timing
// parameters, and the scheduler discipline that drives command issue.
type TimingConfig struct {
	NBK         int
	NBankGroups int
	BusW        int
	BL          int
	CL          int
	WL          int

	DataCommandFreqRatio int
	DramAtomSize         int

	TRRD   int
	TCCD   int
	TCCDL  int
	TRCD   int
	TRCDWR int
	TRAS   int
	TRP    int
	TRC    int
	TRTW   int
	TWTR   int
	TWTP   int
	TRTP   int
	TRTPL  int

	SchedQueueSize      int
	DramReturnQueueSize int

	Scheduler org.SchedulerType
}

// BkTagLength returns log2(nbk/nbkgrp), the number of address bits the
// bank-within-group tag consumes, derived rather than stored since it
// is fully determined by NBK and NBankGroups.
func (c TimingConfig) BkTagLength() int {
	perGroup := c.NBK / c.NBankGroups

	bits := 0
	for perGroup > 1 {
		perGroup >>= 1
		bits++
	}

	return bits
}

func (c TimingConfig) toOrgTiming() org.Timing {
	return org.Timing{
		NBK:                  c.NBK,
		NBankGroups:          c.NBankGroups,
		BkTagLength:          c.BkTagLength(),
		BusW:                 c.BusW,
		BL:                   c.BL,
		CL:                   c.CL,
		WL:                   c.WL,
		DataCommandFreqRatio: c.DataCommandFreqRatio,
		DramAtomSize:         c.DramAtomSize,
		TRRD:                 c.TRRD,
		TCCD:                 c.TCCD,
		TCCDL:                c.TCCDL,
		TRCD:                 c.TRCD,
		TRCDWR:               c.TRCDWR,
		TRAS:                 c.TRAS,
		TRP:                  c.TRP,
		TRC:                  c.TRC,
		TRTW:                 c.TRTW,
		TWTR:                 c.TWTR,
		TWTP:                 c.TWTP,
		TRTP:                 c.TRTP,
		TRTPL:                c.TRTPL,
		SchedQueueSize:       c.SchedQueueSize,
		DramReturnQueueSize:  c.DramReturnQueueSize,
		Scheduler:            c.Scheduler,
	}
}

// L2QueueConfig sizes the four inter-stage FIFOs every sub-partition
// owns, matching the "icnt_L2:L2_dram:dram_L2:L2_icnt" configuration
// string the core is configured from.
type L2QueueConfig struct {
	IcntToL2 int
	L2ToDram int
	DramToL2 int
	L2ToIcnt int
}

func (c L2QueueConfig) toSubPartitionConfig() SubPartitionQueueConfig {
	return SubPartitionQueueConfig{
		IcntToL2: c.IcntToL2,
		L2ToDram: c.L2ToDram,
		DramToL2: c.DramToL2,
		L2ToIcnt: c.L2ToIcnt,
	}
}

// Builder assembles a full set of memory-partition engine components
// from the configuration knobs the core exposes: one DramChannel and
// its scheduler per memory channel, a MemoryPartition wrapping each,
// numSubPartitionsPerChannel MemorySubPartitions apiece, and a Comp
// wiring each partition into the engine.
type Builder struct {
	engine engine.Engine
	freq   engine.Freq

	timing  TimingConfig
	l2Queue L2QueueConfig

	nMem                     int
	nSubPartitionsPerChannel int
	dramLatency              uint64
	ropLatency               uint64

	decoder AddressDecoder

	// newL2Cache builds the L2Cache collaborator for one sub-partition,
	// given its global id. A nil factory falls back to SimpleL2.
	newL2Cache func(subPartitionID int) L2Cache

	hooks []engine.Hook
}

// MakeBuilder creates a builder with a single-channel, single-sub-
// partition default configuration; every knob can be overridden with
// the With* methods before calling Build.
func MakeBuilder() Builder {
	return Builder{
		freq: 1 * engine.GHz,
		timing: TimingConfig{
			NBK:                  16,
			NBankGroups:          4,
			BusW:                 8,
			BL:                   8,
			CL:                   12,
			WL:                   12,
			DataCommandFreqRatio: 2,
			DramAtomSize:         32,
			TRRD:                 4,
			TCCD:                 4,
			TCCDL:                4,
			TRCD:                 12,
			TRCDWR:               10,
			TRAS:                 28,
			TRP:                  12,
			TRC:                  40,
			TRTW:                 4,
			TWTR:                 4,
			TWTP:                 4,
			TRTP:                 4,
			TRTPL:                4,
			SchedQueueSize:       16,
			DramReturnQueueSize:  1024,
			Scheduler:            org.FRFCFS,
		},
		l2Queue:                  L2QueueConfig{IcntToL2: 32, L2ToDram: 32, DramToL2: 32, L2ToIcnt: 32},
		nMem:                     1,
		nSubPartitionsPerChannel: 1,
		dramLatency:              1,
		ropLatency:               0,
	}
}

// WithEngine sets the engine the built components run on.
func (b Builder) WithEngine(e engine.Engine) Builder {
	b.engine = e
	return b
}

// WithFreq sets the frequency each built Comp ticks at.
func (b Builder) WithFreq(freq engine.Freq) Builder {
	b.freq = freq
	return b
}

// WithTiming sets the JEDEC-style timing and structural knobs every
// channel is built from, replacing the defaults wholesale.
func (b Builder) WithTiming(timing TimingConfig) Builder {
	b.timing = timing
	return b
}

// WithL2Queue sets the sizes of the four inter-stage FIFOs every
// sub-partition owns.
func (b Builder) WithL2Queue(l2Queue L2QueueConfig) Builder {
	b.l2Queue = l2Queue
	return b
}

// WithNumChannels sets the number of memory channels (and therefore
// the number of Comps Build returns).
func (b Builder) WithNumChannels(n int) Builder {
	b.nMem = n
	return b
}

// WithNumSubPartitionsPerChannel sets how many MemorySubPartitions
// each channel's MemoryPartition drives.
func (b Builder) WithNumSubPartitionsPerChannel(n int) Builder {
	b.nSubPartitionsPerChannel = n
	return b
}

// WithDramLatency sets the fixed latency, in cycles, a request spends
// in the partition's DRAM-access latency queue before becoming ready.
func (b Builder) WithDramLatency(cycles uint64) Builder {
	b.dramLatency = cycles
	return b
}

// WithRopLatency sets the fixed latency, in cycles, a request spends
// in a sub-partition's ROP delay stage.
func (b Builder) WithRopLatency(cycles uint64) Builder {
	b.ropLatency = cycles
	return b
}

// WithDecoder sets the address decoder every built Comp routes
// incoming requests through.
func (b Builder) WithDecoder(decoder AddressDecoder) Builder {
	b.decoder = decoder
	return b
}

// WithL2CacheFactory sets the per-sub-partition L2Cache factory. Not
// calling this leaves every sub-partition running behind a SimpleL2
// stand-in.
func (b Builder) WithL2CacheFactory(f func(subPartitionID int) L2Cache) Builder {
	b.newL2Cache = f
	return b
}

// WithAdditionalHooks registers hook on every channel Build constructs,
// in addition to the StatsCollector every channel already carries.
func (b Builder) WithAdditionalHooks(hook engine.Hook) Builder {
	b.hooks = append(b.hooks, hook)
	return b
}

// Build constructs nMem Comp components, one per memory channel, each
// driving nSubPartitionsPerChannel sub-partitions.
func (b Builder) Build() []*Comp {
	if b.newL2Cache == nil {
		b.newL2Cache = func(int) L2Cache { return NewSimpleL2() }
	}

	comps := make([]*Comp, b.nMem)

	for ch := 0; ch < b.nMem; ch++ {
		comps[ch] = b.buildChannel(ch)
	}

	return comps
}

func (b Builder) buildChannel(ch int) *Comp {
	timing := b.timing.toOrgTiming()

	var scheduler org.RequestScheduler
	if timing.Scheduler == org.FRFCFS {
		scheduler = sched.NewFrFcfsScheduler(timing.NBK)
	}

	channel := org.NewDramChannel(ch, timing, scheduler)
	timing = channel.Timing()

	subPartitions := make([]*MemorySubPartition, b.nSubPartitionsPerChannel)
	for i := range subPartitions {
		spid := ch*b.nSubPartitionsPerChannel + i
		subPartitions[i] = NewMemorySubPartition(
			spid,
			b.l2Queue.toSubPartitionConfig(),
			b.ropLatency,
			b.newL2Cache(spid),
		)
	}

	partition := NewMemoryPartition(
		ch,
		channel,
		subPartitions,
		b.dramLatency,
		timing.SchedQueueSize,
		timing.DramReturnQueueSize,
	)

	name := "MemoryPartition"
	if b.nMem > 1 {
		name = name + "." + strconv.Itoa(ch)
	}

	comp := NewComp(name, b.engine, b.freq, partition, b.decoder)
	comp.Stats = NewStatsCollector(channel, b.timing.BusW)

	for _, hook := range b.hooks {
		channel.AcceptHook(hook)
	}

	return comp
}
