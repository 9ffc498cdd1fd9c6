package dram

import (
	"github.com/sarchlab/dramsim/engine"
	"github.com/sarchlab/dramsim/mem/dram/internal/org"
)

// StatsCollector is a Hook that accumulates the periodic counters the
// core is required to expose: command mix, queue-depth extremes, and
// bandwidth utilization, sampled at every DramChannel.Tick and command
// issue.
//
// It is registered on a channel with AcceptHook, the same pattern the
// instrumentation package uses for its own per-domain hooks.
type StatsCollector struct {
	channel *org.DramChannel
	busW    int

	nTicks    uint64
	sumMrqs   uint64
	maxMrqs   int
	bytesMoved uint64
}

// NewStatsCollector builds a collector for channel and registers it as
// one of the channel's hooks; busW is the channel's data bus width in
// bytes, the denominator of bandwidth utilization.
func NewStatsCollector(channel *org.DramChannel, busW int) *StatsCollector {
	s := &StatsCollector{channel: channel, busW: busW}
	channel.AcceptHook(s)

	return s
}

// Func implements engine.Hook, dispatching on the hook position the
// channel invoked it at.
func (s *StatsCollector) Func(ctx engine.HookCtx) {
	switch ctx.Pos {
	case org.HookPosTick:
		s.onTick(ctx)
	case org.HookPosCmdIssue:
		s.onCmdIssue(ctx)
	}
}

func (s *StatsCollector) onTick(ctx engine.HookCtx) {
	pending, ok := ctx.Item.(int)
	if !ok {
		return
	}

	s.nTicks++
	s.sumMrqs += uint64(pending)

	if pending > s.maxMrqs {
		s.maxMrqs = pending
	}
}

func (s *StatsCollector) onCmdIssue(ctx engine.HookCtx) {
	cmd, ok := ctx.Item.(string)
	if !ok {
		return
	}

	if cmd == "RD" || cmd == "WR" {
		s.bytesMoved += uint64(s.busW)
	}
}

// Counters exposes the channel's own command-mix tallies (n_cmd,
// n_activity, n_nop, n_act, n_pre, n_rd, n_wr, n_req) directly, since
// the channel already owns them.
func (s *StatsCollector) Counters() org.Counters { return s.channel.Counters }

// MaxMrqs returns the largest MRQ/scheduler occupancy observed at the
// start of any tick.
func (s *StatsCollector) MaxMrqs() int { return s.maxMrqs }

// AveMrqs returns the mean MRQ/scheduler occupancy across every tick
// observed so far, 0 before the first tick.
func (s *StatsCollector) AveMrqs() float64 {
	if s.nTicks == 0 {
		return 0
	}

	return float64(s.sumMrqs) / float64(s.nTicks)
}

// BandwidthUtilization returns the fraction of ticks that moved a full
// bus-width's worth of data, 0 before the first tick.
func (s *StatsCollector) BandwidthUtilization() float64 {
	if s.nTicks == 0 || s.busW == 0 {
		return 0
	}

	return float64(s.bytesMoved) / float64(s.nTicks*uint64(s.busW))
}

// BankStats reports the access and idle cycle counts collected for
// every bank behind the channel, in bank-index order.
func (s *StatsCollector) BankStats() []BankStat {
	banks := s.channel.Banks()
	stats := make([]BankStat, len(banks))

	for i, b := range banks {
		stats[i] = BankStat{NAccess: b.NAccess, NIdle: b.NIdle}
	}

	return stats
}

// BankStat is one bank's access/idle cycle tally.
type BankStat struct {
	NAccess int
	NIdle   int
}
