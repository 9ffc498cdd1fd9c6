package org

// SchedulerType selects which request scheduler a channel runs.
type SchedulerType int

// The two scheduler disciplines the channel understands.
const (
	FIFO SchedulerType = iota
	FRFCFS
)

// Timing collects every JEDEC-style knob the channel's command-issue
// logic is gated by, plus the structural parameters (bank/group count,
// burst geometry, queue sizing) needed to build one.
type Timing struct {
	NBK                  int
	NBankGroups          int
	BkTagLength          int
	BusW                 int
	BL                   int
	CL                   int
	WL                   int
	DataCommandFreqRatio int
	DramAtomSize         int

	TRRD  int
	TCCD  int
	TCCDL int
	TRCD  int
	TRCDWR int
	TRAS  int
	TRP   int
	TRC   int
	TRTW  int
	TWTR  int
	TWTP  int
	TRTP  int
	TRTPL int

	SchedQueueSize      int
	DramReturnQueueSize int
	RwqCapacity         int

	Scheduler SchedulerType
}

// normalize applies the defaulting rules the core recognizes: a zero
// return-queue size means "use 1024", not "use zero capacity".
func (t *Timing) normalize() {
	if t.DramReturnQueueSize == 0 {
		t.DramReturnQueueSize = 1024
	}

	if t.NBK == 0 {
		t.NBK = 1
	}

	if t.NBankGroups == 0 {
		t.NBankGroups = 1
	}

	if t.DataCommandFreqRatio == 0 {
		t.DataCommandFreqRatio = 1
	}

	if t.DramAtomSize == 0 {
		t.DramAtomSize = t.BusW * t.BL
	}

	if t.RwqCapacity == 0 {
		t.RwqCapacity = t.DramReturnQueueSize
	}
}
