package org

import "github.com/sarchlab/dramsim/mem/dram/internal/signal"

// BankState is the row-buffer state of a bank.
type BankState int

// The two bank states; a bank has a defined CurrRow only while Active.
const (
	Idle BankState = iota
	Active
)

// Bank is one independently addressable DRAM array with a single row
// buffer, timed against the timers the JEDEC command set requires.
type Bank struct {
	Group int

	State   BankState
	CurrRow int

	// Timers, saturating-decremented by one every channel tick.
	Rcd   int // ACT -> column read
	RcdWr int // ACT -> column write
	Ras   int // ACT -> PRE
	Rp    int // PRE -> ACT
	Rc    int // ACT -> ACT (row cycle)
	Wtp   int // WRITE -> PRE
	Rtp   int // READ -> PRE

	Mrq *signal.MemRequest

	NAccess int
	NIdle   int
}

// NewBank creates a Bank in the Idle state, owned by the given group.
func NewBank(group int) *Bank {
	return &Bank{Group: group, State: Idle}
}

// Bound reports whether a request is currently assigned to this bank.
func (b *Bank) Bound() bool { return b.Mrq != nil }

// Bind assigns req to this bank. It is a contract violation to bind a
// bank that already has a pending request.
func (b *Bank) Bind(req *signal.MemRequest) {
	if b.Mrq != nil {
		panic("bank already has a bound request")
	}

	b.Mrq = req
}

// Unbind clears the bank's pending request.
func (b *Bank) Unbind() { b.Mrq = nil }

// decrementTimers saturating-decrements every per-bank timer by one and
// tallies an idle cycle if the bank has nothing bound.
func (b *Bank) decrementTimers() {
	if b.State == Idle && !b.Bound() {
		b.NIdle++
	}

	b.Rcd = satDec(b.Rcd)
	b.RcdWr = satDec(b.RcdWr)
	b.Ras = satDec(b.Ras)
	b.Rp = satDec(b.Rp)
	b.Rc = satDec(b.Rc)
	b.Wtp = satDec(b.Wtp)
	b.Rtp = satDec(b.Rtp)
}

func satDec(v int) int {
	if v <= 0 {
		return 0
	}

	return v - 1
}

// BankGroup holds the inter-command constraints shared by every bank in
// the group: column-to-column delay and read-to-precharge delay that
// apply within the group rather than per individual bank.
type BankGroup struct {
	Ccdl int
	Rtpl int
}

func (g *BankGroup) decrementTimers() {
	g.Ccdl = satDec(g.Ccdl)
	g.Rtpl = satDec(g.Rtpl)
}
