package org

import "github.com/sarchlab/dramsim/mem/dram/internal/signal"

// RequestScheduler is the collaborator DramChannel drives in FRFCFS
// mode: requests are fed in as they arrive and the channel asks, bank by
// bank, whether one is ready to be bound.
type RequestScheduler interface {
	Add(req *signal.MemRequest)
	Schedule(bank, currRow int) *signal.MemRequest
	NumPending() int
}
