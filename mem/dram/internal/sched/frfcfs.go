// Package sched implements the request schedulers DramChannel drives:
// plain FIFO is handled inline by the channel itself, so this package
// holds the one scheduler with real state, FrFcfsScheduler.
package sched

import (
	"container/list"

	"github.com/sarchlab/dramsim/mem/dram/internal/signal"
)

type bankQueue struct {
	queue         *list.List // front = newest, back = oldest
	bins          map[int]*list.List
	lastRowBucket *list.List
}

func newBankQueue() *bankQueue {
	return &bankQueue{queue: list.New(), bins: make(map[int]*list.List)}
}

// FrFcfsScheduler serves row hits on a bank's currently open row first,
// falling back to the oldest pending request (by insertion order) when
// no hit is available, matching the frfcfs_scheduler behind
// dram_t::scheduler_frfcfs.
type FrFcfsScheduler struct {
	banks      []*bankQueue
	numPending int

	// OnRowSwitch, if set, is called whenever a bank is forced off its
	// currently serviced row bucket onto a new one — the data-collection
	// event the row-hit statistics depend on.
	OnRowSwitch func(bank int)
}

// NewFrFcfsScheduler creates a scheduler with nbk independent bank
// queues.
func NewFrFcfsScheduler(nbk int) *FrFcfsScheduler {
	s := &FrFcfsScheduler{banks: make([]*bankQueue, nbk)}

	for i := range s.banks {
		s.banks[i] = newBankQueue()
	}

	return s
}

// Add inserts req at the front of its bank's queue and the front of its
// row's bucket, so within a bucket the oldest request sits at the back.
func (s *FrFcfsScheduler) Add(req *signal.MemRequest) {
	bq := s.banks[req.Bank]

	qElem := bq.queue.PushFront(req)

	bucket, ok := bq.bins[req.Row]
	if !ok {
		bucket = list.New()
		bq.bins[req.Row] = bucket
	}

	bucket.PushFront(qElem)

	s.numPending++
}

// Schedule returns the next request to service on bank, preferring a
// continuation of the row currently open there; it returns nil if the
// bank has no pending requests.
func (s *FrFcfsScheduler) Schedule(bank, currRow int) *signal.MemRequest {
	bq := s.banks[bank]

	if bq.lastRowBucket == nil {
		if bq.queue.Len() == 0 {
			return nil
		}

		if bucket, ok := bq.bins[currRow]; ok {
			bq.lastRowBucket = bucket
		} else {
			oldest := bq.queue.Back().Value.(*signal.MemRequest)

			bucket, ok := bq.bins[oldest.Row]
			if !ok {
				panic("frfcfs scheduler: row bucket missing for a pending request")
			}

			bq.lastRowBucket = bucket

			if s.OnRowSwitch != nil {
				s.OnRowSwitch(bank)
			}
		}
	}

	backElem := bq.lastRowBucket.Back()
	qElem := backElem.Value.(*list.Element)
	req := qElem.Value.(*signal.MemRequest)

	bq.lastRowBucket.Remove(backElem)
	bq.queue.Remove(qElem)

	if bq.lastRowBucket.Len() == 0 {
		delete(bq.bins, req.Row)
		bq.lastRowBucket = nil
	}

	s.numPending--

	return req
}

// NumPending returns the total number of requests held across every
// bank queue.
func (s *FrFcfsScheduler) NumPending() int { return s.numPending }
