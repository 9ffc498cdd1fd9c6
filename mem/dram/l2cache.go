package dram

import "github.com/sarchlab/dramsim/mem/dram/internal/signal"

// CacheRequestStatus is the outcome of one L2Cache.Access call.
type CacheRequestStatus int

// The three outcomes an L2 access can report.
const (
	Hit CacheRequestStatus = iota
	Miss
	ReservationFail
)

// CacheEvent records a side effect an L2 access triggered toward DRAM.
type CacheEvent int

// The two events a sub-partition checks for after an access.
const (
	EventWriteSent CacheEvent = iota
	EventReadSent
)

// AddressDecoder turns a physical address into the already-decoded
// chip/bank/row/column/group fields the channel operates on. It lives
// entirely outside this module; the core only ever reads a packet's
// already-decoded TLXAddr.
type AddressDecoder interface {
	Decode(addr uint64) signal.TLXAddr
	SubPartitionID(addr uint64) int
}

// L2Cache is the narrow surface memory_sub_partition drives every
// cache_cycle: access/fill on the data and miss-fill ports, each gated
// by its own port-free predicate so at most one transaction crosses
// each port per cycle.
type L2Cache interface {
	Access(addr uint64, pkt signal.Packet, now uint64) (CacheRequestStatus, []CacheEvent)

	WaitingForFill(pkt signal.Packet) bool
	Fill(pkt signal.Packet, now uint64)

	AccessReady() bool
	NextAccess() signal.Packet

	DataPortFree() bool
	FillPortFree() bool

	Cycle()
}

// SimpleL2 is a minimal, always-miss L2Cache: every access is
// forwarded straight through to DRAM and every fill is handed straight
// back out, with unlimited port availability. It exists so a
// MemorySubPartition can be built and driven without a real cache
// behind it; a production L2 is an external collaborator.
type SimpleL2 struct {
	ready []signal.Packet
}

// NewSimpleL2 creates a pass-through L2Cache stand-in.
func NewSimpleL2() *SimpleL2 { return &SimpleL2{} }

// Access always misses and asks the caller to forward the request on
// toward DRAM (no data/read/write events of its own).
func (l *SimpleL2) Access(_ uint64, _ signal.Packet, _ uint64) (CacheRequestStatus, []CacheEvent) {
	return Miss, nil
}

// WaitingForFill reports that every returning request is expected back
// through Fill, since SimpleL2 never services a request itself.
func (l *SimpleL2) WaitingForFill(_ signal.Packet) bool { return true }

// Fill queues pkt to be drained by NextAccess on the next cycle that
// checks AccessReady.
func (l *SimpleL2) Fill(pkt signal.Packet, _ uint64) {
	l.ready = append(l.ready, pkt)
}

// AccessReady reports whether a filled packet is waiting to be drained.
func (l *SimpleL2) AccessReady() bool { return len(l.ready) > 0 }

// NextAccess pops the oldest filled packet.
func (l *SimpleL2) NextAccess() signal.Packet {
	if len(l.ready) == 0 {
		return nil
	}

	pkt := l.ready[0]
	l.ready = l.ready[1:]

	return pkt
}

// DataPortFree is always true: SimpleL2 has no port contention model.
func (l *SimpleL2) DataPortFree() bool { return true }

// FillPortFree is always true: SimpleL2 has no port contention model.
func (l *SimpleL2) FillPortFree() bool { return true }

// Cycle is a no-op: SimpleL2 has no internal miss-handling pipeline to
// advance.
func (l *SimpleL2) Cycle() {}
