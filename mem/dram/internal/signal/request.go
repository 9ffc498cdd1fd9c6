package signal

// RwDir is the direction of a column command.
type RwDir int

// The two column-command directions.
const (
	Read RwDir = iota
	Write
)

// MemRequest is built when a Packet crosses from the partition's
// DRAM-latency queue into the channel. It is owned by exactly one
// stage at a time: the MRQ, the scheduler, a bank slot, the RWQ, or the
// return queue, in that order, until it is dropped or forwarded.
type MemRequest struct {
	Bank int
	Row  int
	Col  int

	NBytes  uint64
	TxBytes uint64
	DqBytes uint64

	RW RwDir

	Timestamp     uint64
	InsertionTime uint64

	Pkt Packet
}

// NewMemRequest builds a MemRequest from a decoded packet at the given
// simulation time.
func NewMemRequest(pkt Packet, now uint64) *MemRequest {
	addr := pkt.TLXAddr()

	rw := Read
	if pkt.IsWrite() {
		rw = Write
	}

	return &MemRequest{
		Bank:          addr.Bank,
		Row:           addr.Row,
		Col:           addr.Col,
		NBytes:        pkt.ByteSize(),
		RW:            rw,
		Timestamp:     now,
		InsertionTime: now,
		Pkt:           pkt,
	}
}

// ReadComplete reports whether every byte has been transferred toward
// DRAM (all column commands for this request have issued).
func (r *MemRequest) ReadComplete() bool {
	return r.TxBytes >= r.NBytes
}

// DrainComplete reports whether every byte has been drained from the
// RWQ toward the return path.
func (r *MemRequest) DrainComplete() bool {
	return r.DqBytes >= r.NBytes
}
