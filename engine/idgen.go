package engine

import (
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/rs/xid"
)

// IDGenerator mints unique identifiers for messages, packets and requests.
type IDGenerator interface {
	Generate() string
}

var (
	idGenMu   sync.Mutex
	idGenSet  bool
	idGenImpl IDGenerator
)

// UseSequentialIDGenerator switches to deterministic, human-readable IDs.
// Must be called before GetIDGenerator is used for the first time.
func UseSequentialIDGenerator() {
	idGenMu.Lock()
	defer idGenMu.Unlock()

	if idGenSet {
		panic("cannot change id generator after it has been used")
	}

	idGenImpl = &sequentialIDGenerator{}
	idGenSet = true
}

// GetIDGenerator returns the process-wide ID generator, defaulting to an
// xid-backed generator if none has been configured yet.
func GetIDGenerator() IDGenerator {
	idGenMu.Lock()
	defer idGenMu.Unlock()

	if !idGenSet {
		idGenImpl = &xidGenerator{}
		idGenSet = true
	}

	return idGenImpl
}

type sequentialIDGenerator struct {
	next uint64
}

func (g *sequentialIDGenerator) Generate() string {
	n := atomic.AddUint64(&g.next, 1)
	return strconv.FormatUint(n, 10)
}

type xidGenerator struct{}

func (xidGenerator) Generate() string {
	return xid.New().String()
}
