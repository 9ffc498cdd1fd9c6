package dram

import (
	"github.com/sarchlab/dramsim/mem"
	"github.com/sarchlab/dramsim/mem/dram/internal/signal"
)

// requestPacket adapts a mem.ReadReq/mem.WriteReq message to the narrow
// signal.Packet view the DRAM core depends on, carrying the original
// message along so a reply can be correlated back to it.
type requestPacket struct {
	tlx            signal.TLXAddr
	byteSize       uint64
	address        uint64
	write          bool
	accessType     signal.AccessType
	texture        bool
	subPartitionID int
	replied        bool

	Req mem.AccessReq
}

func (p *requestPacket) TLXAddr() signal.TLXAddr     { return p.tlx }
func (p *requestPacket) ByteSize() uint64            { return p.byteSize }
func (p *requestPacket) Address() uint64             { return p.address }
func (p *requestPacket) IsWrite() bool               { return p.write }
func (p *requestPacket) AccessType() signal.AccessType { return p.accessType }
func (p *requestPacket) IsTexture() bool             { return p.texture }
func (p *requestPacket) SubPartitionID() int         { return p.subPartitionID }

func (p *requestPacket) SetStatus(_ string, _ uint64) {}
func (p *requestPacket) SetReply()                    { p.replied = true }

// newRequestPacket classifies msg's access type and decodes its
// destination before the packet ever reaches a sub-partition.
func newRequestPacket(msg mem.AccessReq, decoder AddressDecoder) *requestPacket {
	write := false
	accessType := signal.GlobalRead

	if _, ok := msg.(*mem.WriteReq); ok {
		write = true
		accessType = signal.GlobalWrite
	}

	addr := msg.GetAddress()

	return &requestPacket{
		tlx:            decoder.Decode(addr),
		byteSize:       msg.GetByteSize(),
		address:        addr,
		write:          write,
		accessType:     accessType,
		subPartitionID: decoder.SubPartitionID(addr),
		Req:            msg,
	}
}
