// Package mem defines the request/response messages that cross the
// boundary between the DRAM memory partition core and its external
// collaborators: the interconnect and the L2 cache.
package mem

import "github.com/sarchlab/dramsim/engine"

// AccessReq is satisfied by any request that names an address and a
// byte size, read or write.
type AccessReq interface {
	engine.Msg
	GetAddress() uint64
	GetByteSize() uint64
}

// AccessRsp is satisfied by any response completing an AccessReq.
type AccessRsp interface {
	engine.Msg
	engine.Rsp
}

// ReadReq asks the memory partition to fetch data.
type ReadReq struct {
	engine.MsgMeta

	Address        uint64
	AccessByteSize uint64
}

// Meta returns the message header.
func (r *ReadReq) Meta() *engine.MsgMeta { return &r.MsgMeta }

// GetAddress returns the address being read.
func (r *ReadReq) GetAddress() uint64 { return r.Address }

// GetByteSize returns the number of bytes being read.
func (r *ReadReq) GetByteSize() uint64 { return r.AccessByteSize }

// ReadReqBuilder builds ReadReq messages.
type ReadReqBuilder struct {
	src, dst          engine.RemotePort
	address, byteSize uint64
}

// WithSrc sets the source port of the request being built.
func (b ReadReqBuilder) WithSrc(src engine.RemotePort) ReadReqBuilder {
	b.src = src
	return b
}

// WithDst sets the destination port of the request being built.
func (b ReadReqBuilder) WithDst(dst engine.RemotePort) ReadReqBuilder {
	b.dst = dst
	return b
}

// WithAddress sets the address of the request being built.
func (b ReadReqBuilder) WithAddress(addr uint64) ReadReqBuilder {
	b.address = addr
	return b
}

// WithByteSize sets the byte size of the request being built.
func (b ReadReqBuilder) WithByteSize(n uint64) ReadReqBuilder {
	b.byteSize = n
	return b
}

// Build creates the configured ReadReq.
func (b ReadReqBuilder) Build() *ReadReq {
	return &ReadReq{
		MsgMeta:        engine.MsgMeta{ID: engine.GetIDGenerator().Generate(), Src: b.src, Dst: b.dst},
		Address:        b.address,
		AccessByteSize: b.byteSize,
	}
}

// WriteReq asks the memory partition to store data.
type WriteReq struct {
	engine.MsgMeta

	Address uint64
	Data    []byte
}

// Meta returns the message header.
func (r *WriteReq) Meta() *engine.MsgMeta { return &r.MsgMeta }

// GetAddress returns the address being written.
func (r *WriteReq) GetAddress() uint64 { return r.Address }

// GetByteSize returns the number of bytes being written.
func (r *WriteReq) GetByteSize() uint64 { return uint64(len(r.Data)) }

// WriteReqBuilder builds WriteReq messages.
type WriteReqBuilder struct {
	src, dst engine.RemotePort
	address  uint64
	data     []byte
}

// WithSrc sets the source port of the request being built.
func (b WriteReqBuilder) WithSrc(src engine.RemotePort) WriteReqBuilder {
	b.src = src
	return b
}

// WithDst sets the destination port of the request being built.
func (b WriteReqBuilder) WithDst(dst engine.RemotePort) WriteReqBuilder {
	b.dst = dst
	return b
}

// WithAddress sets the address of the request being built.
func (b WriteReqBuilder) WithAddress(addr uint64) WriteReqBuilder {
	b.address = addr
	return b
}

// WithData sets the payload of the request being built.
func (b WriteReqBuilder) WithData(data []byte) WriteReqBuilder {
	b.data = data
	return b
}

// Build creates the configured WriteReq.
func (b WriteReqBuilder) Build() *WriteReq {
	return &WriteReq{
		MsgMeta: engine.MsgMeta{ID: engine.GetIDGenerator().Generate(), Src: b.src, Dst: b.dst},
		Address: b.address,
		Data:    b.data,
	}
}

// DataReadyRsp carries data back in response to a ReadReq.
type DataReadyRsp struct {
	engine.MsgMeta

	RespondTo string
	Data      []byte
}

// Meta returns the message header.
func (r *DataReadyRsp) Meta() *engine.MsgMeta { return &r.MsgMeta }

// GetRspTo returns the ID of the request this responds to.
func (r *DataReadyRsp) GetRspTo() string { return r.RespondTo }

// WriteDoneRsp acknowledges a completed WriteReq.
type WriteDoneRsp struct {
	engine.MsgMeta

	RespondTo string
}

// Meta returns the message header.
func (r *WriteDoneRsp) Meta() *engine.MsgMeta { return &r.MsgMeta }

// GetRspTo returns the ID of the request this responds to.
func (r *WriteDoneRsp) GetRspTo() string { return r.RespondTo }
