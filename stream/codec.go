// Package stream moves finished tiles between a compute stage and a display
// stage: a compact binary frame codec plus a net.Listener adapter over
// websocket connections.
package stream

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/marben/mandelgrid"
)

// Frame carries one finished tile's escape counts.
type Frame struct {
	Tile  mandelgrid.Tile
	Width int
	Data  []uint16 // row-major, Tile.Rows()*Width values
}

// frame header: rowStart, rowEnd, width, compressed payload length.
const headerLen = 16

// maxFrameBytes caps one frame's raw (decompressed) size. Headers claiming
// more are corrupt; a peer never produces tiles near this large.
const maxFrameBytes = 1 << 26

// Codec encodes and decodes frames with zstd-compressed payloads. Escape
// buffers compress extremely well (long runs of equal counts inside the set
// and along contours). Safe for concurrent use.
type Codec struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

func NewCodec() (*Codec, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("zstd writer: %w", err)
	}
	dec, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(maxFrameBytes))
	if err != nil {
		return nil, fmt.Errorf("zstd reader: %w", err)
	}
	return &Codec{enc: enc, dec: dec}, nil
}

// Encode serializes f into a self-delimiting message.
func (c *Codec) Encode(f Frame) ([]byte, error) {
	if want := f.Tile.Rows() * f.Width; len(f.Data) != want {
		return nil, fmt.Errorf("frame %s width %d: have %d values, want %d", f.Tile, f.Width, len(f.Data), want)
	}
	raw := make([]byte, 2*len(f.Data))
	for i, v := range f.Data {
		binary.BigEndian.PutUint16(raw[2*i:], v)
	}
	payload := c.enc.EncodeAll(raw, nil)

	msg := make([]byte, headerLen, headerLen+len(payload))
	binary.BigEndian.PutUint32(msg[0:], uint32(f.Tile.RowStart))
	binary.BigEndian.PutUint32(msg[4:], uint32(f.Tile.RowEnd))
	binary.BigEndian.PutUint32(msg[8:], uint32(f.Width))
	binary.BigEndian.PutUint32(msg[12:], uint32(len(payload)))
	return append(msg, payload...), nil
}

// Decode reads the next frame off r.
func (c *Codec) Decode(r io.Reader) (Frame, error) {
	var hdr [headerLen]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return Frame{}, err
	}
	f := Frame{
		Tile: mandelgrid.Tile{
			RowStart: int(binary.BigEndian.Uint32(hdr[0:])),
			RowEnd:   int(binary.BigEndian.Uint32(hdr[4:])),
		},
		Width: int(binary.BigEndian.Uint32(hdr[8:])),
	}
	rows := f.Tile.Rows()
	if rows <= 0 || f.Width <= 0 {
		return Frame{}, fmt.Errorf("frame %s width %d: corrupt header", f.Tile, f.Width)
	}
	// The payload is never allocated on the header's word alone: it is
	// bounded by the raw size the row range and width imply, plus the zstd
	// framing overhead on incompressible data.
	rawLen := 2 * rows * f.Width
	plen := int(binary.BigEndian.Uint32(hdr[12:]))
	if rawLen > maxFrameBytes || plen > rawLen+512 {
		return Frame{}, fmt.Errorf("frame %s: payload length %d exceeds frame bound", f.Tile, plen)
	}
	payload := make([]byte, plen)
	if _, err := io.ReadFull(r, payload); err != nil {
		return Frame{}, fmt.Errorf("frame %s payload: %w", f.Tile, err)
	}
	raw, err := c.dec.DecodeAll(payload, nil)
	if err != nil {
		return Frame{}, fmt.Errorf("frame %s: %w", f.Tile, err)
	}
	if want := f.Tile.Rows() * f.Width; len(raw) != 2*want {
		return Frame{}, fmt.Errorf("frame %s: decompressed to %d bytes, want %d", f.Tile, len(raw), 2*want)
	}
	f.Data = make([]uint16, len(raw)/2)
	for i := range f.Data {
		f.Data[i] = binary.BigEndian.Uint16(raw[2*i:])
	}
	return f, nil
}

// Close releases the zstd state.
func (c *Codec) Close() {
	c.enc.Close()
	c.dec.Close()
}
