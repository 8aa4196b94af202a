// Package codec implements the versioned binary format used for township
// payloads and the settings registry. Every entity writes a leading version
// tag and a feature-flag bitmask, then its fields in version order. Decoding
// replays the version history from the stored version forward: fields
// introduced by a later version are skipped and left at their defaults, and
// fields gated behind a feature flag are read only when the flag is set.
package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"time"
)

// ErrTruncated reports a payload that ends before its declared fields do.
var ErrTruncated = errors.New("codec: truncated payload")

// Encoder accumulates a versioned binary payload. Write errors are sticky;
// check Bytes once at the end.
type Encoder struct {
	buf bytes.Buffer
	err error
}

// NewEncoder starts a payload with the given version tag and feature flags.
func NewEncoder(version uint32, flags uint64) *Encoder {
	e := &Encoder{}
	e.WriteUint32(version)
	e.WriteUint64(flags)
	return e
}

// Bytes returns the encoded payload, or the first write error.
func (e *Encoder) Bytes() ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.buf.Bytes(), nil
}

func (e *Encoder) write(v any) {
	if e.err != nil {
		return
	}
	e.err = binary.Write(&e.buf, binary.LittleEndian, v)
}

// WriteUint32 writes a fixed 32-bit unsigned value.
func (e *Encoder) WriteUint32(v uint32) { e.write(v) }

// WriteUint64 writes a fixed 64-bit unsigned value.
func (e *Encoder) WriteUint64(v uint64) { e.write(v) }

// WriteInt writes a signed integer as 64 bits.
func (e *Encoder) WriteInt(v int) { e.write(int64(v)) }

// WriteUint8 writes one unsigned byte.
func (e *Encoder) WriteUint8(v byte) { e.write(v) }

// WriteBool writes a boolean as one byte.
func (e *Encoder) WriteBool(v bool) {
	if v {
		e.WriteUint8(1)
	} else {
		e.WriteUint8(0)
	}
}

// WriteFloat64 writes an IEEE 754 double.
func (e *Encoder) WriteFloat64(v float64) { e.write(math.Float64bits(v)) }

// WriteString writes a length-prefixed UTF-8 string.
func (e *Encoder) WriteString(s string) {
	e.WriteInt(len(s))
	if e.err == nil {
		_, e.err = e.buf.WriteString(s)
	}
}

// WriteTime writes a timestamp as unix nanoseconds; the zero time writes as
// zero and round-trips to the zero time.
func (e *Encoder) WriteTime(t time.Time) {
	if t.IsZero() {
		e.WriteInt(0)
		return
	}
	e.WriteInt(int(t.UnixNano()))
}

// WriteStringSlice writes a length-prefixed list of strings.
func (e *Encoder) WriteStringSlice(ss []string) {
	e.WriteInt(len(ss))
	for _, s := range ss {
		e.WriteString(s)
	}
}

// Decoder reads a versioned binary payload. Read errors are sticky; fields
// read after an error return zero values, and Err reports the first failure.
type Decoder struct {
	r       *bytes.Reader
	err     error
	version uint32
	flags   uint64
}

// NewDecoder opens a payload and reads its version tag and feature flags.
func NewDecoder(data []byte) (*Decoder, error) {
	d := &Decoder{r: bytes.NewReader(data)}
	d.version = d.ReadUint32()
	d.flags = d.ReadUint64()
	if d.err != nil {
		return nil, fmt.Errorf("codec: read header: %w", d.err)
	}
	return d, nil
}

// Version returns the stored version tag.
func (d *Decoder) Version() uint32 { return d.version }

// Has reports whether a feature flag was set at encode time.
func (d *Decoder) Has(flag uint64) bool { return d.flags&flag != 0 }

// Err returns the first read error, if any.
func (d *Decoder) Err() error { return d.err }

func (d *Decoder) read(v any) {
	if d.err != nil {
		return
	}
	d.err = binary.Read(d.r, binary.LittleEndian, v)
	if errors.Is(d.err, io.EOF) || errors.Is(d.err, io.ErrUnexpectedEOF) {
		d.err = ErrTruncated
	}
}

// ReadUint32 reads a fixed 32-bit unsigned value.
func (d *Decoder) ReadUint32() uint32 {
	var v uint32
	d.read(&v)
	return v
}

// ReadUint64 reads a fixed 64-bit unsigned value.
func (d *Decoder) ReadUint64() uint64 {
	var v uint64
	d.read(&v)
	return v
}

// ReadInt reads a signed 64-bit integer.
func (d *Decoder) ReadInt() int {
	var v int64
	d.read(&v)
	return int(v)
}

// ReadUint8 reads one unsigned byte.
func (d *Decoder) ReadUint8() byte {
	var v byte
	d.read(&v)
	return v
}

// ReadBool reads a one-byte boolean.
func (d *Decoder) ReadBool() bool { return d.ReadUint8() != 0 }

// ReadFloat64 reads an IEEE 754 double.
func (d *Decoder) ReadFloat64() float64 {
	var bits uint64
	d.read(&bits)
	return math.Float64frombits(bits)
}

// ReadString reads a length-prefixed string.
func (d *Decoder) ReadString() string {
	n := d.ReadInt()
	if d.err != nil || n <= 0 {
		if n < 0 {
			d.err = fmt.Errorf("codec: negative string length %d", n)
		}
		return ""
	}
	if int64(n) > int64(d.r.Len()) {
		d.err = ErrTruncated
		return ""
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(d.r, buf); err != nil {
		d.err = ErrTruncated
		return ""
	}
	return string(buf)
}

// ReadTime reads a unix-nanosecond timestamp; zero decodes to the zero time.
func (d *Decoder) ReadTime() time.Time {
	ns := d.ReadInt()
	if ns == 0 {
		return time.Time{}
	}
	return time.Unix(0, int64(ns))
}

// ReadStringSlice reads a length-prefixed list of strings.
func (d *Decoder) ReadStringSlice() []string {
	n := d.ReadInt()
	if d.err != nil || n <= 0 {
		return nil
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, d.ReadString())
	}
	return out
}
