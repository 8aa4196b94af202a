package codec

import (
	"errors"
	"testing"
	"time"
)

func TestRoundTrip(t *testing.T) {
	const (
		version = uint32(4)
		flagA   = uint64(1 << 0)
		flagB   = uint64(1 << 3)
	)
	when := time.Date(2025, time.March, 3, 12, 0, 0, 0, time.UTC)

	e := NewEncoder(version, flagA|flagB)
	e.WriteUint32(42)
	e.WriteUint64(1 << 40)
	e.WriteInt(-7)
	e.WriteUint8(200)
	e.WriteBool(true)
	e.WriteFloat64(0.75)
	e.WriteString("Stonewatch")
	e.WriteString("")
	e.WriteTime(when)
	e.WriteStringSlice([]string{"first", "second"})

	data, err := e.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}

	d, err := NewDecoder(data)
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}
	if d.Version() != version {
		t.Fatalf("Version = %d, want %d", d.Version(), version)
	}
	if !d.Has(flagA) || !d.Has(flagB) || d.Has(1<<5) {
		t.Fatalf("flag bits wrong: %v %v %v", d.Has(flagA), d.Has(flagB), d.Has(1<<5))
	}

	if got := d.ReadUint32(); got != 42 {
		t.Fatalf("ReadUint32 = %d", got)
	}
	if got := d.ReadUint64(); got != 1<<40 {
		t.Fatalf("ReadUint64 = %d", got)
	}
	if got := d.ReadInt(); got != -7 {
		t.Fatalf("ReadInt = %d", got)
	}
	if got := d.ReadUint8(); got != 200 {
		t.Fatalf("ReadUint8 = %d", got)
	}
	if got := d.ReadBool(); !got {
		t.Fatal("ReadBool = false")
	}
	if got := d.ReadFloat64(); got != 0.75 {
		t.Fatalf("ReadFloat64 = %v", got)
	}
	if got := d.ReadString(); got != "Stonewatch" {
		t.Fatalf("ReadString = %q", got)
	}
	if got := d.ReadString(); got != "" {
		t.Fatalf("ReadString(empty) = %q", got)
	}
	if got := d.ReadTime(); !got.Equal(when) {
		t.Fatalf("ReadTime = %v, want %v", got, when)
	}
	ss := d.ReadStringSlice()
	if len(ss) != 2 || ss[0] != "first" || ss[1] != "second" {
		t.Fatalf("ReadStringSlice = %v", ss)
	}
	if d.Err() != nil {
		t.Fatalf("Err = %v", d.Err())
	}
}

func TestZeroTimeRoundTrip(t *testing.T) {
	e := NewEncoder(1, 0)
	e.WriteTime(time.Time{})
	data, err := e.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	d, err := NewDecoder(data)
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}
	if got := d.ReadTime(); !got.IsZero() {
		t.Fatalf("ReadTime = %v, want zero time", got)
	}
}

func TestTruncatedPayload(t *testing.T) {
	e := NewEncoder(1, 0)
	e.WriteUint64(99)
	data, err := e.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}

	d, err := NewDecoder(data[:len(data)-3])
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}
	_ = d.ReadUint64()
	if !errors.Is(d.Err(), ErrTruncated) {
		t.Fatalf("Err = %v, want ErrTruncated", d.Err())
	}

	// Errors stick: later reads return zero values, not new errors.
	if got := d.ReadInt(); got != 0 {
		t.Fatalf("ReadInt after error = %d, want 0", got)
	}
	if !errors.Is(d.Err(), ErrTruncated) {
		t.Fatalf("Err changed to %v", d.Err())
	}
}

func TestHeaderTooShort(t *testing.T) {
	if _, err := NewDecoder([]byte{1, 0}); err == nil {
		t.Fatal("NewDecoder accepted a payload shorter than its header")
	}
}

func TestStringLengthGuards(t *testing.T) {
	// Declared string length far beyond the remaining bytes.
	e := NewEncoder(1, 0)
	e.WriteInt(1 << 30)
	data, err := e.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	d, err := NewDecoder(data)
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}
	if got := d.ReadString(); got != "" {
		t.Fatalf("ReadString = %q, want empty", got)
	}
	if !errors.Is(d.Err(), ErrTruncated) {
		t.Fatalf("Err = %v, want ErrTruncated", d.Err())
	}

	// Negative length is rejected outright.
	e = NewEncoder(1, 0)
	e.WriteInt(-5)
	data, _ = e.Bytes()
	d, _ = NewDecoder(data)
	if got := d.ReadString(); got != "" {
		t.Fatalf("ReadString = %q, want empty", got)
	}
	if d.Err() == nil {
		t.Fatal("negative length should set an error")
	}
}
