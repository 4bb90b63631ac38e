package vdf

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
)

// maxDepth bounds map nesting so hostile input cannot exhaust the stack.
const maxDepth = 64

// ErrEmbeddedNUL is returned by Encode when a key or string contains a NUL
// byte, which the binary format cannot represent.
var ErrEmbeddedNUL = errors.New("vdf: key or string contains NUL byte")

// FormatError reports malformed binary input.
type FormatError struct {
	Offset int
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("vdf: %s at offset %d", e.Reason, e.Offset)
}

// Decode parses a binary KeyValues document. The returned map holds the
// top-level children; the document's closing 0x08 is consumed.
func Decode(data []byte) (*Map, error) {
	d := &decoder{data: data}
	root, err := d.readMap(0)
	if err != nil {
		return nil, err
	}
	if d.pos != len(d.data) {
		return nil, d.fail("trailing data after root map")
	}
	return root, nil
}

type decoder struct {
	data []byte
	pos  int
}

func (d *decoder) fail(reason string) *FormatError {
	return &FormatError{Offset: d.pos, Reason: reason}
}

func (d *decoder) readMap(depth int) (*Map, error) {
	if depth > maxDepth {
		return nil, d.fail("maps nested too deeply")
	}
	m := NewMap()
	for {
		if d.pos >= len(d.data) {
			return nil, d.fail("unexpected end of data, missing map terminator")
		}
		tag := d.data[d.pos]
		d.pos++
		if tag == tagMapEnd {
			return m, nil
		}
		key, err := d.readCString()
		if err != nil {
			return nil, err
		}
		kind := Kind(tag)
		switch kind {
		case KindMap:
			child, err := d.readMap(depth + 1)
			if err != nil {
				return nil, err
			}
			m.Append(key, MapValue(child))
		case KindString:
			s, err := d.readCString()
			if err != nil {
				return nil, err
			}
			m.Append(key, String(s))
		case KindInt32, KindFloat32, KindPointer, KindColor, KindUint64, KindInt64:
			bits, err := d.readFixed(kind.width())
			if err != nil {
				return nil, err
			}
			m.Append(key, rawValue(kind, bits))
		default:
			d.pos -= len(key) + 2
			return nil, d.fail(fmt.Sprintf("unknown type tag 0x%02x", tag))
		}
	}
}

func (d *decoder) readCString() (string, error) {
	end := bytes.IndexByte(d.data[d.pos:], 0)
	if end < 0 {
		return "", d.fail("unterminated string")
	}
	s := string(d.data[d.pos : d.pos+end])
	d.pos += end + 1
	return s, nil
}

func (d *decoder) readFixed(width int) (uint64, error) {
	if len(d.data)-d.pos < width {
		return 0, d.fail(fmt.Sprintf("truncated %d-byte value", width))
	}
	chunk := d.data[d.pos : d.pos+width]
	d.pos += width
	if width == 4 {
		return uint64(binary.LittleEndian.Uint32(chunk)), nil
	}
	return binary.LittleEndian.Uint64(chunk), nil
}

// Encode serializes m as a binary KeyValues document, writing children in
// their stored order and closing every map with 0x08.
func Encode(m *Map) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeMap(&buf, m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeMap(buf *bytes.Buffer, m *Map) error {
	for _, e := range m.Entries() {
		if err := writeEntry(buf, e); err != nil {
			return err
		}
	}
	buf.WriteByte(tagMapEnd)
	return nil
}

func writeEntry(buf *bytes.Buffer, e Entry) error {
	if err := writeCString(buf, byte(e.Value.kind), e.Key); err != nil {
		return err
	}
	v := e.Value
	switch v.kind {
	case KindMap:
		return writeMap(buf, v.m)
	case KindString:
		if strings.IndexByte(v.str, 0) >= 0 {
			return fmt.Errorf("%w: value of %q", ErrEmbeddedNUL, e.Key)
		}
		buf.WriteString(v.str)
		buf.WriteByte(0)
	default:
		var scratch [8]byte
		switch v.kind.width() {
		case 4:
			binary.LittleEndian.PutUint32(scratch[:4], uint32(v.bits))
			buf.Write(scratch[:4])
		case 8:
			binary.LittleEndian.PutUint64(scratch[:], v.bits)
			buf.Write(scratch[:])
		default:
			return fmt.Errorf("vdf: cannot encode kind 0x%02x for key %q", byte(v.kind), e.Key)
		}
	}
	return nil
}

func writeCString(buf *bytes.Buffer, tag byte, key string) error {
	if strings.IndexByte(key, 0) >= 0 {
		return fmt.Errorf("%w: key %q", ErrEmbeddedNUL, key)
	}
	buf.WriteByte(tag)
	buf.WriteString(key)
	buf.WriteByte(0)
	return nil
}
