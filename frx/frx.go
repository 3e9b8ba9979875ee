// Package frx decodes VB6 form-resource (.frx) files: a concatenation of
// variable-length binary records with no index and no file-level header,
// whose shape must be inferred per-record from a fixed waterfall of five
// possible header shapes.
//
// The per-record dispatch is a single forward cursor over a handful of
// fixed-shape sub-readers with checked arithmetic at every length field:
// unlike a format with an index or tag byte, here every record's shape is a
// guess confirmed only by what bytes happen to follow, so every guess must
// also be cheap to undo.
package frx

import (
	"encoding/binary"
	"strconv"

	"github.com/scriptandcompile/vb6parse/diag"
	"github.com/scriptandcompile/vb6parse/source"
	"github.com/scriptandcompile/vb6parse/token"
)

// Kind identifies which of the five header shapes produced an Entry.
type Kind int

const (
	KindBlob12 Kind = iota
	KindData4
	KindData3
	KindData1
	KindListItems
)

func (k Kind) String() string {
	switch k {
	case KindBlob12:
		return "Blob12"
	case KindData4:
		return "Data4"
	case KindData3:
		return "Data3"
	case KindData1:
		return "Data1"
	case KindListItems:
		return "ListItems"
	default:
		return "Unknown"
	}
}

// Entry is one decoded FRX record: its absolute byte offset, its shape,
// and its payload. Data holds the raw payload bytes for the four binary
// shapes (nil for ListItems); Items holds the decoded strings for
// ListItems (nil otherwise); Tag holds Blob12's 4-byte type tag.
type Entry struct {
	Offset int
	Kind   Kind
	Tag    []byte
	Data   []byte
	Items  []string
}

// File is a resolved FRX resource file: every successfully parsed record,
// keyed by its starting offset, plus the original buffer so a caller can
// re-slice raw bytes a property reference points at.
type File struct {
	buf     []byte
	Entries map[int]*Entry
	// Order lists entry offsets in the order they were parsed (ascending,
	// since the resolver only ever walks forward).
	Order []int
}

// Buffer returns the original bytes the file was resolved from.
func (f *File) Buffer() []byte { return f.buf }

// At returns the entry starting at offset, or nil if no entry was
// resolved there.
func (f *File) At(offset int) *Entry { return f.Entries[offset] }

// Slice re-slices the original buffer between two byte offsets, clamped to
// valid range rather than panicking.
func (f *File) Slice(start, end int) []byte {
	if start < 0 {
		start = 0
	}
	if end > len(f.buf) {
		end = len(f.buf)
	}
	if start > end {
		return nil
	}
	return f.buf[start:end]
}

// Load walks buf from offset 0 to end-of-file, resolving every record it
// can and recording a diagnostic (never aborting the whole file) for every
// byte range it can't. All multi-byte integers are little-endian.
func Load(buf []byte) diag.Result[*File] {
	f := &File{buf: buf, Entries: make(map[int]*Entry)}
	var diags []diag.Diagnostic
	cursor := 0
	for cursor < len(buf) {
		entry, consumed, derr := parseRecord(buf, cursor)
		if derr != nil {
			diags = append(diags, *derr)
			cursor++
			continue
		}
		entry.Offset = cursor
		f.Entries[cursor] = entry
		f.Order = append(f.Order, cursor)
		cursor += consumed
	}
	return diag.Result[*File]{Value: f, Diagnostics: diags}
}

var blob12Tag = [4]byte{'l', 't', 0x00, 0x00}

// parseRecord applies the five-shape waterfall at cursor, returning the
// decoded entry and how many bytes it consumed, or a diagnostic if no shape
// could be made to fit.
func parseRecord(buf []byte, cursor int) (*Entry, int, *diag.Diagnostic) {
	n := len(buf)

	if cursor+8 <= n && [4]byte(buf[cursor+4:cursor+8]) == blob12Tag {
		return parseBlob12(buf, cursor)
	}
	if buf[cursor] == 0xFF {
		return parseSizedRecord(buf, cursor, KindData3, 1, 2)
	}
	if cursor+4 <= n && ((buf[cursor+2] == 0x03 && buf[cursor+3] == 0x00) ||
		(buf[cursor+2] == 0x07 && buf[cursor+3] == 0x00)) {
		return parseListItems(buf, cursor)
	}
	if cursor+4 <= n && (buf[cursor] == 0x00 || buf[cursor+1] == 0x00 || buf[cursor+2] == 0x00 || buf[cursor+3] == 0x00) {
		return parseData4(buf, cursor)
	}
	return parseSizedRecord(buf, cursor, KindData1, 0, 1)
}

// parseBlob12 decodes the 12-byte-header shape: u32 total-size, the 4-byte
// tag, u32 data-size, then data-size bytes. total-size-8 must equal
// data-size; the subtraction is checked rather than allowed to underflow.
func parseBlob12(buf []byte, cursor int) (*Entry, int, *diag.Diagnostic) {
	n := len(buf)
	if cursor+12 > n {
		return nil, 0, truncated(cursor, "Blob12 header")
	}
	totalSize := int64(binary.LittleEndian.Uint32(buf[cursor : cursor+4]))
	tag := append([]byte(nil), buf[cursor+4:cursor+8]...)
	dataSize := int64(binary.LittleEndian.Uint32(buf[cursor+8 : cursor+12]))

	if totalSize < 8 {
		return nil, 0, &diag.Diagnostic{
			Kind:    diag.ResourceSizeUnderflow,
			Message: "Blob12 total-size underflows below the 8-byte header",
			Span:    token.Span{Start: cursor, End: cursor},
		}
	}
	if totalSize-8 != dataSize {
		return nil, 0, &diag.Diagnostic{
			Kind:    diag.ResourceTruncatedRecord,
			Message: "Blob12 total-size - 8 does not equal data-size",
			Span:    token.Span{Start: cursor, End: cursor},
		}
	}
	end := cursor + 12 + int(dataSize)
	if end > n || dataSize < 0 {
		return nil, 0, truncated(cursor, "Blob12 payload")
	}
	return &Entry{Kind: KindBlob12, Tag: tag, Data: buf[cursor+12 : end]}, end - cursor, nil
}

// parseData4 decodes the 4-byte-header shape: u32 size, then size bytes.
func parseData4(buf []byte, cursor int) (*Entry, int, *diag.Diagnostic) {
	n := len(buf)
	size := int64(binary.LittleEndian.Uint32(buf[cursor : cursor+4]))
	end := int64(cursor+4) + size
	if size < 0 || end > int64(n) {
		return nil, 0, truncated(cursor, "Data4 payload")
	}
	return &Entry{Kind: KindData4, Data: buf[cursor+4 : int(end)]}, int(end) - cursor, nil
}

// parseSizedRecord decodes both the Data3 (0xFF marker, u16 size) and
// Data1 (u8 size, no marker) shapes, which share the overrun-conditional
// off-by-one retry: if the declared size would overrun EOF, retry with
// size-1 exactly once; if that still overruns, report an error and let the
// caller skip one byte.
func parseSizedRecord(buf []byte, cursor int, kind Kind, markerLen, sizeLen int) (*Entry, int, *diag.Diagnostic) {
	n := len(buf)
	headerLen := markerLen + sizeLen
	if cursor+headerLen > n {
		return nil, 0, truncated(cursor, kind.String()+" header")
	}
	var size int
	if sizeLen == 2 {
		size = int(binary.LittleEndian.Uint16(buf[cursor+markerLen : cursor+headerLen]))
	} else {
		size = int(buf[cursor+markerLen])
	}
	end := cursor + headerLen + size
	if end > n {
		if size > 0 {
			retrySize := size - 1
			retryEnd := cursor + headerLen + retrySize
			if retryEnd <= n {
				size, end = retrySize, retryEnd
			} else {
				return nil, 0, truncated(cursor, kind.String()+" payload")
			}
		} else {
			return nil, 0, truncated(cursor, kind.String()+" payload")
		}
	}
	return &Entry{Kind: kind, Data: buf[cursor+headerLen : end]}, end - cursor, nil
}

// parseListItems decodes {u16 count, 2-byte signature, count entries of
// {u16 length, length Windows-1252 bytes}}, reusing package source's
// decoder rather than hand-rolling the Windows-1252 table a second time.
func parseListItems(buf []byte, cursor int) (*Entry, int, *diag.Diagnostic) {
	n := len(buf)
	count := int(binary.LittleEndian.Uint16(buf[cursor : cursor+2]))
	pos := cursor + 4 // skip count + 2-byte signature
	items := make([]string, 0, count)
	for i := 0; i < count; i++ {
		if pos+2 > n {
			return nil, 0, truncated(cursor, "ListItems entry length")
		}
		length := int(binary.LittleEndian.Uint16(buf[pos : pos+2]))
		pos += 2
		if pos+length > n {
			return nil, 0, &diag.Diagnostic{
				Kind:    diag.ResourceListCountExceedsRemaining,
				Message: "ListItems entry length exceeds remaining bytes",
				Span:    token.Span{Start: cursor, End: cursor},
			}
		}
		items = append(items, source.Decode(buf[pos:pos+length], "").Text())
		pos += length
	}
	return &Entry{Kind: KindListItems, Items: items}, pos - cursor, nil
}

func truncated(cursor int, what string) *diag.Diagnostic {
	return &diag.Diagnostic{
		Kind:    diag.ResourceTruncatedRecord,
		Message: what + " truncated at offset " + strconv.Itoa(cursor),
		Span:    token.Span{Start: cursor, End: cursor},
	}
}
