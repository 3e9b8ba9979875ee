package frx

import (
	"bytes"
	"testing"
)

func TestLoad(t *testing.T) {
	t.Run("literal end-to-end scenario (spec.md §8.4): Blob12", func(t *testing.T) {
		header := []byte{0x3E, 0x04, 0x00, 0x00, 'l', 't', 0x00, 0x00, 0x36, 0x04, 0x00, 0x00}
		payload := bytes.Repeat([]byte{0xAB}, 1078)
		buf := append(append([]byte{}, header...), payload...)

		res := Load(buf)
		if len(res.Diagnostics) != 0 {
			t.Fatalf("unexpected diagnostics: %v", res.Diagnostics)
		}
		if len(res.Value.Entries) != 1 {
			t.Fatalf("Entries = %d, want 1", len(res.Value.Entries))
		}
		e := res.Value.At(0)
		if e == nil {
			t.Fatal("no entry at offset 0")
		}
		if e.Kind != KindBlob12 {
			t.Errorf("Kind = %v, want Blob12", e.Kind)
		}
		if len(e.Data) != 1078 {
			t.Errorf("len(Data) = %d, want 1078", len(e.Data))
		}
	})

	t.Run("literal end-to-end scenario (spec.md §8.5): two Data4 entries", func(t *testing.T) {
		first := append([]byte{0xA2, 0x00, 0x00, 0x00}, bytes.Repeat([]byte{0x41}, 162)...)
		second := append([]byte{0xF4, 0x00, 0x00, 0x00}, bytes.Repeat([]byte{0x42}, 244)...)
		buf := append(append([]byte{}, first...), second...)

		res := Load(buf)
		if len(res.Diagnostics) != 0 {
			t.Fatalf("unexpected diagnostics: %v", res.Diagnostics)
		}
		if len(res.Value.Entries) != 2 {
			t.Fatalf("Entries = %d, want 2", len(res.Value.Entries))
		}
		e0 := res.Value.At(0)
		if e0 == nil || e0.Kind != KindData4 || len(e0.Data) != 162 {
			t.Fatalf("entry at 0 = %+v", e0)
		}
		e1 := res.Value.At(0xA6)
		if e1 == nil || e1.Kind != KindData4 || len(e1.Data) != 244 {
			t.Fatalf("entry at 0xA6 = %+v", e1)
		}
	})

	t.Run("empty record special case (total-size==8, data-size==0)", func(t *testing.T) {
		buf := []byte{0x08, 0x00, 0x00, 0x00, 'l', 't', 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
		res := Load(buf)
		if len(res.Diagnostics) != 0 {
			t.Fatalf("unexpected diagnostics: %v", res.Diagnostics)
		}
		e := res.Value.At(0)
		if e == nil || e.Kind != KindBlob12 || len(e.Data) != 0 {
			t.Fatalf("entry = %+v", e)
		}
	})

	t.Run("Blob12 size underflow is a diagnostic, not a panic", func(t *testing.T) {
		buf := []byte{0x00, 0x00, 0x00, 0x00, 'l', 't', 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
		res := Load(buf)
		if len(res.Diagnostics) == 0 {
			t.Fatal("expected at least one diagnostic")
		}
	})

	t.Run("Data1 record with no special byte pattern", func(t *testing.T) {
		buf := append([]byte{0x03, 0x41, 0x42, 0x43}, []byte{0xFF}...)
		// 0xFF at the end would be misread as a new record's marker with no
		// trailing bytes; confirm it's reported, not panicked on.
		res := Load(buf)
		e := res.Value.At(0)
		if e == nil || e.Kind != KindData1 || string(e.Data) != "ABC" {
			t.Fatalf("entry = %+v", e)
		}
		if len(res.Diagnostics) != 1 {
			t.Fatalf("diagnostics = %v, want exactly one for the trailing 0xFF", res.Diagnostics)
		}
	})

	t.Run("ListItems record with 0x03 signature", func(t *testing.T) {
		buf := []byte{
			0x02, 0x00, // count = 2
			0x03, 0x00, // signature
			0x02, 0x00, 'h', 'i', // "hi"
			0x03, 0x00, 'b', 'y', 'e',
		}
		res := Load(buf)
		if len(res.Diagnostics) != 0 {
			t.Fatalf("unexpected diagnostics: %v", res.Diagnostics)
		}
		e := res.Value.At(0)
		if e == nil || e.Kind != KindListItems {
			t.Fatalf("entry = %+v", e)
		}
		if len(e.Items) != 2 || e.Items[0] != "hi" || e.Items[1] != "bye" {
			t.Errorf("Items = %v", e.Items)
		}
	})

	t.Run("Data3 off-by-one retry recovers a too-large declared size", func(t *testing.T) {
		// Declared size is one byte too many for the buffer (documented IDE bug).
		buf := []byte{0xFF, 0x04, 0x00, 'a', 'b', 'c'}
		res := Load(buf)
		if len(res.Diagnostics) != 0 {
			t.Fatalf("unexpected diagnostics: %v", res.Diagnostics)
		}
		e := res.Value.At(0)
		if e == nil || e.Kind != KindData3 || string(e.Data) != "abc" {
			t.Fatalf("entry = %+v", e)
		}
	})

	t.Run("no panic on pure binary noise of any length", func(t *testing.T) {
		for _, buf := range [][]byte{
			{}, {0x00}, {0xFF}, {0xFF, 0xFF}, bytes.Repeat([]byte{0xAA}, 37),
		} {
			res := Load(buf)
			_ = res
		}
	})

	t.Run("empty input yields no entries and no diagnostics", func(t *testing.T) {
		res := Load(nil)
		if len(res.Value.Entries) != 0 || len(res.Diagnostics) != 0 {
			t.Fatalf("Entries=%v Diagnostics=%v", res.Value.Entries, res.Diagnostics)
		}
	})
}
