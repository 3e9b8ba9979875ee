package frx

// FuzzLoad exercises spec.md §9's mandate that no entry point panics,
// overflows, or reads out of bounds on any byte string, including pure
// binary noise — this is the component most at risk of the canonical
// size-underflow crash the spec calls out, since every record's shape is
// inferred rather than declared.
import "testing"

func FuzzLoad(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{0x00, 0x00, 0x00, 0x00, 'l', 't', 0x00, 0x00, 0x00, 0x00, 0x00, 0x00})
	f.Add([]byte{0xFF, 0x05, 0x00})
	f.Add([]byte{0x02, 0x00, 0x03, 0x00})
	f.Add([]byte{0x01})
	f.Fuzz(func(t *testing.T, data []byte) {
		Load(data)
	})
}
