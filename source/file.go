package source

// File is a decoded, immutable input: a logical filename plus the UTF-8 text
// produced from Windows-1252 bytes by Decode. Tokens and CST nodes borrow
// from Text for the lifetime of the File.
type File struct {
	name string
	text string
	size int // original byte count, for the invariant check in tests
}

// New wraps already-decoded UTF-8 text as a File, for callers building
// synthetic sources (tests, round-trip reconstruction) that skip Decode.
func New(name, text string) *File {
	return &File{name: name, text: text, size: len(text)}
}

// Name is the logical filename this File was decoded for.
func (f *File) Name() string { return f.name }

// Text is the full decoded UTF-8 buffer.
func (f *File) Text() string { return f.text }

// Len returns the byte length of the decoded UTF-8 text.
func (f *File) Len() int { return len(f.text) }

// Slice returns the substring of Text between two byte offsets. Both must
// be scalar-aligned; offsets produced by Stream always are. Out-of-range
// offsets are clamped rather than panicking.
func (f *File) Slice(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(f.text) {
		end = len(f.text)
	}
	if start > end {
		return ""
	}
	return f.text[start:end]
}
