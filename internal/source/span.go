package source

import (
	"fmt"

	"fortio.org/safecast"
)

// Span is a half-open byte range [Start, End) inside a single file.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

// MakeSpan builds a Span from int offsets, panicking on overflow.
// Offsets come from go/token positions which are ints.
func MakeSpan(file FileID, start, end int) Span {
	s, err := safecast.Conv[uint32](start)
	if err != nil {
		panic(fmt.Errorf("span start overflow: %w", err))
	}
	e, err := safecast.Conv[uint32](end)
	if err != nil {
		panic(fmt.Errorf("span end overflow: %w", err))
	}
	return Span{File: file, Start: s, End: e}
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Cover extends the span to include other. Spans from different files
// are left untouched.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Text returns the bytes the span covers inside content, clamped to
// the content bounds.
func (s Span) Text(content []byte) []byte {
	start, end := s.Start, s.End
	n, err := safecast.Conv[uint32](len(content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}
	if start > n {
		start = n
	}
	if end > n {
		end = n
	}
	return content[start:end]
}
