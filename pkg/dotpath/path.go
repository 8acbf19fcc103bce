package dotpath

import (
	"strconv"
	"strings"
)

// Segment is one step of a key path: a string key into a mapping, or an
// integer index into a sequence. String segments that look like integers
// double as indices when the node being walked is a sequence.
type Segment struct {
	Key   string
	Index int
	isInt bool
}

// Key returns a string segment.
func Key(k string) Segment {
	return Segment{Key: k}
}

// Index returns an integer segment.
func Index(i int) Segment {
	return Segment{Index: i, isInt: true}
}

// AsIndex returns the segment as a sequence index. String segments are
// parsed on demand so "items.0.name" can walk through a sequence.
func (s Segment) AsIndex() (int, bool) {
	if s.isInt {
		return s.Index, true
	}
	i, err := strconv.Atoi(s.Key)
	if err != nil {
		return 0, false
	}
	return i, true
}

// AsKey returns the segment as a mapping key.
func (s Segment) AsKey() string {
	if s.isInt {
		return strconv.Itoa(s.Index)
	}
	return s.Key
}

func (s Segment) String() string {
	return s.AsKey()
}

// Path is an ordered list of segments, applied left to right; each segment
// indexes into the result of the previous one. A nil/empty Path resolves
// nothing.
type Path []Segment

// Parse splits a dot-separated path string into segments. The empty string
// parses to a nil path ("no path"), which never resolves to a value.
func Parse(s string) Path {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ".")
	p := make(Path, len(parts))
	for i, part := range parts {
		p[i] = Key(part)
	}
	return p
}

// String renders the path in dot notation.
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, s := range p {
		parts[i] = s.AsKey()
	}
	return strings.Join(parts, ".")
}
