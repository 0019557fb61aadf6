// Package namepath provides an immutable dotted name used to address namespaces,
// declarations and metamodel elements.
package namepath

import "strings"

// Separator joins path segments
const Separator = "."

// Path is an immutable dotted path such as "shapes.Circle.radius".
// Operations never fail: removing a segment from a single segment path returns the path unchanged.
type Path struct {
	segments []string
}

// Parse splits dotted name into a path, empty segments are dropped
func Parse(dotted string) Path {
	return New(strings.Split(dotted, Separator)...)
}

// New creates a path from segments; a segment may itself be dotted
func New(segments ...string) Path {
	return Path{}.Append(segments...)
}

// IsZero returns true for a path without segments
func (p Path) IsZero() bool {
	return len(p.segments) == 0
}

// Len returns number of segments
func (p Path) Len() int {
	return len(p.segments)
}

// Segments returns a copy of path segments
func (p Path) Segments() []string {
	return append([]string{}, p.segments...)
}

// String returns dotted form
func (p Path) String() string {
	return strings.Join(p.segments, Separator)
}

// Append returns a new path with the supplied segments added, empty arguments are ignored
func (p Path) Append(segments ...string) Path {
	result := make([]string, len(p.segments), len(p.segments)+len(segments))
	copy(result, p.segments)
	for _, segment := range segments {
		if segment == "" {
			continue
		}
		for _, part := range strings.Split(segment, Separator) {
			if part = strings.TrimSpace(part); part != "" {
				result = append(result, part)
			}
		}
	}
	return Path{segments: result}
}

// Concat returns p followed by other
func (p Path) Concat(other Path) Path {
	return p.Append(other.segments...)
}

// Parent returns the path without its last segment
func (p Path) Parent() Path {
	return p.CutLastSegment()
}

// FirstSegment returns the first segment or empty string for a zero path
func (p Path) FirstSegment() string {
	if len(p.segments) == 0 {
		return ""
	}
	return p.segments[0]
}

// LastSegment returns the last segment or empty string for a zero path
func (p Path) LastSegment() string {
	if len(p.segments) == 0 {
		return ""
	}
	return p.segments[len(p.segments)-1]
}

// HasMultipleSegments returns true if path has more than one segment
func (p Path) HasMultipleSegments() bool {
	return len(p.segments) > 1
}

// CutFirstSegment removes the first segment
func (p Path) CutFirstSegment() Path {
	if !p.HasMultipleSegments() {
		return p
	}
	return Path{segments: append([]string{}, p.segments[1:]...)}
}

// CutLastSegment removes the last segment
func (p Path) CutLastSegment() Path {
	return p.CutLastSegments(1)
}

// CutLastSegments removes up to n trailing segments, at least one segment is always kept
func (p Path) CutLastSegments(n int) Path {
	if n <= 0 || !p.HasMultipleSegments() {
		return p
	}
	keep := len(p.segments) - n
	if keep < 1 {
		keep = 1
	}
	return Path{segments: append([]string{}, p.segments[:keep]...)}
}

// CutFirstSegments removes up to n leading segments, at least one segment is always kept
func (p Path) CutFirstSegments(n int) Path {
	if n <= 0 || !p.HasMultipleSegments() {
		return p
	}
	if n > len(p.segments)-1 {
		n = len(p.segments) - 1
	}
	return Path{segments: append([]string{}, p.segments[n:]...)}
}

// HasPrefix reports whether prefix matches leading segments of p
func (p Path) HasPrefix(prefix Path) bool {
	if prefix.IsZero() || len(prefix.segments) > len(p.segments) {
		return false
	}
	for i, segment := range prefix.segments {
		if p.segments[i] != segment {
			return false
		}
	}
	return true
}

// TrimPrefix removes prefix segments if p starts with prefix and has more segments than it
func (p Path) TrimPrefix(prefix Path) Path {
	if !p.HasPrefix(prefix) || len(p.segments) == len(prefix.segments) {
		return p
	}
	return Path{segments: append([]string{}, p.segments[len(prefix.segments):]...)}
}

// TrimLastSuffix strips suffix text from the last segment, the segment is kept when it equals suffix
func (p Path) TrimLastSuffix(suffix string) Path {
	last := p.LastSegment()
	if suffix == "" || last == suffix || !strings.HasSuffix(last, suffix) {
		return p
	}
	return p.WithLastSegment(strings.TrimSuffix(last, suffix))
}

// WithLastSegment replaces the last segment
func (p Path) WithLastSegment(segment string) Path {
	if len(p.segments) == 0 {
		return New(segment)
	}
	if segment == "" {
		return p
	}
	result := append([]string{}, p.segments...)
	result[len(result)-1] = segment
	return Path{segments: result}
}

// Contains returns true if any segment equals segment
func (p Path) Contains(segment string) bool {
	for _, candidate := range p.segments {
		if candidate == segment {
			return true
		}
	}
	return false
}

// Equal compares paths segment-wise
func (p Path) Equal(other Path) bool {
	if len(p.segments) != len(other.segments) {
		return false
	}
	for i := range p.segments {
		if p.segments[i] != other.segments[i] {
			return false
		}
	}
	return true
}
