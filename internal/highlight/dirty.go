package highlight

import "fmt"

// DirtyRange is an inclusive span of lines whose cached tokens are stale.
type DirtyRange struct {
	Start uint32
	End   uint32
}

// Len returns the number of lines in the range.
func (r DirtyRange) Len() uint32 {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start + 1
}

// Contains reports whether line lies in the range.
func (r DirtyRange) Contains(line uint32) bool {
	return line >= r.Start && line <= r.End
}

// String returns the range as [start, end].
func (r DirtyRange) String() string {
	return fmt.Sprintf("[%d, %d]", r.Start, r.End)
}

// dirtySet is a sorted list of disjoint, non-adjacent line ranges.
type dirtySet struct {
	ranges []DirtyRange
}

func (s *dirtySet) empty() bool { return len(s.ranges) == 0 }

func (s *dirtySet) clear() { s.ranges = s.ranges[:0] }

// lines returns the number of dirty lines.
func (s *dirtySet) lines() int {
	n := 0
	for _, r := range s.ranges {
		n += int(r.Len())
	}
	return n
}

func (s *dirtySet) contains(line uint32) bool {
	for _, r := range s.ranges {
		if r.Contains(line) {
			return true
		}
		if r.Start > line {
			break
		}
	}
	return false
}

// add marks [start, end] dirty, coalescing with overlapping or adjacent
// ranges.
func (s *dirtySet) add(start, end uint32) {
	if end < start {
		return
	}
	out := make([]DirtyRange, 0, len(s.ranges)+1)
	merged := DirtyRange{Start: start, End: end}
	placed := false
	for _, r := range s.ranges {
		switch {
		case r.End+1 < merged.Start:
			out = append(out, r)
		case merged.End+1 < r.Start:
			if !placed {
				out = append(out, merged)
				placed = true
			}
			out = append(out, r)
		default:
			merged.Start = min(merged.Start, r.Start)
			merged.End = max(merged.End, r.End)
		}
	}
	if !placed {
		out = append(out, merged)
	}
	s.ranges = out
}

// first returns the lowest dirty line.
func (s *dirtySet) first() (uint32, bool) {
	if len(s.ranges) == 0 {
		return 0, false
	}
	return s.ranges[0].Start, true
}

// popFirst clears the lowest dirty line.
func (s *dirtySet) popFirst() {
	if len(s.ranges) == 0 {
		return
	}
	if s.ranges[0].Start == s.ranges[0].End {
		s.ranges = s.ranges[1:]
		return
	}
	s.ranges[0].Start++
}

// splice adjusts the set for oldN lines at start being replaced by newN
// lines. Lines inside the replaced block collapse onto start.
func (s *dirtySet) splice(start, oldN, newN uint32) {
	if len(s.ranges) == 0 {
		return
	}
	remap := func(line uint32) uint32 {
		switch {
		case line < start:
			return line
		case line >= start+oldN:
			return line - oldN + newN
		}
		return start
	}
	old := s.ranges
	s.ranges = nil
	for _, r := range old {
		s.add(remap(r.Start), remap(r.End))
	}
}

// truncate drops every line at or beyond n.
func (s *dirtySet) truncate(n uint32) {
	for i := len(s.ranges) - 1; i >= 0; i-- {
		r := &s.ranges[i]
		if r.Start >= n {
			s.ranges = s.ranges[:i]
			continue
		}
		if r.End >= n {
			r.End = n - 1
		}
		break
	}
}
