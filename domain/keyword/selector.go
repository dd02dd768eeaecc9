package keyword

import "strings"

// Selector models the incremental multi-select used by the publish form:
// an ordered list of chosen keywords, the catalog they were chosen from,
// and the free-text search buffer. All transitions are pure; the only
// I/O-bound step (registering a brand-new keyword with the remote catalog)
// is split out so callers perform it between CommitBuffer and
// ApplyRegistered.
type Selector struct {
	catalog  []Keyword
	selected []Keyword
	buffer   string
	open     bool
}

// NewSelector creates a selector over the given catalog with an initial
// selection. Both inputs are deduplicated by value; selected entries are
// recorded in the catalog if missing so candidates stay consistent.
func NewSelector(catalog, selected []Keyword) *Selector {
	s := &Selector{catalog: Dedupe(catalog)}
	for _, k := range Dedupe(selected) {
		if !s.inCatalog(k.Value) {
			s.catalog = append(s.catalog, k)
		}
		s.selected = append(s.selected, k)
	}
	return s
}

// Selected returns the chosen keywords in insertion order.
func (s *Selector) Selected() []Keyword {
	out := make([]Keyword, len(s.selected))
	copy(out, s.selected)
	return out
}

// Candidates returns the catalog entries not currently selected.
func (s *Selector) Candidates() []Keyword {
	chosen := make(map[string]bool, len(s.selected))
	for _, k := range s.selected {
		chosen[k.Value] = true
	}
	out := make([]Keyword, 0, len(s.catalog))
	for _, k := range s.catalog {
		if !chosen[k.Value] {
			out = append(out, k)
		}
	}
	return out
}

// Catalog returns every known keyword, selected or not.
func (s *Selector) Catalog() []Keyword {
	out := make([]Keyword, len(s.catalog))
	copy(out, s.catalog)
	return out
}

// Buffer returns the current search/entry text.
func (s *Selector) Buffer() string {
	return s.buffer
}

// IsOpen reports whether the suggestion list is showing.
func (s *Selector) IsOpen() bool {
	return s.open
}

// SetBuffer replaces the search/entry text and opens the suggestion list.
func (s *Selector) SetBuffer(text string) {
	s.buffer = text
	s.open = true
}

// Select moves a candidate into the selection and clears the buffer.
// Selecting a value that is not currently a candidate is a no-op.
func (s *Selector) Select(value string) bool {
	for _, k := range s.Candidates() {
		if k.Value == value {
			s.selected = append(s.selected, k)
			s.buffer = ""
			return true
		}
	}
	return false
}

// Deselect removes a keyword from the selection by value. It becomes a
// candidate again.
func (s *Selector) Deselect(value string) bool {
	for i, k := range s.selected {
		if k.Value == value {
			s.selected = append(s.selected[:i], s.selected[i+1:]...)
			return true
		}
	}
	return false
}

// PopLast removes the most recently selected keyword. This is the
// delete/backspace gesture when the buffer is empty; with a non-empty
// buffer the keystroke edits the buffer instead, so PopLast is a no-op.
func (s *Selector) PopLast() bool {
	if s.buffer != "" || len(s.selected) == 0 {
		return false
	}
	s.selected = s.selected[:len(s.selected)-1]
	return true
}

// Close hides the suggestion list without touching the selection.
func (s *Selector) Close() {
	s.open = false
}

// Commit is the result of committing the search buffer.
type Commit struct {
	// Selected is set when the buffer matched an existing candidate,
	// which has been moved into the selection.
	Selected *Keyword
	// Pending is set when no candidate matched: a new keyword must be
	// registered with the remote catalog before ApplyRegistered is
	// called. The selector state is untouched until then.
	Pending *Keyword
}

// CommitBuffer commits the trimmed search buffer. Empty or
// whitespace-only buffers are ignored. If the trimmed text matches a
// candidate's value (case-insensitively) that candidate is selected;
// otherwise the returned Commit carries the keyword to register.
func (s *Selector) CommitBuffer() Commit {
	trimmed := strings.TrimSpace(s.buffer)
	if trimmed == "" {
		return Commit{}
	}
	value := strings.ToLower(trimmed)
	if s.Select(value) {
		return Commit{Selected: &s.selected[len(s.selected)-1]}
	}
	if s.isSelected(value) {
		// Already chosen; committing again is a no-op.
		s.buffer = ""
		return Commit{}
	}
	return Commit{Pending: &Keyword{Value: value, Label: trimmed}}
}

// ApplyRegistered records a keyword the remote catalog accepted: it is
// appended to both the catalog and the selection, and the buffer is
// cleared. Call only after a successful registration; on failure the
// selector keeps its previous state, buffer included.
func (s *Selector) ApplyRegistered(k Keyword) {
	if !s.inCatalog(k.Value) {
		s.catalog = append(s.catalog, k)
	}
	if !s.isSelected(k.Value) {
		s.selected = append(s.selected, k)
	}
	s.buffer = ""
}

func (s *Selector) inCatalog(value string) bool {
	for _, k := range s.catalog {
		if k.Value == value {
			return true
		}
	}
	return false
}

func (s *Selector) isSelected(value string) bool {
	for _, k := range s.selected {
		if k.Value == value {
			return true
		}
	}
	return false
}
