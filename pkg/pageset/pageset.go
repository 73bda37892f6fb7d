// Package pageset holds the in-memory model of an output document: an
// ordered sequence of page references plus the operations that mutate it.
// It never touches document bytes; realizing a set into a document is the
// document package's job.
package pageset

import (
	"github.com/google/uuid"
)

// Dim is a page size in PDF points (1" = 72pt).
type Dim struct {
	Width  float64
	Height float64
}

// IsZero reports whether no size has been specified.
func (d Dim) IsZero() bool {
	return d.Width == 0 && d.Height == 0
}

// DefaultBlankDim is the size used for a blank page when no size is given
// and none can be derived from an adjacent slot: US Letter, 8.5" x 11".
var DefaultBlankDim = Dim{Width: 612, Height: 792}

// PageRef identifies one page's content: either a page of a loaded source
// document, or a blank page of a given size.
type PageRef struct {
	// SourceID is the id of the source document, empty for blank pages.
	SourceID string
	// PageIndex is the 0-based page index within the source document.
	// Meaningless for blank pages.
	PageIndex int
	// Dim is the page size: captured at slot creation for source pages,
	// the requested size for blank pages.
	Dim Dim
}

// IsBlank reports whether the ref describes a blank page rather than a
// page of a source document.
func (r PageRef) IsBlank() bool {
	return r.SourceID == ""
}

// Slot is one position in a PageSet. Its ID is stable for the slot's
// lifetime and unique per occurrence, so the same source page appearing
// twice yields two distinct slots. UI layers key drag-and-drop rows and
// note attachments on it.
type Slot struct {
	ID  string
	Ref PageRef
}

func newSlot(ref PageRef) Slot {
	return Slot{ID: uuid.NewString(), Ref: ref}
}

// Source is what a PageSet needs to know about a loaded document.
// Implemented by document.Handle.
type Source interface {
	// ID returns the document's registry id.
	ID() string
	// PageCount returns the number of pages.
	PageCount() int
	// PageDim returns the size of the 0-based page index.
	PageDim(index int) (Dim, error)
}

// PageSet is an ordered sequence of slots describing the target layout of
// an output document. The zero value is an empty set, which is legal to
// edit but not to export. PageSet is not safe for concurrent use; the
// editor package serializes access.
type PageSet struct {
	slots []Slot
}

// New returns an empty set.
func New() *PageSet {
	return &PageSet{}
}

// FromSource returns a set with one slot per page of src, in original
// order.
func FromSource(src Source) (*PageSet, error) {
	s := New()
	if err := s.AppendForeign(src); err != nil {
		return nil, err
	}
	return s, nil
}

// Merge returns a set holding the concatenation of all pages of the given
// sources, in argument order.
func Merge(srcs ...Source) (*PageSet, error) {
	s := New()
	for _, src := range srcs {
		if err := s.AppendForeign(src); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Len returns the number of slots.
func (s *PageSet) Len() int {
	return len(s.slots)
}

// Slots returns a copy of the slot sequence.
func (s *PageSet) Slots() []Slot {
	out := make([]Slot, len(s.slots))
	copy(out, s.slots)
	return out
}

// Slot returns the slot at index.
func (s *PageSet) Slot(index int) (Slot, error) {
	if index < 0 || index >= len(s.slots) {
		return Slot{}, opErr("slot", index, ErrOutOfRange)
	}
	return s.slots[index], nil
}

// Clone returns a deep copy sharing no state with s. Slot ids are
// preserved; the copy represents the same layout, not a duplicate of it.
func (s *PageSet) Clone() *PageSet {
	c := &PageSet{slots: make([]Slot, len(s.slots))}
	copy(c.slots, s.slots)
	return c
}

// DeleteAt removes the slot at index, keeping the order of the remaining
// slots. The set is unchanged on error.
func (s *PageSet) DeleteAt(index int) error {
	if index < 0 || index >= len(s.slots) {
		return opErr("delete", index, ErrOutOfRange)
	}
	s.slots = append(s.slots[:index], s.slots[index+1:]...)
	return nil
}

// InsertBlankAfter inserts a blank-page slot immediately after index.
// index -1 inserts at the start. A zero size derives from the slot at
// index (or the first slot for -1); on an empty set it falls back to
// DefaultBlankDim. Size is taken from the model's adjacent slot, never
// from the live document, so it stays correct after prior edits.
func (s *PageSet) InsertBlankAfter(index int, size Dim) error {
	if index < -1 || index >= len(s.slots) {
		return opErr("insert blank", index, ErrOutOfRange)
	}
	if size.IsZero() {
		switch {
		case index >= 0:
			size = s.slots[index].Ref.Dim
		case len(s.slots) > 0:
			size = s.slots[0].Ref.Dim
		default:
			size = DefaultBlankDim
		}
	}
	slot := newSlot(PageRef{Dim: size})
	at := index + 1
	s.slots = append(s.slots, Slot{})
	copy(s.slots[at+1:], s.slots[at:])
	s.slots[at] = slot
	return nil
}

// Move removes the slot at from and reinserts it at position to of the
// post-removal sequence: a stable single-element reorder, not a swap.
// Moving a slot onto itself is a no-op. The set is unchanged on error.
func (s *PageSet) Move(from, to int) error {
	n := len(s.slots)
	if from < 0 || from >= n {
		return opErr("move", from, ErrOutOfRange)
	}
	if to < 0 || to >= n {
		return opErr("move", to, ErrOutOfRange)
	}
	if from == to {
		return nil
	}
	slot := s.slots[from]
	rest := append(s.slots[:from], s.slots[from+1:]...)
	rest = append(rest, Slot{})
	copy(rest[to+1:], rest[to:])
	rest[to] = slot
	s.slots = rest
	return nil
}

// ExtractSubset returns a new set containing the slots named by indices,
// in the order given. Duplicate indices are legal and produce duplicate
// output slots; each output slot gets a fresh id. No partial result is
// produced on error; s itself is never modified.
func (s *PageSet) ExtractSubset(indices []int) (*PageSet, error) {
	out := &PageSet{slots: make([]Slot, 0, len(indices))}
	for _, idx := range indices {
		if idx < 0 || idx >= len(s.slots) {
			return nil, opErr("extract", idx, ErrOutOfRange)
		}
		out.slots = append(out.slots, newSlot(s.slots[idx].Ref))
	}
	return out, nil
}

// Duplicate inserts a copy of the slot at index immediately after it.
// The copy has a fresh id but points at the same content.
func (s *PageSet) Duplicate(index int) error {
	if index < 0 || index >= len(s.slots) {
		return opErr("duplicate", index, ErrOutOfRange)
	}
	slot := newSlot(s.slots[index].Ref)
	s.slots = append(s.slots, Slot{})
	copy(s.slots[index+2:], s.slots[index+1:])
	s.slots[index+1] = slot
	return nil
}

// AppendForeign appends one slot per page of src, in src's natural page
// order. The set is unchanged on error.
func (s *PageSet) AppendForeign(src Source) error {
	n := src.PageCount()
	added := make([]Slot, 0, n)
	for i := 0; i < n; i++ {
		dim, err := src.PageDim(i)
		if err != nil {
			return opErr("append", i, err)
		}
		added = append(added, newSlot(PageRef{
			SourceID:  src.ID(),
			PageIndex: i,
			Dim:       dim,
		}))
	}
	s.slots = append(s.slots, added...)
	return nil
}

// SourceIDs returns the distinct source document ids referenced by the
// set, in first-appearance order. Blank slots contribute nothing.
func (s *PageSet) SourceIDs() []string {
	seen := make(map[string]bool)
	var ids []string
	for _, slot := range s.slots {
		if slot.Ref.IsBlank() || seen[slot.Ref.SourceID] {
			continue
		}
		seen[slot.Ref.SourceID] = true
		ids = append(ids, slot.Ref.SourceID)
	}
	return ids
}
