// Package notes holds the sticky-note / inserted-text layer. Notes
// attach to slot ids rather than slot indices, so they follow their page
// through reorders for free and disappear with it on delete. They are
// rendered onto realized output as pdfcpu text watermarks.
package notes

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/pageforge-apps/pagedeck-golang/pkg/pageset"
)

// DefaultFontSize is used when a note does not set its own.
const DefaultFontSize = 12

// Note is one piece of text anchored to a page. X and Y are points from
// the page's bottom-left corner.
type Note struct {
	ID       string
	SlotID   string
	X, Y     float64
	Text     string
	FontSize int
}

// Layer is the set of notes for one editing session. Not safe for
// concurrent use; the editor package serializes access.
type Layer struct {
	notes []Note
}

// NewLayer returns an empty layer.
func NewLayer() *Layer {
	return &Layer{}
}

// Add attaches a note to the slot and returns it.
func (l *Layer) Add(slotID string, x, y float64, text string) Note {
	n := Note{
		ID:       uuid.NewString(),
		SlotID:   slotID,
		X:        x,
		Y:        y,
		Text:     text,
		FontSize: DefaultFontSize,
	}
	l.notes = append(l.notes, n)
	return n
}

// Remove deletes the note with the given id, reporting whether it
// existed.
func (l *Layer) Remove(noteID string) bool {
	for i, n := range l.notes {
		if n.ID == noteID {
			l.notes = append(l.notes[:i], l.notes[i+1:]...)
			return true
		}
	}
	return false
}

// ForSlot returns the notes attached to a slot, in creation order.
func (l *Layer) ForSlot(slotID string) []Note {
	var out []Note
	for _, n := range l.notes {
		if n.SlotID == slotID {
			out = append(out, n)
		}
	}
	return out
}

// DropSlot removes every note attached to slotID. Called when the slot
// is deleted from the set.
func (l *Layer) DropSlot(slotID string) {
	kept := l.notes[:0]
	for _, n := range l.notes {
		if n.SlotID != slotID {
			kept = append(kept, n)
		}
	}
	l.notes = kept
}

// All returns a copy of every note.
func (l *Layer) All() []Note {
	out := make([]Note, len(l.notes))
	copy(out, l.notes)
	return out
}

// Clone returns a copy sharing no state with l.
func (l *Layer) Clone() *Layer {
	c := &Layer{notes: make([]Note, len(l.notes))}
	copy(c.notes, l.notes)
	return c
}

// Len returns the number of notes.
func (l *Layer) Len() int {
	return len(l.notes)
}

// Stamp renders every note onto data, a realized document whose page i
// corresponds to slot i of set. A note whose slot is no longer in the
// set fails with ErrDanglingReference rather than being skipped.
func (l *Layer) Stamp(data []byte, set *pageset.PageSet) ([]byte, error) {
	if l.Len() == 0 {
		return data, nil
	}

	pageOf := make(map[string]int)
	for i, slot := range set.Slots() {
		pageOf[slot.ID] = i + 1
	}

	conf := model.NewDefaultConfiguration()
	out := data
	for _, n := range l.notes {
		page, ok := pageOf[n.SlotID]
		if !ok {
			return nil, fmt.Errorf("note %s: slot %s gone: %w", n.ID, n.SlotID, pageset.ErrDanglingReference)
		}

		size := n.FontSize
		if size <= 0 {
			size = DefaultFontSize
		}
		desc := fmt.Sprintf("font:Helvetica, points:%d, pos:bl, rot:0, scale:1 abs, op:1", size)
		wm, err := pdfcpu.ParseTextWatermarkDetails(n.Text, desc, true, types.POINTS)
		if err != nil {
			return nil, fmt.Errorf("note %s: %w", n.ID, err)
		}
		wm.Dx = n.X
		wm.Dy = n.Y

		var buf bytes.Buffer
		pages := []string{strconv.Itoa(page)}
		if err := api.AddWatermarks(bytes.NewReader(out), &buf, pages, wm, conf); err != nil {
			return nil, fmt.Errorf("stamping note %s on page %d: %w", n.ID, page, err)
		}
		out = buf.Bytes()
	}
	return out, nil
}
