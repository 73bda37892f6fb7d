// Package editor ties one registry, one page set, and one note layer
// into the session object UI adapters talk to. It serializes mutations
// against an in-flight export: while Export runs, every mutating call
// and any second export fails with ErrExportBusy, so a concurrent edit
// can never invalidate indices mid-export.
package editor

import (
	"context"
	"sync"

	"github.com/pageforge-apps/pagedeck-golang/pkg/document"
	"github.com/pageforge-apps/pagedeck-golang/pkg/notes"
	"github.com/pageforge-apps/pagedeck-golang/pkg/observability"
	"github.com/pageforge-apps/pagedeck-golang/pkg/pageset"
)

// Editor is one editing session. All methods are safe for concurrent
// use; in the expected single-UI-thread setting the mutex is idle and
// only the export guard matters.
type Editor struct {
	mu        sync.Mutex
	exporting bool

	registry *document.Registry
	set      *pageset.PageSet
	notes    *notes.Layer
	logger   observability.Logger
}

// Option configures New.
type Option func(*Editor)

// WithLogger routes the session's log events to l.
func WithLogger(l observability.Logger) Option {
	return func(e *Editor) {
		e.logger = l
	}
}

// New returns an empty session: no documents loaded, empty set.
func New(opts ...Option) *Editor {
	e := &Editor{
		registry: document.NewRegistry(),
		set:      pageset.New(),
		notes:    notes.NewLayer(),
		logger:   observability.NopLogger{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Registry exposes the session's document registry, e.g. to realize an
// extracted subset against it. Discard sources through Editor.Discard,
// which respects the export guard; discarding directly on the registry
// while an export runs makes that export fail with a dangling reference.
func (e *Editor) Registry() *document.Registry {
	return e.registry
}

// Discard unloads a source document. Slots still referencing it become
// dangling and will fail the next export.
func (e *Editor) Discard(sourceID string) error {
	return e.mutate("discard", func() error {
		e.registry.Discard(sourceID)
		return nil
	})
}

func (e *Editor) mutate(op string, fn func() error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.exporting {
		return &pageset.OpError{Op: op, Slot: -1, Err: pageset.ErrExportBusy}
	}
	return fn()
}

// Open loads data and replaces the session's set with one slot per page
// of the document, in original order. Notes are cleared; they belonged
// to slots that no longer exist.
func (e *Editor) Open(data []byte, opts ...document.LoadOption) (*document.Handle, error) {
	var h *document.Handle
	err := e.mutate("open", func() error {
		var err error
		h, err = e.registry.Load(data, opts...)
		if err != nil {
			return err
		}
		set, err := pageset.FromSource(h)
		if err != nil {
			return err
		}
		e.set = set
		e.notes = notes.NewLayer()
		e.logger.Info("opened document",
			observability.String("source", h.ID()),
			observability.Int("pages", h.PageCount()))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return h, nil
}

// Append loads data and appends one slot per page of the document to
// the end of the set.
func (e *Editor) Append(data []byte, opts ...document.LoadOption) (*document.Handle, error) {
	var h *document.Handle
	err := e.mutate("append", func() error {
		var err error
		h, err = e.registry.Load(data, opts...)
		if err != nil {
			return err
		}
		if err := e.set.AppendForeign(h); err != nil {
			return err
		}
		e.logger.Info("appended document",
			observability.String("source", h.ID()),
			observability.Int("pages", h.PageCount()))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return h, nil
}

// Len returns the number of slots in the session's set.
func (e *Editor) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.set.Len()
}

// Slots returns a copy of the session's slot sequence.
func (e *Editor) Slots() []pageset.Slot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.set.Slots()
}

// DeleteAt removes the slot at index. Notes attached to it are dropped
// with it.
func (e *Editor) DeleteAt(index int) error {
	return e.mutate("delete", func() error {
		slot, err := e.set.Slot(index)
		if err != nil {
			return err
		}
		if err := e.set.DeleteAt(index); err != nil {
			return err
		}
		e.notes.DropSlot(slot.ID)
		return nil
	})
}

// InsertBlankAfter inserts a blank slot after index; see
// pageset.PageSet.InsertBlankAfter for index and sizing rules.
func (e *Editor) InsertBlankAfter(index int, size pageset.Dim) error {
	return e.mutate("insert blank", func() error {
		return e.set.InsertBlankAfter(index, size)
	})
}

// Move reorders a single slot; one call per drag gesture boundary
// crossing. Every intermediate state is a valid set, so the view can
// always render straight from the model.
func (e *Editor) Move(from, to int) error {
	return e.mutate("move", func() error {
		return e.set.Move(from, to)
	})
}

// Duplicate copies the slot at index in place.
func (e *Editor) Duplicate(index int) error {
	return e.mutate("duplicate", func() error {
		return e.set.Duplicate(index)
	})
}

// ExtractSubset returns a new set of the given slots, caller order,
// duplicates legal. The session's own set is untouched.
func (e *Editor) ExtractSubset(indices []int) (*pageset.PageSet, error) {
	var out *pageset.PageSet
	err := e.mutate("extract", func() error {
		var err error
		out, err = e.set.ExtractSubset(indices)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AddNote attaches a sticky note to the slot at index. x and y are
// points from the page's bottom-left corner.
func (e *Editor) AddNote(index int, x, y float64, text string) (notes.Note, error) {
	var n notes.Note
	err := e.mutate("add note", func() error {
		slot, err := e.set.Slot(index)
		if err != nil {
			return err
		}
		n = e.notes.Add(slot.ID, x, y, text)
		return nil
	})
	if err != nil {
		return notes.Note{}, err
	}
	return n, nil
}

// RemoveNote deletes a note by id.
func (e *Editor) RemoveNote(noteID string) bool {
	removed := false
	_ = e.mutate("remove note", func() error {
		removed = e.notes.Remove(noteID)
		return nil
	})
	return removed
}

// Notes returns a copy of the session's notes.
func (e *Editor) Notes() []notes.Note {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.notes.All()
}

// Export realizes the session's set into a new document handle, with
// notes stamped on. Only one export may be in flight at a time; a second
// request, or any mutation while one runs, fails with ErrExportBusy.
// Export works on a snapshot and never mutates loaded handles, so a
// cancelled ctx simply discards the result.
func (e *Editor) Export(ctx context.Context) (*document.Handle, error) {
	e.mu.Lock()
	if e.exporting {
		e.mu.Unlock()
		return nil, &pageset.OpError{Op: "export", Slot: -1, Err: pageset.ErrExportBusy}
	}
	e.exporting = true
	set := e.set.Clone()
	layer := e.notes.Clone()
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.exporting = false
		e.mu.Unlock()
	}()

	h, err := document.Realize(ctx, set, e.registry, document.WithLogger(e.logger))
	if err != nil {
		e.logger.Error("export failed", observability.Error("err", err))
		return nil, err
	}

	if layer.Len() > 0 {
		data, err := h.Save()
		if err != nil {
			return nil, err
		}
		stamped, err := layer.Stamp(data, set)
		if err != nil {
			e.logger.Error("export failed", observability.Error("err", err))
			return nil, err
		}
		h, err = document.Load(stamped)
		if err != nil {
			return nil, err
		}
	}

	e.logger.Info("exported document", observability.Int("pages", h.PageCount()))
	return h, nil
}

// ExportBytes is Export followed by Save.
func (e *Editor) ExportBytes(ctx context.Context) ([]byte, error) {
	h, err := e.Export(ctx)
	if err != nil {
		return nil, err
	}
	return h.Save()
}
