package document

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/pageforge-apps/pagedeck-golang/pkg/observability"
	"github.com/pageforge-apps/pagedeck-golang/pkg/pageset"
)

// Resolver maps a slot's SourceID to a loaded handle. *Registry
// implements it.
type Resolver interface {
	Resolve(id string) (*Handle, bool)
}

// RealizeOption configures Realize.
type RealizeOption func(*realizeOptions)

type realizeOptions struct {
	logger observability.Logger
}

// WithLogger makes Realize log per-slot progress.
func WithLogger(l observability.Logger) RealizeOption {
	return func(o *realizeOptions) {
		o.logger = l
	}
}

// Realize builds a new document from set: one output page per slot, in
// slot order, so output page i corresponds exactly to slot i. Source
// pages are copied, never moved; input handles stay valid and untouched.
//
// Realize is all-or-nothing. Every slot is checked against res before
// any document work starts: an empty set fails with ErrEmptySet, and a
// slot whose source is unloaded or whose page index is beyond the
// source's page count fails with ErrDanglingReference. No partial
// document is ever produced. Cancelling ctx abandons the build; nothing
// needs rolling back because inputs are never mutated.
func Realize(ctx context.Context, set *pageset.PageSet, res Resolver, opts ...RealizeOption) (*Handle, error) {
	o := realizeOptions{logger: observability.NopLogger{}}
	for _, opt := range opts {
		opt(&o)
	}

	slots := set.Slots()
	if len(slots) == 0 {
		return nil, &pageset.OpError{Op: "realize", Slot: -1, Err: pageset.ErrEmptySet}
	}
	for i, slot := range slots {
		if slot.Ref.IsBlank() {
			continue
		}
		h, ok := res.Resolve(slot.Ref.SourceID)
		if !ok {
			return nil, &pageset.OpError{Op: "realize", Slot: i,
				Err: fmt.Errorf("source %s not loaded: %w", slot.Ref.SourceID, pageset.ErrDanglingReference)}
		}
		if slot.Ref.PageIndex < 0 || slot.Ref.PageIndex >= h.PageCount() {
			return nil, &pageset.OpError{Op: "realize", Slot: i,
				Err: fmt.Errorf("page %d of source %s: %w", slot.Ref.PageIndex, slot.Ref.SourceID, pageset.ErrDanglingReference)}
		}
	}

	conf := model.NewDefaultConfiguration()

	// One single-page part per source slot, in slot order. Duplicated
	// slots share a cache entry, so each distinct (source, page) pair is
	// extracted once. Blank slots are inserted after the merge.
	cache := make(map[pageset.PageRef][]byte)
	var parts []io.ReadSeeker
	for i, slot := range slots {
		if slot.Ref.IsBlank() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, ok := cache[slot.Ref]
		if !ok {
			var err error
			data, err = buildPart(slot.Ref, res, conf)
			if err != nil {
				return nil, &pageset.OpError{Op: "realize", Slot: i, Err: err}
			}
			cache[slot.Ref] = data
		}
		parts = append(parts, bytes.NewReader(data))
		o.logger.Debug("realized slot",
			observability.Int("slot", i),
			observability.String("source", slot.Ref.SourceID),
			observability.Int("page", slot.Ref.PageIndex))
	}

	out, err := assemble(slots, parts, conf)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	h, err := load(out, model.NewDefaultConfiguration())
	if err != nil {
		return nil, err
	}
	o.logger.Info("realized page set",
		observability.Int("slots", len(slots)),
		observability.Int("pages", h.PageCount()))
	return h, nil
}

// assemble merges the source parts and inserts blank slots at their
// positions. With no source slots the whole document is built blank.
func assemble(slots []pageset.Slot, parts []io.ReadSeeker, conf *model.Configuration) ([]byte, error) {
	if len(parts) == 0 {
		dims := make([]pageset.Dim, len(slots))
		for i, slot := range slots {
			dims[i] = slot.Ref.Dim
		}
		return blankDoc(dims, conf)
	}

	var buf bytes.Buffer
	if err := api.MergeRaw(parts, &buf, false, conf); err != nil {
		return nil, fmt.Errorf("merging realized pages: %w", err)
	}
	out := buf.Bytes()

	// Walk blanks in ascending slot order; each insert grows the page
	// count, so slot index i is exactly the 0-based target position.
	pageCount := len(parts)
	for i, slot := range slots {
		if !slot.Ref.IsBlank() {
			continue
		}
		var err error
		if i < pageCount {
			out, err = insertBlank(out, i+1, true, slot.Ref.Dim, conf)
		} else {
			out, err = insertBlank(out, pageCount, false, slot.Ref.Dim, conf)
		}
		if err != nil {
			return nil, &pageset.OpError{Op: "realize", Slot: i, Err: err}
		}
		pageCount++
	}
	return out, nil
}

// buildPart produces the single-page document for one source slot. The
// resolver is consulted again here: a source discarded between the
// prevalidation pass and part building must surface as a dangling
// reference, not a crash.
func buildPart(ref pageset.PageRef, res Resolver, conf *model.Configuration) ([]byte, error) {
	h, ok := res.Resolve(ref.SourceID)
	if !ok || h == nil {
		return nil, fmt.Errorf("source %s unloaded during realize: %w", ref.SourceID, pageset.ErrDanglingReference)
	}
	var buf bytes.Buffer
	pages := []string{strconv.Itoa(ref.PageIndex + 1)}
	if err := api.Trim(bytes.NewReader(h.data), &buf, pages, conf); err != nil {
		return nil, fmt.Errorf("extracting page %d of %s: %w", ref.PageIndex, ref.SourceID, err)
	}
	return buf.Bytes(), nil
}
