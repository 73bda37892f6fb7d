// Package document owns Document Handles: loaded PDF documents held as
// opaque resources of the pdfcpu document-model library, plus the realize
// step that turns a pageset.PageSet into a new handle. The package never
// parses or writes PDF syntax itself; pdfcpu does all of that.
package document

import (
	"bytes"
	"fmt"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/pageforge-apps/pagedeck-golang/pkg/pageset"
)

// Handle is a loaded document. It is immutable after load: edits happen
// on the pageset model and become a new Handle via Realize. Handle
// implements pageset.Source.
type Handle struct {
	id   string
	data []byte
	ctx  *model.Context
	dims []pageset.Dim
}

// Load parses and validates data and returns an unregistered handle.
// Use Registry.Load when page sets should be able to reference it.
func Load(data []byte) (*Handle, error) {
	return load(data, model.NewDefaultConfiguration())
}

// load parses and validates data with pdfcpu and captures per-page sizes.
func load(data []byte, conf *model.Configuration) (*Handle, error) {
	if conf == nil {
		conf = model.NewDefaultConfiguration()
	}
	ctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", pageset.ErrMalformedDocument, err)
	}
	if err := api.ValidateContext(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", pageset.ErrMalformedDocument, err)
	}

	h := &Handle{
		id:   uuid.NewString(),
		data: data,
		ctx:  ctx,
	}
	if err := h.readPageDims(); err != nil {
		return nil, err
	}
	return h, nil
}

// readPageDims captures the inherited MediaBox size of every page.
func (h *Handle) readPageDims() error {
	h.dims = make([]pageset.Dim, h.ctx.PageCount)
	for i := 1; i <= h.ctx.PageCount; i++ {
		_, _, attrs, err := h.ctx.PageDict(i, false)
		if err != nil {
			return fmt.Errorf("%w: page %d: %v", pageset.ErrMalformedDocument, i, err)
		}
		dim := pageset.DefaultBlankDim
		if attrs != nil && attrs.MediaBox != nil {
			dim = pageset.Dim{
				Width:  attrs.MediaBox.Width(),
				Height: attrs.MediaBox.Height(),
			}
		}
		h.dims[i-1] = dim
	}
	return nil
}

// ID returns the handle's registry id.
func (h *Handle) ID() string {
	return h.id
}

// PageCount returns the number of pages.
func (h *Handle) PageCount() int {
	return len(h.dims)
}

// PageDim returns the size of the 0-based page index.
func (h *Handle) PageDim(index int) (pageset.Dim, error) {
	if index < 0 || index >= len(h.dims) {
		return pageset.Dim{}, fmt.Errorf("page index %d out of range [0, %d): %w",
			index, len(h.dims), pageset.ErrOutOfRange)
	}
	return h.dims[index], nil
}

// SaveOption configures Save.
type SaveOption func(*saveOptions)

type saveOptions struct {
	userPW  string
	ownerPW string
}

// WithEncryption requests password-protected output. Encrypted output is
// not supported; Save fails with ErrUnsupportedOperation so callers can
// present it as a permanent limitation rather than retry.
func WithEncryption(userPW, ownerPW string) SaveOption {
	return func(o *saveOptions) {
		o.userPW = userPW
		o.ownerPW = ownerPW
	}
}

// Save returns the document bytes. Saving the same handle twice yields
// identical bytes; a handle's content never changes after load.
func (h *Handle) Save(opts ...SaveOption) ([]byte, error) {
	var o saveOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.userPW != "" || o.ownerPW != "" {
		return nil, fmt.Errorf("encrypted output: %w", pageset.ErrUnsupportedOperation)
	}
	out := make([]byte, len(h.data))
	copy(out, h.data)
	return out, nil
}
