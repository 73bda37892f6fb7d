// Package pagedeck provides page-level editing of PDF documents: an
// in-memory page-set model (delete, insert blank, reorder, extract,
// append, duplicate) plus an all-or-nothing realize step that turns the
// model into a new document. PDF structure is owned by pdfcpu; this
// package never parses or writes PDF syntax itself.
package pagedeck

import (
	"github.com/pageforge-apps/pagedeck-golang/pkg/document"
	"github.com/pageforge-apps/pagedeck-golang/pkg/editor"
	"github.com/pageforge-apps/pagedeck-golang/pkg/notes"
	"github.com/pageforge-apps/pagedeck-golang/pkg/pageset"
)

// Re-export the public types for single-import use.
type (
	Dim      = pageset.Dim
	PageRef  = pageset.PageRef
	Slot     = pageset.Slot
	PageSet  = pageset.PageSet
	OpError  = pageset.OpError
	Handle   = document.Handle
	Registry = document.Registry
	Editor   = editor.Editor
	Note     = notes.Note
)

// Sentinel errors; match with errors.Is.
var (
	ErrOutOfRange           = pageset.ErrOutOfRange
	ErrDanglingReference    = pageset.ErrDanglingReference
	ErrMalformedDocument    = pageset.ErrMalformedDocument
	ErrUnsupportedOperation = pageset.ErrUnsupportedOperation
	ErrEmptySet             = pageset.ErrEmptySet
	ErrExportBusy           = pageset.ErrExportBusy
)

// DefaultBlankDim is the fallback blank-page size, US Letter.
var DefaultBlankDim = pageset.DefaultBlankDim

// Re-export constructors and options.
var (
	NewEditor      = editor.New
	WithLogger     = editor.WithLogger
	NewRegistry    = document.NewRegistry
	NewBlank       = document.NewBlank
	Realize        = document.Realize
	Load           = document.Load
	ProbeFile      = document.ProbeFile
	WithPassword   = document.WithPassword
	WithEncryption = document.WithEncryption
)

// NewSession returns an editor with data opened as its initial
// document: one slot per page, original order.
func NewSession(data []byte, opts ...editor.Option) (*Editor, error) {
	e := editor.New(opts...)
	if _, err := e.Open(data); err != nil {
		return nil, err
	}
	return e, nil
}
