package document

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/pageforge-apps/pagedeck-golang/pkg/pageset"
)

// seedJSON describes a one-page document for api.Create. pdfcpu has no
// from-nothing blank-page constructor, so blankDoc starts from this seed,
// inserts the requested pages, and removes the seed again.
const seedJSON = `{"pages": {"1": {"content": {}}}}`

func seedPage(conf *model.Configuration) ([]byte, error) {
	var buf bytes.Buffer
	if err := api.Create(nil, strings.NewReader(seedJSON), &buf, conf); err != nil {
		return nil, fmt.Errorf("creating seed page: %w", err)
	}
	return buf.Bytes(), nil
}

// insertBlank adds one blank page of the given size to data, before the
// 1-based page when before is set, after it otherwise.
func insertBlank(data []byte, page int, before bool, dim pageset.Dim, conf *model.Configuration) ([]byte, error) {
	if dim.IsZero() {
		dim = pageset.DefaultBlankDim
	}
	pageConf := &pdfcpu.PageConfiguration{
		PageDim: &types.Dim{Width: dim.Width, Height: dim.Height},
		UserDim: true,
		InpUnit: types.POINTS,
	}
	var buf bytes.Buffer
	pages := []string{strconv.Itoa(page)}
	if err := api.InsertPages(bytes.NewReader(data), &buf, pages, before, pageConf, conf); err != nil {
		return nil, fmt.Errorf("inserting blank page: %w", err)
	}
	return buf.Bytes(), nil
}

// blankDoc builds a document with one blank page per dim, in order.
func blankDoc(dims []pageset.Dim, conf *model.Configuration) ([]byte, error) {
	out, err := seedPage(conf)
	if err != nil {
		return nil, err
	}
	// Insert each blank before the seed, which stays last throughout.
	for i, dim := range dims {
		out, err = insertBlank(out, i+1, true, dim, conf)
		if err != nil {
			return nil, err
		}
	}
	var buf bytes.Buffer
	seed := []string{strconv.Itoa(len(dims) + 1)}
	if err := api.RemovePages(bytes.NewReader(out), &buf, seed, conf); err != nil {
		return nil, fmt.Errorf("removing seed page: %w", err)
	}
	return buf.Bytes(), nil
}

// NewBlank builds a document with one blank page per dim, in order. A
// zero dim falls back to DefaultBlankDim. Useful as a starting point for
// a fresh document and as a fixture source in tests.
func NewBlank(dims ...pageset.Dim) (*Handle, error) {
	if len(dims) == 0 {
		return nil, fmt.Errorf("new blank document: %w", pageset.ErrEmptySet)
	}
	conf := model.NewDefaultConfiguration()
	data, err := blankDoc(dims, conf)
	if err != nil {
		return nil, err
	}
	return load(data, conf)
}
