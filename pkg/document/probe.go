package document

import (
	"fmt"

	gopdf "github.com/dslipak/pdf"
	lpdf "github.com/ledongthuc/pdf"

	"github.com/pageforge-apps/pagedeck-golang/pkg/pageset"
)

// Inventory is a lightweight page listing of a document on disk, for
// callers that want counts and sizes without building a full handle.
type Inventory struct {
	PageCount int
	Dims      []pageset.Dim
}

// ProbeFile inspects path with the ledongthuc/pdf reader, which exposes
// per-page MediaBox sizes, and falls back to the dslipak/pdf reader for
// files it cannot open. The fallback reports page count only, with
// DefaultBlankDim standing in for sizes.
func ProbeFile(path string) (*Inventory, error) {
	inv, err := probeLedongthuc(path)
	if err == nil {
		return inv, nil
	}

	inv, derr := probeDslipak(path)
	if derr == nil {
		return inv, nil
	}
	return nil, fmt.Errorf("%w: %v", pageset.ErrMalformedDocument, err)
}

func probeLedongthuc(path string) (*Inventory, error) {
	f, r, err := lpdf.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	n := r.NumPage()
	inv := &Inventory{PageCount: n, Dims: make([]pageset.Dim, n)}
	for i := 1; i <= n; i++ {
		page := r.Page(i)
		dim := pageset.DefaultBlankDim
		mediaBox := page.V.Key("MediaBox")
		if mediaBox.Kind() == lpdf.Array && mediaBox.Len() == 4 {
			x0 := mediaBox.Index(0).Float64()
			y0 := mediaBox.Index(1).Float64()
			x1 := mediaBox.Index(2).Float64()
			y1 := mediaBox.Index(3).Float64()
			dim = pageset.Dim{Width: x1 - x0, Height: y1 - y0}
		}
		inv.Dims[i-1] = dim
	}
	return inv, nil
}

func probeDslipak(path string) (*Inventory, error) {
	r, err := gopdf.Open(path)
	if err != nil {
		return nil, err
	}
	n := r.NumPage()
	inv := &Inventory{PageCount: n, Dims: make([]pageset.Dim, n)}
	for i := range inv.Dims {
		inv.Dims[i] = pageset.DefaultBlankDim
	}
	return inv, nil
}
