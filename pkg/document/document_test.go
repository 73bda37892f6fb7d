package document

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pageforge-apps/pagedeck-golang/pkg/pageset"
)

func dimsClose(a, b pageset.Dim) bool {
	const eps = 0.5
	dw := a.Width - b.Width
	dh := a.Height - b.Height
	return dw > -eps && dw < eps && dh > -eps && dh < eps
}

func TestNewBlank(t *testing.T) {
	dims := []pageset.Dim{
		{Width: 612, Height: 792},
		{Width: 595, Height: 842},
		{Width: 200, Height: 400},
	}
	h, err := NewBlank(dims...)
	if err != nil {
		t.Fatalf("NewBlank: %v", err)
	}
	if h.PageCount() != 3 {
		t.Fatalf("page count = %d, want 3", h.PageCount())
	}
	for i, want := range dims {
		got, err := h.PageDim(i)
		if err != nil {
			t.Fatalf("PageDim(%d): %v", i, err)
		}
		if !dimsClose(got, want) {
			t.Errorf("page %d size = %+v, want %+v", i, got, want)
		}
	}
	if h.ID() == "" {
		t.Error("handle has no id")
	}
}

func TestNewBlankZeroDimFallsBack(t *testing.T) {
	h, err := NewBlank(pageset.Dim{})
	if err != nil {
		t.Fatalf("NewBlank: %v", err)
	}
	got, err := h.PageDim(0)
	if err != nil {
		t.Fatal(err)
	}
	if !dimsClose(got, pageset.DefaultBlankDim) {
		t.Errorf("page size = %+v, want %+v", got, pageset.DefaultBlankDim)
	}
}

func TestNewBlankNoPages(t *testing.T) {
	if _, err := NewBlank(); !errors.Is(err, pageset.ErrEmptySet) {
		t.Errorf("got %v, want ErrEmptySet", err)
	}
}

func TestPageDimOutOfRange(t *testing.T) {
	h, err := NewBlank(pageset.Dim{Width: 100, Height: 100})
	if err != nil {
		t.Fatal(err)
	}
	for _, idx := range []int{-1, 1} {
		if _, err := h.PageDim(idx); !errors.Is(err, pageset.ErrOutOfRange) {
			t.Errorf("PageDim(%d) = %v, want ErrOutOfRange", idx, err)
		}
	}
}

func TestSaveRoundTrip(t *testing.T) {
	h, err := NewBlank(pageset.Dim{Width: 300, Height: 500}, pageset.Dim{Width: 300, Height: 500})
	if err != nil {
		t.Fatal(err)
	}
	data, err := h.Save()
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	again, err := h.Save()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, again) {
		t.Error("two saves of the same handle differ")
	}

	reloaded, err := Load(data)
	if err != nil {
		t.Fatalf("reloading saved bytes: %v", err)
	}
	if reloaded.PageCount() != 2 {
		t.Errorf("reloaded page count = %d, want 2", reloaded.PageCount())
	}
}

func TestSaveWithEncryptionUnsupported(t *testing.T) {
	h, err := NewBlank(pageset.Dim{Width: 100, Height: 100})
	if err != nil {
		t.Fatal(err)
	}
	_, err = h.Save(WithEncryption("user", "owner"))
	if !errors.Is(err, pageset.ErrUnsupportedOperation) {
		t.Errorf("got %v, want ErrUnsupportedOperation", err)
	}
}

func TestRegistryLoadMalformed(t *testing.T) {
	r := NewRegistry()
	_, err := r.Load([]byte("not a pdf at all"))
	if !errors.Is(err, pageset.ErrMalformedDocument) {
		t.Fatalf("got %v, want ErrMalformedDocument", err)
	}
	if len(r.IDs()) != 0 {
		t.Error("failed load left a handle registered")
	}
}

func TestRegistryResolveAndDiscard(t *testing.T) {
	r := NewRegistry()
	h, err := NewBlank(pageset.Dim{Width: 100, Height: 100})
	if err != nil {
		t.Fatal(err)
	}
	r.Register(h)

	got, ok := r.Resolve(h.ID())
	if !ok || got != h {
		t.Fatalf("Resolve(%q) = %v, %v", h.ID(), got, ok)
	}

	r.Discard(h.ID())
	if _, ok := r.Resolve(h.ID()); ok {
		t.Error("handle still resolvable after Discard")
	}
}

func TestRegistryLoadFile(t *testing.T) {
	h, err := NewBlank(pageset.Dim{Width: 240, Height: 320})
	if err != nil {
		t.Fatal(err)
	}
	data, err := h.Save()
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "one.pdf")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewRegistry()
	loaded, err := r.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if loaded.PageCount() != 1 {
		t.Errorf("page count = %d, want 1", loaded.PageCount())
	}
	if _, ok := r.Resolve(loaded.ID()); !ok {
		t.Error("loaded handle not registered")
	}
}

func TestProbeFile(t *testing.T) {
	h, err := NewBlank(pageset.Dim{Width: 612, Height: 792}, pageset.Dim{Width: 612, Height: 792})
	if err != nil {
		t.Fatal(err)
	}
	data, err := h.Save()
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "probe.pdf")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	inv, err := ProbeFile(path)
	if err != nil {
		t.Fatalf("ProbeFile: %v", err)
	}
	if inv.PageCount != 2 {
		t.Errorf("probed page count = %d, want 2", inv.PageCount)
	}
	if len(inv.Dims) != inv.PageCount {
		t.Errorf("dims length %d != page count %d", len(inv.Dims), inv.PageCount)
	}
}

func TestProbeFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.pdf")
	if err := os.WriteFile(path, []byte("junk"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ProbeFile(path); !errors.Is(err, pageset.ErrMalformedDocument) {
		t.Errorf("got %v, want ErrMalformedDocument", err)
	}
}
