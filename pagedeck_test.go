package pagedeck

import (
	"context"
	"errors"
	"testing"
)

// fivePager builds the bytes of a 5-page blank document with distinct
// page widths 100..140 so order is observable in exported sizes.
func fivePager(t *testing.T) []byte {
	t.Helper()
	h, err := NewBlank(
		Dim{Width: 100, Height: 400},
		Dim{Width: 110, Height: 400},
		Dim{Width: 120, Height: 400},
		Dim{Width: 130, Height: 400},
		Dim{Width: 140, Height: 400},
	)
	if err != nil {
		t.Fatalf("building fixture: %v", err)
	}
	data, err := h.Save()
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func widths(t *testing.T, h *Handle) []float64 {
	t.Helper()
	out := make([]float64, h.PageCount())
	for i := range out {
		dim, err := h.PageDim(i)
		if err != nil {
			t.Fatal(err)
		}
		out[i] = dim.Width
	}
	return out
}

func near(a, b float64) bool {
	d := a - b
	return d > -0.5 && d < 0.5
}

func TestSessionRoundTrip(t *testing.T) {
	e, err := NewSession(fivePager(t))
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if e.Len() != 5 {
		t.Fatalf("len = %d, want 5", e.Len())
	}

	out, err := e.Export(context.Background())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	want := []float64{100, 110, 120, 130, 140}
	got := widths(t, out)
	for i := range want {
		if !near(got[i], want[i]) {
			t.Errorf("identity export page %d width = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSessionEditScenario(t *testing.T) {
	// The canonical workflow: delete page 2, insert a Letter blank after
	// slot 1, reorder, export. Original page 2 is permanently gone.
	e, err := NewSession(fivePager(t))
	if err != nil {
		t.Fatal(err)
	}

	if err := e.DeleteAt(2); err != nil {
		t.Fatal(err)
	}
	if err := e.InsertBlankAfter(1, Dim{Width: 612, Height: 792}); err != nil {
		t.Fatal(err)
	}
	if err := e.Move(4, 0); err != nil {
		t.Fatal(err)
	}

	out, err := e.Export(context.Background())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	// Before the move: 100 110 612 130 140. Move(4,0) brings 140 first.
	want := []float64{140, 100, 110, 612, 130}
	got := widths(t, out)
	for i := range want {
		if !near(got[i], want[i]) {
			t.Errorf("page %d width = %v, want %v (all: %v)", i, got[i], want[i], got)
		}
	}
	for _, w := range got {
		if near(w, 120) {
			t.Error("deleted page still present in export")
		}
	}
}

func TestExtractSubsetRealizedThroughRegistry(t *testing.T) {
	e, err := NewSession(fivePager(t))
	if err != nil {
		t.Fatal(err)
	}
	sub, err := e.ExtractSubset([]int{2, 0, 2})
	if err != nil {
		t.Fatal(err)
	}

	out, err := Realize(context.Background(), sub, e.Registry())
	if err != nil {
		t.Fatalf("Realize: %v", err)
	}
	want := []float64{120, 100, 120}
	got := widths(t, out)
	for i := range want {
		if !near(got[i], want[i]) {
			t.Errorf("extract page %d width = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSentinelErrorsSurfaceThroughFacade(t *testing.T) {
	e, err := NewSession(fivePager(t))
	if err != nil {
		t.Fatal(err)
	}

	if err := e.DeleteAt(99); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("DeleteAt(99) = %v, want ErrOutOfRange", err)
	}

	var opErr *OpError
	if err := e.Move(-1, 0); !errors.As(err, &opErr) {
		t.Errorf("Move(-1, 0) = %v, want *OpError", err)
	}

	if _, err := NewSession([]byte("not a pdf")); !errors.Is(err, ErrMalformedDocument) {
		t.Errorf("NewSession(junk) = %v, want ErrMalformedDocument", err)
	}
}

func TestExportBytesReloadable(t *testing.T) {
	e, err := NewSession(fivePager(t))
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Duplicate(0); err != nil {
		t.Fatal(err)
	}

	data, err := e.ExportBytes(context.Background())
	if err != nil {
		t.Fatalf("ExportBytes: %v", err)
	}
	h, err := Load(data)
	if err != nil {
		t.Fatalf("reloading export: %v", err)
	}
	if h.PageCount() != 6 {
		t.Errorf("page count = %d, want 6", h.PageCount())
	}
}
