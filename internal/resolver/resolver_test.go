package resolver

import (
	"testing"

	"TickVault/internal/model"
)

func TestResolve_KeyLayout(t *testing.T) {
	r := New("CustomData")
	ctx, err := r.Resolve("ExampleCustomData", model.RequestLive)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if ctx.Key != "CustomData/ExampleCustomData" {
		t.Errorf("key = %q, want CustomData/ExampleCustomData", ctx.Key)
	}
	if ctx.Symbol != "ExampleCustomData" {
		t.Errorf("symbol = %q", ctx.Symbol)
	}
	if ctx.Transport != model.TransportObjectStore {
		t.Errorf("transport = %q", ctx.Transport)
	}
	if ctx.Format != model.FormatDelimitedText {
		t.Errorf("format = %q", ctx.Format)
	}
	if ctx.Granularity != model.GranularityHour {
		t.Errorf("granularity = %q", ctx.Granularity)
	}
}

// Live and historical requests must read from one underlying source of
// truth: same key, same transport, same format.
func TestResolve_LiveAndHistoricalMatch(t *testing.T) {
	r := New("CustomData")
	live, err := r.Resolve("ExampleCustomData", model.RequestLive)
	if err != nil {
		t.Fatalf("resolve live: %v", err)
	}
	hist, err := r.Resolve("ExampleCustomData", model.RequestHistorical)
	if err != nil {
		t.Fatalf("resolve historical: %v", err)
	}
	if live.Key != hist.Key {
		t.Errorf("keys diverge: live=%q historical=%q", live.Key, hist.Key)
	}
	if live.Transport != hist.Transport || live.Format != hist.Format {
		t.Errorf("transport/format diverge: %+v vs %+v", live, hist)
	}
}

func TestResolve_ContextsAreIndependent(t *testing.T) {
	r := New("CustomData")
	a, _ := r.Resolve("X", model.RequestLive)
	b, _ := r.Resolve("X", model.RequestLive)
	if a.ID == b.ID {
		t.Errorf("each resolution must own its context, got shared ID %q", a.ID)
	}
}

func TestResolve_Errors(t *testing.T) {
	r := New("CustomData")
	if _, err := r.Resolve("", model.RequestLive); err == nil {
		t.Error("empty identifier must fail")
	}
	if _, err := r.Resolve("X", model.RequestKind("BACKFILL")); err == nil {
		t.Error("unknown request kind must fail")
	}
}
