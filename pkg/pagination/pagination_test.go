package pagination

import "testing"

func TestNormalizeLimit(t *testing.T) {
	if got := NormalizeLimit(0); got != DefaultLimit {
		t.Fatalf("expected default limit, got %d", got)
	}
	if got := NormalizeLimit(-5); got != DefaultLimit {
		t.Fatalf("expected default limit for negative input, got %d", got)
	}
	if got := NormalizeLimit(500); got != MaxLimit {
		t.Fatalf("expected max limit cap, got %d", got)
	}
	if got := NormalizeLimit(30); got != 30 {
		t.Fatalf("expected passthrough, got %d", got)
	}
}

func TestOffset(t *testing.T) {
	if got := (Params{Page: 1, Limit: 10}).Offset(); got != 0 {
		t.Fatalf("expected offset 0 for first page, got %d", got)
	}
	if got := (Params{Page: 3, Limit: 10}).Offset(); got != 20 {
		t.Fatalf("expected offset 20, got %d", got)
	}
	if got := (Params{Page: 0, Limit: 10}).Offset(); got != 0 {
		t.Fatalf("page 0 should normalize to first page, got offset %d", got)
	}
}

func TestBuildPage(t *testing.T) {
	page := BuildPage(Params{Page: 2, Limit: 10}, 35)
	if page.CurrentPage != 2 {
		t.Fatalf("unexpected current page %d", page.CurrentPage)
	}
	if page.TotalPages != 4 {
		t.Fatalf("expected 4 total pages, got %d", page.TotalPages)
	}
	if page.TotalCount != 35 {
		t.Fatalf("unexpected total count %d", page.TotalCount)
	}
	if !page.HasNext || !page.HasPrev {
		t.Fatalf("expected both hasNext and hasPrev on a middle page")
	}

	empty := BuildPage(Params{Page: 1, Limit: 10}, 0)
	if empty.TotalPages != 1 {
		t.Fatalf("empty result should report one page, got %d", empty.TotalPages)
	}
	if empty.HasNext || empty.HasPrev {
		t.Fatalf("empty result should have no neighbors")
	}
}
