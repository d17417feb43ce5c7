package document

import "testing"

func TestFilterValuesAndMatch(t *testing.T) {
	f := Filter{Type: "Policy", Status: StatusPending}
	values := f.Values()
	if values.Get("type") != "Policy" || values.Get("status") != StatusPending {
		t.Fatalf("unexpected query: %s", values.Encode())
	}
	if len(Filter{}.Values()) != 0 {
		t.Fatal("empty filter should produce no query values")
	}

	if !f.Match(Document{Category: "Policy", Status: StatusPending}) {
		t.Fatal("expected match on category and status")
	}
	if f.Match(Document{Category: "Policy", Status: StatusVerified}) {
		t.Fatal("status mismatch should not match")
	}
}

func TestSummarize(t *testing.T) {
	stats := Summarize([]Document{
		{Category: "Policy", Status: StatusPending},
		{Category: "Policy", Status: StatusVerified},
		{Category: "Forms", Status: StatusPending},
	})
	if stats.Total != 3 {
		t.Fatalf("expected total 3, got %d", stats.Total)
	}
	if stats.ByStatus[StatusPending] != 2 || stats.ByCategory["Policy"] != 2 {
		t.Fatalf("unexpected breakdown: %+v", stats)
	}
}
