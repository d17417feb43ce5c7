package store

import (
	"reflect"
	"testing"
)

type rec struct {
	ID   string
	Name string
}

func (r rec) Key() string { return r.ID }

func resolved(t *testing.T, s *Slice[rec], op string, fn func(m *Mutator[rec])) {
	t.Helper()
	if !s.Resolve(s.Begin(op), fn) {
		t.Fatalf("%s: completion dropped", op)
	}
}

func TestFetchEmptyIsSucceeded(t *testing.T) {
	s := NewSlice[rec]("employees")
	resolved(t, s, "fetch", func(m *Mutator[rec]) { m.ReplaceAll("all", nil) })

	if items := s.Items("all"); items == nil || len(items) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", items)
	}
	if lc := s.Lifecycle("fetch"); lc.Phase != PhaseSucceeded || lc.Error != "" {
		t.Fatalf("unexpected lifecycle %+v", lc)
	}
}

func TestBeginClearsErrorAndMarksPending(t *testing.T) {
	s := NewSlice[rec]("leaves")
	tk := s.Begin("fetch")
	s.Fail(tk, "boom")
	if s.Err() != "boom" || s.Lifecycle("fetch").Phase != PhaseFailed {
		t.Fatalf("expected failed state, got %q %+v", s.Err(), s.Lifecycle("fetch"))
	}

	s.Begin("fetch")
	if s.Err() != "" {
		t.Fatalf("expected error cleared on dispatch, got %q", s.Err())
	}
	if s.Lifecycle("fetch").Phase != PhasePending || !s.Loading() {
		t.Fatal("expected pending and loading")
	}
	if s.Lifecycle("create").Phase != PhaseIdle {
		t.Fatal("untouched op should be idle")
	}
}

func TestFailLeavesCacheUnchanged(t *testing.T) {
	s := NewSlice[rec]("docs")
	resolved(t, s, "fetch", func(m *Mutator[rec]) { m.ReplaceAll("all", []rec{{ID: "1"}}) })

	s.Fail(s.Begin("fetch"), "server down")

	if got := s.Items("all"); len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("cache changed on failure: %+v", got)
	}
}

func TestAppendGrowsByOneAndKeepsKeysUnique(t *testing.T) {
	s := NewSlice[rec]("leaves")
	resolved(t, s, "fetch", func(m *Mutator[rec]) { m.ReplaceAll("all", []rec{{ID: "1"}, {ID: "2"}}) })

	resolved(t, s, "create", func(m *Mutator[rec]) { m.Append(rec{ID: "3"}, "all", "mine") })
	if s.Len("all") != 3 || s.Len("mine") != 1 {
		t.Fatalf("unexpected lengths all=%d mine=%d", s.Len("all"), s.Len("mine"))
	}

	resolved(t, s, "create", func(m *Mutator[rec]) { m.Append(rec{ID: "2", Name: "dup"}, "all") })
	if s.Len("all") != 3 {
		t.Fatalf("duplicate key appended: %+v", s.Items("all"))
	}
	if got, _ := s.Find("all", "2"); got.Name != "dup" {
		t.Fatalf("expected in-place replace, got %+v", got)
	}
}

func TestReplaceByKeyUnknownIsNoop(t *testing.T) {
	s := NewSlice[rec]("leaves")
	resolved(t, s, "fetch", func(m *Mutator[rec]) { m.ReplaceAll("all", []rec{{ID: "1", Name: "a"}, {ID: "2", Name: "b"}}) })
	before := s.Items("all")

	resolved(t, s, "update", func(m *Mutator[rec]) { m.ReplaceByKey(rec{ID: "99", Name: "z"}, "all") })
	if !reflect.DeepEqual(before, s.Items("all")) {
		t.Fatalf("unknown key changed cache: %+v", s.Items("all"))
	}

	resolved(t, s, "update", func(m *Mutator[rec]) { m.ReplaceByKey(rec{ID: "2", Name: "B"}, "all") })
	if got := s.Items("all"); got[1].Name != "B" || got[0].Name != "a" {
		t.Fatalf("expected in-place update, got %+v", got)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	s := NewSlice[rec]("employees")
	resolved(t, s, "fetch", func(m *Mutator[rec]) { m.ReplaceAll("all", []rec{{ID: "1"}, {ID: "2"}, {ID: "3"}}) })
	snapshot := s.Items("all")

	resolved(t, s, "delete", func(m *Mutator[rec]) { m.Remove("2", "all") })
	resolved(t, s, "delete", func(m *Mutator[rec]) { m.Remove("2", "all") })
	resolved(t, s, "delete", func(m *Mutator[rec]) { m.Remove("missing", "all", "mine") })

	got := s.Items("all")
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "3" {
		t.Fatalf("unexpected items %+v", got)
	}
	if _, ok := s.Find("all", "2"); ok {
		t.Fatal("deleted key still present")
	}
	if len(snapshot) != 3 {
		t.Fatal("earlier copy was mutated")
	}
}

func TestReplaceAllDedupes(t *testing.T) {
	s := NewSlice[rec]("x")
	resolved(t, s, "fetch", func(m *Mutator[rec]) {
		m.ReplaceAll("all", []rec{{ID: "1", Name: "a"}, {ID: "2"}, {ID: "1", Name: "c"}})
	})
	got := s.Items("all")
	if len(got) != 2 || got[0].Name != "c" {
		t.Fatalf("unexpected dedupe result %+v", got)
	}
}

func TestCurrentFollowsUpdatesAndDeletes(t *testing.T) {
	s := NewSlice[rec]("employees")
	resolved(t, s, "get", func(m *Mutator[rec]) { m.SetCurrent(rec{ID: "7", Name: "old"}) })

	resolved(t, s, "update", func(m *Mutator[rec]) { m.ReplaceByKey(rec{ID: "7", Name: "new"}, "all") })
	if cur, ok := s.Current(); !ok || cur.Name != "new" {
		t.Fatalf("current not refreshed: %+v", cur)
	}

	resolved(t, s, "delete", func(m *Mutator[rec]) { m.Remove("7", "all") })
	if _, ok := s.Current(); ok {
		t.Fatal("current should be cleared after delete")
	}
}

func TestLastResolvedWins(t *testing.T) {
	s := NewSlice[rec]("leaves")
	first := s.Begin("fetch")
	second := s.Begin("fetch")

	s.Resolve(second, func(m *Mutator[rec]) { m.ReplaceAll("all", []rec{{ID: "second"}}) })
	if !s.Loading() {
		t.Fatal("first dispatch still in flight")
	}
	s.Resolve(first, func(m *Mutator[rec]) { m.ReplaceAll("all", []rec{{ID: "first"}}) })

	if got := s.Items("all"); got[0].ID != "first" {
		t.Fatalf("expected the later-resolving response to win, got %+v", got)
	}
	if s.Loading() {
		t.Fatal("nothing should be in flight")
	}
}

func TestLatestDispatchedDropsStale(t *testing.T) {
	s := NewSlice[rec]("leaves", WithPolicy(LatestDispatched))
	first := s.Begin("fetch")
	second := s.Begin("fetch")

	s.Resolve(second, func(m *Mutator[rec]) { m.ReplaceAll("all", []rec{{ID: "second"}}) })
	if s.Resolve(first, func(m *Mutator[rec]) { m.ReplaceAll("all", []rec{{ID: "first"}}) }) {
		t.Fatal("stale completion should be dropped")
	}
	if s.Fail(first, "late failure") {
		t.Fatal("stale failure should be dropped")
	}

	if got := s.Items("all"); got[0].ID != "second" {
		t.Fatalf("expected latest dispatch to win, got %+v", got)
	}
	if s.Err() != "" || s.Lifecycle("fetch").Phase != PhaseSucceeded {
		t.Fatalf("unexpected lifecycle %+v err=%q", s.Lifecycle("fetch"), s.Err())
	}
}

func TestLatestDispatchedIsPerOperation(t *testing.T) {
	s := NewSlice[rec]("leaves", WithPolicy(LatestDispatched))
	fetch := s.Begin("fetch")
	s.Begin("fetchMine")

	if !s.Resolve(fetch, func(m *Mutator[rec]) { m.ReplaceAll("all", []rec{{ID: "1"}}) }) {
		t.Fatal("a different operation must not make this completion stale")
	}
}

func TestClearError(t *testing.T) {
	s := NewSlice[rec]("x")
	s.Fail(s.Begin("fetch"), "nope")
	s.ClearError()
	if s.Err() != "" || s.Lifecycle("fetch").Error != "" {
		t.Fatal("expected error cleared")
	}
	if s.Lifecycle("fetch").Phase != PhaseFailed {
		t.Fatal("phase should stay failed")
	}
}

func TestSubscribeCoalesces(t *testing.T) {
	s := NewSlice[rec]("x")
	ch := s.Subscribe()

	tk := s.Begin("fetch")
	s.Resolve(tk, func(m *Mutator[rec]) { m.ReplaceAll("all", []rec{{ID: "1"}}) })

	select {
	case <-ch:
	default:
		t.Fatal("expected a change signal")
	}
	select {
	case <-ch:
		t.Fatal("signals should coalesce into one")
	default:
	}

	s.Unsubscribe(ch)
	s.Begin("fetch")
	select {
	case <-ch:
		t.Fatal("unsubscribed channel should not be signalled")
	default:
	}
}

func TestParsePolicy(t *testing.T) {
	for in, want := range map[string]Policy{"": LastResolved, "last-resolved": LastResolved, "Latest-Dispatched": LatestDispatched} {
		got, err := ParsePolicy(in)
		if err != nil || got != want {
			t.Fatalf("ParsePolicy(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParsePolicy("first-wins"); err == nil {
		t.Fatal("expected error")
	}
}

func TestValue(t *testing.T) {
	v := NewValue[int]("dashboard")
	if _, ok := v.Get(); ok {
		t.Fatal("expected empty value")
	}
	v.Resolve(v.Begin("fetch"), 42)
	if got, ok := v.Get(); !ok || got != 42 {
		t.Fatalf("unexpected value %d", got)
	}

	v.Fail(v.Begin("fetch"), "down")
	if got, _ := v.Get(); got != 42 || v.Err() != "down" {
		t.Fatal("failure should keep the cached value")
	}

	v.Settle(v.Begin("touch"))
	v.Clear()
	if _, ok := v.Get(); ok {
		t.Fatal("expected cleared value")
	}
}
