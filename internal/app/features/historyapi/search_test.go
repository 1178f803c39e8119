// internal/app/features/historyapi/search_test.go
package historyapi

import (
	"testing"

	"github.com/dalemusser/histkeep/internal/domain/models"
)

func rec(id string, createdAt int64, name, description, text string) models.HistoryRecord {
	return models.HistoryRecord{
		ID:          id,
		CreatedAt:   models.Number(createdAt),
		Name:        name,
		Description: description,
		Text:        text,
		UserID:      "member@test.com",
	}
}

func candidates() []models.HistoryRecord {
	return []models.HistoryRecord{
		rec("a", 1000, "Trip", "Paris", "packed light"),
		rec("b", 3000, "test", "lowercase entry", ""),
		rec("c", 2000, "Groceries", "weekly run", "milk and eggs"),
	}
}

func ids(records []models.HistoryRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilter_NoCriteriaReturnsAllNewestFirst(t *testing.T) {
	got := Filter(candidates(), Criteria{})

	want := []string{"b", "c", "a"}
	if !equalIDs(ids(got), want) {
		t.Errorf("ids: got %v, want %v", ids(got), want)
	}
}

func TestFilter_NameSubstring(t *testing.T) {
	got := Filter(candidates(), Criteria{Name: "rip"})

	if !equalIDs(ids(got), []string{"a"}) {
		t.Errorf("ids: got %v, want [a]", ids(got))
	}
}

func TestFilter_TextSearchesAllFields(t *testing.T) {
	// "milk" appears only in the body text of record c.
	got := Filter(candidates(), Criteria{Text: "milk"})

	if !equalIDs(ids(got), []string{"c"}) {
		t.Errorf("ids: got %v, want [c]", ids(got))
	}
}

func TestFilter_TextStaysInsideOneField(t *testing.T) {
	// "weekly run" sits entirely inside the description of record c.
	got := Filter(candidates(), Criteria{Text: "weekly run"})
	if !equalIDs(ids(got), []string{"c"}) {
		t.Errorf("single-field phrase: got %v, want [c]", ids(got))
	}

	// "Paris packed" only exists if description and text are glued
	// together; it must not match.
	if got := Filter(candidates(), Criteria{Text: "Paris packed"}); len(got) != 0 {
		t.Errorf("cross-field phrase: got %v, want empty", ids(got))
	}
}

func TestFilter_DateRangeInclusive(t *testing.T) {
	start, end := int64(1000), int64(2000)
	got := Filter(candidates(), Criteria{StartMillis: &start, EndMillis: &end})

	if !equalIDs(ids(got), []string{"c", "a"}) {
		t.Errorf("ids: got %v, want [c a]", ids(got))
	}
}

func TestFilter_ContradictoryCriteria(t *testing.T) {
	// A name no candidate has, combined with a range covering everything.
	start, end := int64(0), int64(5000)
	crit := Criteria{StartMillis: &start, EndMillis: &end, Name: "zzz-no-such-record"}

	if got := Filter(candidates(), crit); len(got) != 0 {
		t.Errorf("all-mode: got %v, want empty", ids(got))
	}

	crit.MatchAny = true
	got := Filter(candidates(), crit)
	if !equalIDs(ids(got), []string{"b", "c", "a"}) {
		t.Errorf("any-mode: got %v, want full set", ids(got))
	}
}

func TestFilter_CaseSensitivity(t *testing.T) {
	// Record b is named "test"; searching "Test" only matches when the
	// comparison is case-insensitive.
	if got := Filter(candidates(), Criteria{Name: "Test", CaseSensitive: true}); len(got) != 0 {
		t.Errorf("case-sensitive: got %v, want empty", ids(got))
	}

	got := Filter(candidates(), Criteria{Name: "Test"})
	if !equalIDs(ids(got), []string{"b"}) {
		t.Errorf("case-insensitive: got %v, want [b]", ids(got))
	}
}

func TestFilter_MissingCreatedAtSortsAsZero(t *testing.T) {
	records := append(candidates(), models.HistoryRecord{ID: "d", Name: "undated"})

	got := Filter(records, Criteria{})
	if got[len(got)-1].ID != "d" {
		t.Errorf("expected undated record last, got %v", ids(got))
	}
}
