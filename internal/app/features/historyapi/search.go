// internal/app/features/historyapi/search.go
package historyapi

import (
	"sort"
	"strings"

	"github.com/dalemusser/histkeep/internal/domain/models"
)

// Criteria is one search request. Only the supplied criteria participate:
// a nil range bound or an empty substring contributes no predicate. With no
// criteria at all, every candidate matches.
type Criteria struct {
	StartMillis   *int64
	EndMillis     *int64
	Name          string
	Text          string
	MatchAny      bool
	CaseSensitive bool
}

// Match reports whether rec satisfies c. Each supplied criterion is an
// independent predicate; MatchAny combines them with OR instead of the
// default AND.
func (c Criteria) Match(rec models.HistoryRecord) bool {
	var results []bool

	if c.StartMillis != nil || c.EndMillis != nil {
		results = append(results, c.inRange(float64(rec.CreatedAt)))
	}
	if c.Name != "" {
		results = append(results, contains(rec.Name, c.Name, c.CaseSensitive))
	}
	if c.Text != "" {
		results = append(results, containsInAny(c.Text, c.CaseSensitive,
			rec.Name, rec.Description, rec.Text))
	}

	if len(results) == 0 {
		return true
	}
	if c.MatchAny {
		for _, ok := range results {
			if ok {
				return true
			}
		}
		return false
	}
	for _, ok := range results {
		if !ok {
			return false
		}
	}
	return true
}

func (c Criteria) inRange(createdAt float64) bool {
	if c.StartMillis != nil && createdAt < float64(*c.StartMillis) {
		return false
	}
	if c.EndMillis != nil && createdAt > float64(*c.EndMillis) {
		return false
	}
	return true
}

// containsInAny reports whether any single field contains the needle. The
// fields are searched independently, so a needle never matches across a
// field boundary.
func containsInAny(needle string, caseSensitive bool, fields ...string) bool {
	for _, f := range fields {
		if contains(f, needle, caseSensitive) {
			return true
		}
	}
	return false
}

func contains(haystack, needle string, caseSensitive bool) bool {
	if caseSensitive {
		return strings.Contains(haystack, needle)
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// Filter returns the candidates matching c, newest first. A record without
// a creation timestamp sorts as timestamp zero.
func Filter(records []models.HistoryRecord, c Criteria) []models.HistoryRecord {
	matched := make([]models.HistoryRecord, 0, len(records))
	for _, rec := range records {
		if c.Match(rec) {
			matched = append(matched, rec)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt > matched[j].CreatedAt
	})
	return matched
}
