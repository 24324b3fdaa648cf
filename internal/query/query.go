// Package query provides the read-only filter and sort pipeline used when
// listing credentials. It never mutates the store's collection; both
// operations work on copies.
package query

import (
	"sort"
	"strings"

	"passbook/internal/models"
)

// SortKey selects the field records are ordered by.
type SortKey string

const (
	// BySite orders by the site field.
	BySite SortKey = "site"
	// ByUsername orders by the username field.
	ByUsername SortKey = "username"
	// ByCreatedAt orders by creation time.
	ByCreatedAt SortKey = "created_at"
)

// Direction selects ascending or descending order.
type Direction string

const (
	// Ascending sorts smallest key first.
	Ascending Direction = "asc"
	// Descending sorts largest key first.
	Descending Direction = "desc"
)

// Criteria is the predicate for Filter. Each non-empty field is a
// case-insensitive substring match; supplied fields are ANDed and an absent
// field matches everything.
type Criteria struct {
	Site     string
	Username string
}

// Filter returns the records matching criteria, preserving input order.
func Filter(records []models.Record, criteria Criteria) []models.Record {
	site := strings.ToLower(criteria.Site)
	username := strings.ToLower(criteria.Username)

	out := make([]models.Record, 0, len(records))
	for _, rec := range records {
		if site != "" && !strings.Contains(strings.ToLower(rec.Site), site) {
			continue
		}
		if username != "" && !strings.Contains(strings.ToLower(rec.Username), username) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// Sort returns a copy of records ordered by key in the given direction.
// The sort is stable: records with equal keys keep their relative input
// order, so repeated sorts are deterministic. Site and username compare
// case-insensitively.
func Sort(records []models.Record, key SortKey, direction Direction) []models.Record {
	out := make([]models.Record, len(records))
	copy(out, records)

	less := lessFunc(key)
	sort.SliceStable(out, func(i, j int) bool {
		if direction == Descending {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

func lessFunc(key SortKey) func(a, b models.Record) bool {
	switch key {
	case ByUsername:
		return func(a, b models.Record) bool {
			return strings.ToLower(a.Username) < strings.ToLower(b.Username)
		}
	case ByCreatedAt:
		// RFC 3339 timestamps order correctly as strings.
		return func(a, b models.Record) bool { return a.CreatedAt < b.CreatedAt }
	default:
		return func(a, b models.Record) bool {
			return strings.ToLower(a.Site) < strings.ToLower(b.Site)
		}
	}
}
