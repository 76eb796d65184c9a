package postcodes

import (
	"sort"
	"strings"
	"unicode"
)

type rankedLocality struct {
	row  Locality
	rank int
}

// Search matches query against the table and returns at most limit rows.
//
// Digit queries match postcodes: exact matches rank before prefix matches.
// Everything else matches locality names case-insensitively, with prefix
// matches ranking before substring matches. An empty query returns either
// nothing or the head of the table, depending on opts.EmptySearchMode.
func Search(table []Locality, query string, limit int, opts Options) []Locality {
	limit = clampLimit(limit, opts)
	if limit == 0 {
		return nil
	}

	query = strings.TrimSpace(query)
	if query == "" {
		if opts.EmptySearchMode != EmptySearchTop {
			return nil
		}
		if limit > len(table) {
			limit = len(table)
		}
		return append([]Locality{}, table[:limit]...)
	}

	var matches []rankedLocality
	if isDigits(query) {
		for _, row := range table {
			switch {
			case row.Postcode == query:
				matches = append(matches, rankedLocality{row: row, rank: 0})
			case strings.HasPrefix(row.Postcode, query):
				matches = append(matches, rankedLocality{row: row, rank: 1})
			}
		}
	} else {
		needle := strings.ToLower(query)
		for _, row := range table {
			name := strings.ToLower(row.Locality)
			switch {
			case strings.HasPrefix(name, needle):
				matches = append(matches, rankedLocality{row: row, rank: 0})
			case strings.Contains(name, needle):
				matches = append(matches, rankedLocality{row: row, rank: 1})
			}
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].rank != matches[j].rank {
			return matches[i].rank < matches[j].rank
		}
		if matches[i].row.Postcode != matches[j].row.Postcode {
			return matches[i].row.Postcode < matches[j].row.Postcode
		}
		return matches[i].row.Locality < matches[j].row.Locality
	})

	if limit > len(matches) {
		limit = len(matches)
	}
	out := make([]Locality, 0, limit)
	for _, match := range matches[:limit] {
		out = append(out, match.row)
	}
	return out
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
