package profile

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type SortKey string

const (
	SortByName     SortKey = "name"
	SortByLocation SortKey = "location"
)

// FilterCriteria is the per-request view specification. The zero value is the
// identity filter: every profile, in store order.
type FilterCriteria struct {
	SearchText        string
	SelectedInterests []string
	Location          string
	SortBy            SortKey
}

// ApplyFilters derives a filtered, sorted view over profiles. Stages run in a
// fixed order: text search over name/description, interest match (OR
// semantics), address substring, then sort. The input slice is never mutated
// and the whole pipeline recomputes from scratch on every call.
//
// Sorting uses English collation with case folding, so "alice" orders before
// "Bob". An unknown sort key leaves the surviving profiles in their original
// relative order.
func ApplyFilters(profiles []*Profile, c FilterCriteria) []*Profile {
	out := make([]*Profile, len(profiles))
	copy(out, profiles)

	if c.SearchText != "" {
		q := strings.ToLower(c.SearchText)
		kept := out[:0]
		for _, p := range out {
			if strings.Contains(strings.ToLower(p.Name), q) ||
				strings.Contains(strings.ToLower(p.Description), q) {
				kept = append(kept, p)
			}
		}
		out = kept
	}

	if len(c.SelectedInterests) > 0 {
		kept := out[:0]
		for _, p := range out {
			if hasAnyInterest(p, c.SelectedInterests) {
				kept = append(kept, p)
			}
		}
		out = kept
	}

	if c.Location != "" {
		q := strings.ToLower(c.Location)
		kept := out[:0]
		for _, p := range out {
			if strings.Contains(strings.ToLower(p.Address), q) {
				kept = append(kept, p)
			}
		}
		out = kept
	}

	if c.SortBy == SortByName || c.SortBy == SortByLocation {
		// collate.Collator is not safe for concurrent use, build one per call.
		col := collate.New(language.English, collate.Loose)
		sort.SliceStable(out, func(i, j int) bool {
			if c.SortBy == SortByName {
				return col.CompareString(out[i].Name, out[j].Name) < 0
			}
			return col.CompareString(out[i].Address, out[j].Address) < 0
		})
	}

	return out
}

func hasAnyInterest(p *Profile, selected []string) bool {
	for _, want := range selected {
		for _, have := range p.Interests {
			if have == want {
				return true
			}
		}
	}
	return false
}
