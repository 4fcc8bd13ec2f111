package pricetracker

import (
	"sort"
	"strings"

	"mise/models"
)

// FilterState matches conjunctively; empty category/supplier sets and the
// "All" country mean no restriction on that axis.
type FilterState struct {
	Country    string   `json:"country"`
	Categories []string `json:"categories"`
	Suppliers  []string `json:"suppliers"`
	PriceMin   float64  `json:"priceMin"`
	PriceMax   float64  `json:"priceMax"`
	SearchTerm string   `json:"searchTerm"`
}

const (
	SortAsc  = "asc"
	SortDesc = "desc"
	SortOff  = ""
)

const defaultPerPage = 25

type SortState struct {
	Key       string `json:"key"`
	Direction string `json:"direction"`
}

// NextSort cycles asc -> desc -> off on repeated clicks of the same key and
// starts fresh at asc on a new key.
func NextSort(prev SortState, key string) SortState {
	if prev.Key == key {
		switch prev.Direction {
		case SortAsc:
			return SortState{Key: key, Direction: SortDesc}
		case SortDesc:
			return SortState{Direction: SortOff}
		}
	}
	return SortState{Key: key, Direction: SortAsc}
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// Matches reports whether a single entry passes every active predicate.
func (f FilterState) Matches(e models.PriceEntry) bool {
	if f.Country != "" && f.Country != "All" && e.Country != f.Country && e.CountryCode != f.Country {
		return false
	}
	if len(f.Categories) > 0 && !contains(f.Categories, e.Category) {
		return false
	}
	if len(f.Suppliers) > 0 && !contains(f.Suppliers, e.Supplier) {
		return false
	}
	if e.Price < f.PriceMin || (f.PriceMax > 0 && e.Price > f.PriceMax) {
		return false
	}
	if f.SearchTerm != "" && !strings.Contains(strings.ToLower(e.Name), strings.ToLower(f.SearchTerm)) {
		return false
	}
	return true
}

func Filter(entries []models.PriceEntry, f FilterState) []models.PriceEntry {
	out := make([]models.PriceEntry, 0, len(entries))
	for _, e := range entries {
		if f.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}

func sortKey(e models.PriceEntry, key string) (string, float64, bool) {
	switch key {
	case "name":
		return e.Name, 0, false
	case "category":
		return e.Category, 0, false
	case "country":
		return e.Country, 0, false
	case "supplier":
		return e.Supplier, 0, false
	case "unit":
		return e.Unit, 0, false
	case "trend":
		return string(e.Trend), 0, false
	case "price":
		return "", e.Price, true
	case "previousPrice":
		return "", e.PreviousPrice, true
	}
	return "", 0, false
}

var sortableKeys = map[string]bool{
	"name": true, "category": true, "country": true, "supplier": true,
	"unit": true, "trend": true, "price": true, "previousPrice": true,
}

// Sort returns a sorted copy; SortOff (or an unknown key) returns the input
// order untouched. The sort is stable, so ties keep their prior order.
func Sort(entries []models.PriceEntry, s SortState) []models.PriceEntry {
	if s.Direction == SortOff || !sortableKeys[s.Key] {
		return entries
	}

	sorted := make([]models.PriceEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		si, ni, numeric := sortKey(sorted[i], s.Key)
		sj, nj, _ := sortKey(sorted[j], s.Key)
		if s.Direction == SortDesc {
			if numeric {
				return ni > nj
			}
			return si > sj
		}
		if numeric {
			return ni < nj
		}
		return si < sj
	})
	return sorted
}

// Paginate slices out the 1-based page; pages beyond the data are empty.
func Paginate(entries []models.PriceEntry, page, perPage int) []models.PriceEntry {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	start := (page - 1) * perPage
	if start >= len(entries) {
		return []models.PriceEntry{}
	}
	end := start + perPage
	if end > len(entries) {
		end = len(entries)
	}
	return entries[start:end]
}

func TotalPages(n, perPage int) int {
	if perPage < 1 {
		perPage = defaultPerPage
	}
	return (n + perPage - 1) / perPage
}
