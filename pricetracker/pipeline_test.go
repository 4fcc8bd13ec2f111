package pricetracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mise/models"
)

func sampleEntries() []models.PriceEntry {
	return []models.PriceEntry{
		{ID: "1", Name: "Butter 82%", Category: "Dairy", Country: "France", CountryCode: "FR", Supplier: "Metro", Price: 8.40},
		{ID: "2", Name: "Butter 82%", Category: "Dairy", Country: "Germany", CountryCode: "DE", Supplier: "Selgros", Price: 7.90},
		{ID: "3", Name: "Flour T55", Category: "Dry Goods", Country: "France", CountryCode: "FR", Supplier: "Metro", Price: 1.15},
		{ID: "4", Name: "Dark Chocolate 70%", Category: "Chocolate", Country: "Belgium", CountryCode: "BE", Supplier: "Callebaut Direct", Price: 12.60},
		{ID: "5", Name: "Cream 35%", Category: "Dairy", Country: "France", CountryCode: "FR", Supplier: "Rungis", Price: 4.30},
	}
}

func ids(entries []models.PriceEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}

func TestFilterIsConjunctive(t *testing.T) {
	got := Filter(sampleEntries(), FilterState{
		Country:    "France",
		Categories: []string{"Dairy"},
	})
	assert.Equal(t, []string{"1", "5"}, ids(got))
}

func TestFilterAllCountryMeansNoRestriction(t *testing.T) {
	assert.Len(t, Filter(sampleEntries(), FilterState{Country: "All"}), 5)
	assert.Len(t, Filter(sampleEntries(), FilterState{}), 5)
}

func TestFilterPriceInterval(t *testing.T) {
	got := Filter(sampleEntries(), FilterState{PriceMin: 5, PriceMax: 10})
	assert.Equal(t, []string{"1", "2"}, ids(got))

	// a zero max is an unset max, not an upper bound of zero
	got = Filter(sampleEntries(), FilterState{PriceMin: 8})
	assert.Equal(t, []string{"1", "4"}, ids(got))
}

func TestFilterSearchIsCaseInsensitiveSubstring(t *testing.T) {
	got := Filter(sampleEntries(), FilterState{SearchTerm: "butter"})
	assert.Equal(t, []string{"1", "2"}, ids(got))

	got = Filter(sampleEntries(), FilterState{SearchTerm: "T55"})
	assert.Equal(t, []string{"3"}, ids(got))
}

func TestFilterSuppliers(t *testing.T) {
	got := Filter(sampleEntries(), FilterState{Suppliers: []string{"Metro", "Rungis"}})
	assert.Equal(t, []string{"1", "3", "5"}, ids(got))
}

func TestSortCycle(t *testing.T) {
	s := NextSort(SortState{}, "price")
	assert.Equal(t, SortState{Key: "price", Direction: SortAsc}, s)

	s = NextSort(s, "price")
	assert.Equal(t, SortState{Key: "price", Direction: SortDesc}, s)

	s = NextSort(s, "price")
	assert.Equal(t, SortState{Direction: SortOff}, s)

	// a different key restarts at ascending
	s = NextSort(SortState{Key: "price", Direction: SortDesc}, "name")
	assert.Equal(t, SortState{Key: "name", Direction: SortAsc}, s)
}

func TestThreeClicksRestoreInsertionOrder(t *testing.T) {
	entries := sampleEntries()
	s := SortState{}
	for i := 0; i < 3; i++ {
		s = NextSort(s, "price")
	}
	assert.Equal(t, ids(entries), ids(Sort(entries, s)))
}

func TestSortByPrice(t *testing.T) {
	asc := Sort(sampleEntries(), SortState{Key: "price", Direction: SortAsc})
	assert.Equal(t, []string{"3", "5", "2", "1", "4"}, ids(asc))

	desc := Sort(sampleEntries(), SortState{Key: "price", Direction: SortDesc})
	assert.Equal(t, []string{"4", "1", "2", "5", "3"}, ids(desc))
}

func TestSortIsStableAndCopies(t *testing.T) {
	entries := sampleEntries()
	sorted := Sort(entries, SortState{Key: "name", Direction: SortAsc})

	// equal names keep their insertion order
	assert.Equal(t, []string{"1", "2", "5", "4", "3"}, ids(sorted))
	// the input slice is left untouched
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, ids(entries))
}

func TestSortUnknownKeyIsNoop(t *testing.T) {
	entries := sampleEntries()
	assert.Equal(t, ids(entries), ids(Sort(entries, SortState{Key: "bogus", Direction: SortAsc})))
}

func TestPaginatePartitionsWithoutOverlap(t *testing.T) {
	entries := sampleEntries()

	page1 := Paginate(entries, 1, 2)
	page2 := Paginate(entries, 2, 2)
	page3 := Paginate(entries, 3, 2)

	require.Len(t, page1, 2)
	require.Len(t, page2, 2)
	require.Len(t, page3, 1)

	var all []string
	for _, p := range [][]models.PriceEntry{page1, page2, page3} {
		all = append(all, ids(p)...)
	}
	assert.Equal(t, ids(entries), all)
}

func TestPaginateBeyondDataIsEmpty(t *testing.T) {
	assert.Empty(t, Paginate(sampleEntries(), 4, 2))
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 3, TotalPages(5, 2))
	assert.Equal(t, 1, TotalPages(2, 2))
	assert.Equal(t, 0, TotalPages(0, 2))
}
