package pricetracker

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"

	"mise/db"
	"mise/models"
	"mise/rdx"
	"mise/utils"
)

const catalogueKey = "price_catalogue"

// loadCatalogue reads the full price dataset: redis first, then mongo,
// then the bundled CSV seed. Cache misses repopulate redis for two hours.
func loadCatalogue(ctx context.Context) ([]models.PriceEntry, error) {
	var entries []models.PriceEntry

	if val, err := rdx.Conn.Get(ctx, catalogueKey).Result(); err == nil && val != "" {
		if err := json.Unmarshal([]byte(val), &entries); err == nil {
			return entries, nil
		}
	}

	cursor, err := db.PricesCollection.Find(ctx, bson.M{})
	if err == nil {
		if err := cursor.All(ctx, &entries); err == nil && len(entries) > 0 {
			cacheCatalogue(ctx, entries)
			return entries, nil
		}
	}

	entries, err = readCatalogueCSV("data/price_catalogue.csv")
	if err != nil {
		return nil, err
	}
	cacheCatalogue(ctx, entries)
	return entries, nil
}

func cacheCatalogue(ctx context.Context, entries []models.PriceEntry) {
	if jsonBytes, err := json.Marshal(entries); err == nil {
		_ = rdx.Conn.Set(ctx, catalogueKey, jsonBytes, 2*time.Hour).Err()
	}
}

func readCatalogueCSV(path string) ([]models.PriceEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	headers, err := reader.Read()
	if err != nil {
		return nil, err
	}

	var entries []models.PriceEntry
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil || len(record) != len(headers) {
			continue
		}

		entry := models.PriceEntry{}
		for i, field := range headers {
			switch strings.ToLower(field) {
			case "id":
				entry.ID = record[i]
			case "ingredientid":
				entry.IngredientID = record[i]
			case "name":
				entry.Name = record[i]
			case "category":
				entry.Category = record[i]
			case "country":
				entry.Country = record[i]
			case "countrycode":
				entry.CountryCode = record[i]
			case "supplier":
				entry.Supplier = record[i]
			case "unit":
				entry.Unit = record[i]
			case "price":
				entry.Price, _ = strconv.ParseFloat(record[i], 64)
			case "previousprice":
				entry.PreviousPrice, _ = strconv.ParseFloat(record[i], 64)
			case "currency":
				entry.Currency = record[i]
			case "lastupdated":
				if t, err := time.Parse("2006-01-02", record[i]); err == nil {
					entry.LastUpdated = t
				}
			case "trend":
				entry.Trend = models.PriceTrend(record[i])
			case "trendvalue":
				entry.TrendValue = record[i]
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func splitParam(v string) []string {
	if v == "" {
		return nil
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// GetPrices serves the price table: conjunctive filters, an optional
// single-column sort and 1-based pagination, all applied in that order.
func GetPrices(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	entries, err := loadCatalogue(ctx)
	if err != nil {
		utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{"success": false, "message": "Failed to load price data"})
		return
	}

	params := r.URL.Query()
	filter := FilterState{
		Country:    params.Get("country"),
		Categories: splitParam(params.Get("category")),
		Suppliers:  splitParam(params.Get("supplier")),
		PriceMin:   utils.ParseFloat(params.Get("minPrice")),
		PriceMax:   utils.ParseFloat(params.Get("maxPrice")),
		SearchTerm: params.Get("search"),
	}
	srt := SortState{Key: params.Get("sortKey")}
	switch params.Get("sortDir") {
	case "asc":
		srt.Direction = SortAsc
	case "desc":
		srt.Direction = SortDesc
	}
	page := utils.ParseInt(params.Get("page"))
	if page < 1 {
		page = 1
	}
	perPage := utils.ParseInt(params.Get("perPage"))
	if perPage < 1 {
		perPage = defaultPerPage
	}

	filtered := Filter(entries, filter)
	sorted := Sort(filtered, srt)
	paged := Paginate(sorted, page, perPage)
	if paged == nil {
		paged = []models.PriceEntry{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"prices":  paged,
		"meta": utils.M{
			"total":      len(filtered),
			"page":       page,
			"perPage":    perPage,
			"totalPages": TotalPages(len(filtered), perPage),
		},
	})
}

// GetPriceMeta returns the filter vocabulary: distinct countries and
// categories, plus suppliers scoped to an optional country.
func GetPriceMeta(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	entries, err := loadCatalogue(ctx)
	if err != nil {
		utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{"success": false, "message": "Failed to load price data"})
		return
	}

	country := r.URL.Query().Get("country")
	countrySet := map[string]bool{}
	categorySet := map[string]bool{}
	supplierSet := map[string]bool{}
	for _, e := range entries {
		countrySet[e.Country] = true
		categorySet[e.Category] = true
		if country == "" || country == "All" || e.Country == country {
			supplierSet[e.Supplier] = true
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success":    true,
		"countries":  sortedKeys(countrySet),
		"categories": sortedKeys(categorySet),
		"suppliers":  sortedKeys(supplierSet),
	})
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		if k != "" {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
