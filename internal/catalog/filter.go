// Package catalog implements the shop-listing pipeline: a pure
// filter/sort/paginate function over an in-stock product snapshot. The same
// inputs always produce the same page, so filter state can round-trip
// through URL parameters.
package catalog

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/sbbtt/next-mall/internal/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	PageSize        = 12
	MaxSearchLength = 100
	MaxPrice        = 700000
)

const (
	SortDefault   = "default"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortNameAsc   = "name-asc"
	SortNameDesc  = "name-desc"
)

var validSorts = map[string]bool{
	SortDefault:   true,
	SortPriceAsc:  true,
	SortPriceDesc: true,
	SortNameAsc:   true,
	SortNameDesc:  true,
}

type Query struct {
	Search   string
	Category string
	MinPrice int64
	MaxPrice int64
	Sort     string
	Page     int
}

type Page struct {
	Products   []models.Product
	Total      int
	TotalPages int
}

// ParseQuery reads listing parameters from a URL query and clamps them into
// the valid domain. Unknown or malformed values fall back to defaults, never
// errors.
func ParseQuery(values url.Values) Query {
	q := Query{
		Search:   values.Get("search"),
		Category: strings.ToLower(values.Get("category")),
		MinPrice: parsePrice(values.Get("minPrice"), 0),
		MaxPrice: parsePrice(values.Get("maxPrice"), MaxPrice),
		Sort:     values.Get("sort"),
		Page:     parsePage(values.Get("page")),
	}

	return Normalize(q)
}

// Normalize clamps a Query into the valid domain. Apply calls it itself, so
// ParseQuery and hand-built queries behave identically.
func Normalize(q Query) Query {
	if len(q.Search) > MaxSearchLength {
		q.Search = q.Search[:MaxSearchLength]
	}

	if !models.IsValidCategory(q.Category) {
		q.Category = ""
	}

	q.MinPrice = clampPrice(q.MinPrice)
	q.MaxPrice = clampPrice(q.MaxPrice)

	if !validSorts[q.Sort] {
		q.Sort = SortDefault
	}

	if q.Page < 1 {
		q.Page = 1
	}

	return q
}

// Apply filters, sorts and pages a product snapshot. The input slice is not
// modified. A page number past the end yields an empty page, not an error.
func Apply(products []models.Product, q Query) Page {
	q = Normalize(q)

	filtered := make([]models.Product, 0, len(products))
	search := strings.ToLower(q.Search)

	for _, p := range products {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}

		if q.Category != "" && strings.ToLower(p.Category) != q.Category {
			continue
		}

		if p.Price < q.MinPrice || p.Price > q.MaxPrice {
			continue
		}

		filtered = append(filtered, p)
	}

	sortProducts(filtered, q.Sort)

	total := len(filtered)
	totalPages := (total + PageSize - 1) / PageSize

	start := (q.Page - 1) * PageSize
	if start >= total {
		return Page{Products: []models.Product{}, Total: total, TotalPages: totalPages}
	}

	end := start + PageSize
	if end > total {
		end = total
	}

	return Page{Products: filtered[start:end], Total: total, TotalPages: totalPages}
}

func sortProducts(products []models.Product, sortKey string) {
	// ID order first, so every named sort breaks ties the same way
	// regardless of the snapshot's arrival order.
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })

	switch sortKey {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price < products[j].Price })
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price > products[j].Price })
	case SortNameAsc:
		c := newNameCollator()
		sort.SliceStable(products, func(i, j int) bool { return c.CompareString(products[i].Name, products[j].Name) < 0 })
	case SortNameDesc:
		c := newNameCollator()
		sort.SliceStable(products, func(i, j int) bool { return c.CompareString(products[i].Name, products[j].Name) > 0 })
	}
}

func newNameCollator() *collate.Collator {
	return collate.New(language.English, collate.IgnoreCase)
}

func parsePrice(raw string, fallback int64) int64 {
	if raw == "" {
		return fallback
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}

	return v
}

func clampPrice(v int64) int64 {
	if v < 0 {
		return 0
	}

	if v > MaxPrice {
		return MaxPrice
	}

	return v
}

func parsePage(raw string) int {
	if raw == "" {
		return 1
	}

	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return 1
	}

	return v
}
