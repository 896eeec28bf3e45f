package medicine

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/BruksfildServices01/medifind/internal/httperr"
	"github.com/BruksfildServices01/medifind/internal/models"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100

	// MaxPage keeps (page-1)*limit inside int for every allowed limit.
	MaxPage = math.MaxInt/MaxLimit + 1
)

// Filter is the set of optional constraints for listing medicines. Text
// fields match as case-insensitive substrings, price bounds are
// inclusive.
type Filter struct {
	PharmacyID *uint
	Name       string
	Category   string
	InStock    bool
	MinPrice   *float64
	MaxPrice   *float64

	// Location and PharmacyName constrain through the owning pharmacy.
	Location     string
	PharmacyName string

	// PharmacyIDs restricts results to this set when non-nil. It is
	// filled from Location/PharmacyName before the query runs.
	PharmacyIDs []uint

	Page  int
	Limit int
}

// FilterFromQuery reads the public list/search query string.
func FilterFromQuery(q url.Values) (Filter, error) {
	f := Filter{
		Name:         strings.TrimSpace(q.Get("name")),
		Category:     strings.TrimSpace(q.Get("category")),
		InStock:      q.Get("inStock") == "true",
		Location:     strings.TrimSpace(q.Get("location")),
		PharmacyName: strings.TrimSpace(q.Get("pharmacyName")),
		Page:         1,
		Limit:        DefaultLimit,
	}

	if v := strings.TrimSpace(q.Get("pharmacyId")); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil || id == 0 {
			return f, httperr.ErrValidation("invalid_pharmacy_id", "pharmacyId must be a positive integer")
		}
		pid := uint(id)
		f.PharmacyID = &pid
	}

	var err error
	if f.MinPrice, err = parsePrice(q.Get("minPrice"), "minPrice"); err != nil {
		return f, err
	}
	if f.MaxPrice, err = parsePrice(q.Get("maxPrice"), "maxPrice"); err != nil {
		return f, err
	}

	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > MaxPage {
			return f, httperr.ErrValidation("invalid_page", "page must be a positive integer")
		}
		f.Page = n
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return f, httperr.ErrValidation("invalid_limit", "limit must be a positive integer")
		}
		f.Limit = n
	}

	f.Normalize()
	return f, nil
}

func parsePrice(raw, field string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, httperr.ErrValidation("invalid_price_range", field+" must be a number")
	}
	return &v, nil
}

// Normalize clamps pagination to sane bounds.
func (f *Filter) Normalize() {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Page > MaxPage {
		f.Page = MaxPage
	}
	if f.Limit <= 0 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
}

func (f Filter) Offset() int {
	return (f.Page - 1) * f.Limit
}

func (f Filter) NeedsPharmacyLookup() bool {
	return f.Location != "" || f.PharmacyName != ""
}

// Page is one page of search results.
type Page struct {
	Medicines []models.Medicine `json:"medicines"`
	Total     int64             `json:"total"`
	Pages     int               `json:"pages"`
	Page      int               `json:"page"`
	Limit     int               `json:"limit"`
}

func NewPage(items []models.Medicine, total int64, f Filter) Page {
	if items == nil {
		items = []models.Medicine{}
	}
	pages := int((total + int64(f.Limit) - 1) / int64(f.Limit))
	return Page{
		Medicines: items,
		Total:     total,
		Pages:     pages,
		Page:      f.Page,
		Limit:     f.Limit,
	}
}
