package medicine

import (
	"math"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/medifind/internal/httperr"
)

func TestFilterFromQueryDefaults(t *testing.T) {
	f, err := FilterFromQuery(url.Values{})
	require.NoError(t, err)

	assert.Equal(t, 1, f.Page)
	assert.Equal(t, DefaultLimit, f.Limit)
	assert.Nil(t, f.MinPrice)
	assert.Nil(t, f.MaxPrice)
	assert.Nil(t, f.PharmacyID)
	assert.False(t, f.InStock)
	assert.False(t, f.NeedsPharmacyLookup())
}

func TestFilterFromQueryAllFields(t *testing.T) {
	q := url.Values{
		"pharmacyId":   {"4"},
		"name":         {" para "},
		"category":     {"tab"},
		"inStock":      {"true"},
		"minPrice":     {"10"},
		"maxPrice":     {"20.5"},
		"location":     {"Pune"},
		"pharmacyName": {"Apollo"},
		"page":         {"3"},
		"limit":        {"500"},
	}

	f, err := FilterFromQuery(q)
	require.NoError(t, err)

	require.NotNil(t, f.PharmacyID)
	assert.Equal(t, uint(4), *f.PharmacyID)
	assert.Equal(t, "para", f.Name)
	assert.Equal(t, "tab", f.Category)
	assert.True(t, f.InStock)
	assert.Equal(t, 10.0, *f.MinPrice)
	assert.Equal(t, 20.5, *f.MaxPrice)
	assert.True(t, f.NeedsPharmacyLookup())
	assert.Equal(t, 3, f.Page)
	assert.Equal(t, MaxLimit, f.Limit)
	assert.Equal(t, 200, f.Offset())
}

func TestFilterFromQueryInStockOnlyWhenTrue(t *testing.T) {
	f, err := FilterFromQuery(url.Values{"inStock": {"false"}})
	require.NoError(t, err)
	assert.False(t, f.InStock)
}

func TestFilterFromQueryRejectsBadNumbers(t *testing.T) {
	cases := map[string]url.Values{
		"invalid_price_range": {"minPrice": {"cheap"}},
		"invalid_page":        {"page": {"0"}},
		"invalid_limit":       {"limit": {"x"}},
		"invalid_pharmacy_id": {"pharmacyId": {"abc"}},
	}
	for code, q := range cases {
		_, err := FilterFromQuery(q)
		assert.True(t, httperr.Is(err, code), code)
		assert.Equal(t, httperr.KindValidation, httperr.KindOf(err))
	}
}

func TestFilterFromQueryRejectsHugePage(t *testing.T) {
	_, err := FilterFromQuery(url.Values{"page": {"9223372036854775807"}})
	assert.True(t, httperr.Is(err, "invalid_page"))

	_, err = FilterFromQuery(url.Values{"page": {"99999999999999999999"}})
	assert.True(t, httperr.Is(err, "invalid_page"))
}

func TestOffsetStaysPositiveAtMaxPage(t *testing.T) {
	f, err := FilterFromQuery(url.Values{"page": {strconv.Itoa(MaxPage)}, "limit": {"100"}})
	require.NoError(t, err)
	assert.Positive(t, f.Offset())

	f = Filter{Page: math.MaxInt, Limit: MaxLimit}
	f.Normalize()
	assert.Equal(t, MaxPage, f.Page)
	assert.Positive(t, f.Offset())
}

func TestNewPage(t *testing.T) {
	p := NewPage(nil, 21, Filter{Page: 2, Limit: 10})

	assert.NotNil(t, p.Medicines)
	assert.Equal(t, 3, p.Pages)
	assert.Equal(t, int64(21), p.Total)
	assert.Equal(t, 2, p.Page)

	assert.Equal(t, 0, NewPage(nil, 0, Filter{Page: 1, Limit: 10}).Pages)
}
