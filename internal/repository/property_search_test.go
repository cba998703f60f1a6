package repository

import (
	"math"
	"strings"
	"testing"

	"github.com/dialop/LightBnB/internal/errs"
	"github.com/dialop/LightBnB/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPropertySearch_NoFilters(t *testing.T) {
	query, args, err := buildPropertySearch(model.PropertySearchOptions{}, 10)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(query, `SELECT "properties"."id", "properties"."owner_id"`), query)
	assert.Contains(t, query, `AVG("property_reviews"."rating") AS "average_rating"`)
	assert.Contains(t, query, `FROM "properties" LEFT JOIN "property_reviews" ON ("properties"."id" = "property_reviews"."property_id")`)
	assert.NotContains(t, query, "WHERE")
	assert.NotContains(t, query, "HAVING")
	assert.Contains(t, query, `GROUP BY "properties"."id"`)
	assert.True(t, strings.HasSuffix(query, `ORDER BY "properties"."cost_per_night" ASC LIMIT $1`), query)

	require.Len(t, args, 1)
	assert.EqualValues(t, 10, args[0])
}

func TestBuildPropertySearch_DefaultLimit(t *testing.T) {
	_, args, err := buildPropertySearch(model.PropertySearchOptions{}, 0)
	require.NoError(t, err)

	require.Len(t, args, 1)
	assert.EqualValues(t, DefaultLimit, args[0])
}

func TestBuildPropertySearch_CityPattern(t *testing.T) {
	query, args, err := buildPropertySearch(model.PropertySearchOptions{City: ptr("anc")}, 10)
	require.NoError(t, err)

	assert.Contains(t, query, `WHERE ("properties"."city" LIKE $1)`)
	require.Len(t, args, 2)
	assert.Equal(t, "%anc%", args[0])
	assert.EqualValues(t, 10, args[1])
}

func TestBuildPropertySearch_EmptyCityIsNoFilter(t *testing.T) {
	query, args, err := buildPropertySearch(model.PropertySearchOptions{City: ptr("")}, 10)
	require.NoError(t, err)

	assert.NotContains(t, query, "WHERE")
	assert.Len(t, args, 1)
}

func TestBuildPropertySearch_PriceRangeNeedsBothBounds(t *testing.T) {
	onlyMin, args, err := buildPropertySearch(model.PropertySearchOptions{MinimumPricePerNight: ptr(50.0)}, 10)
	require.NoError(t, err)
	assert.NotContains(t, onlyMin, "BETWEEN")
	assert.Len(t, args, 1)

	onlyMax, args, err := buildPropertySearch(model.PropertySearchOptions{MaximumPricePerNight: ptr(150.0)}, 10)
	require.NoError(t, err)
	assert.NotContains(t, onlyMax, "BETWEEN")
	assert.Len(t, args, 1)

	both, args, err := buildPropertySearch(model.PropertySearchOptions{
		MinimumPricePerNight: ptr(50.0),
		MaximumPricePerNight: ptr(150.0),
	}, 10)
	require.NoError(t, err)
	assert.Contains(t, both, `("properties"."cost_per_night" BETWEEN $1 AND $2)`)
	require.Len(t, args, 3)
	assert.Equal(t, int64(5000), args[0])
	assert.Equal(t, int64(15000), args[1])
}

func TestBuildPropertySearch_MinimumRating(t *testing.T) {
	query, args, err := buildPropertySearch(model.PropertySearchOptions{MinimumRating: ptr(4.0)}, 10)
	require.NoError(t, err)

	assert.NotContains(t, query, "WHERE")
	assert.Contains(t, query, `GROUP BY "properties"."id" HAVING (AVG("property_reviews"."rating") >= $1)`)
	require.Len(t, args, 2)
	assert.Equal(t, 4.0, args[0])
	assert.EqualValues(t, 10, args[1])
}

func TestBuildPropertySearch_AllFilters(t *testing.T) {
	query, args, err := buildPropertySearch(model.PropertySearchOptions{
		City:                 ptr("Vancouver"),
		OwnerID:              ptr(int64(3)),
		MinimumPricePerNight: ptr(50.0),
		MaximumPricePerNight: ptr(150.0),
		MinimumRating:        ptr(3.5),
	}, 20)
	require.NoError(t, err)

	// Predicates in fixed order, joined with AND, numbered left to right.
	where := query[strings.Index(query, "WHERE"):strings.Index(query, "GROUP BY")]
	assert.Contains(t, where, `"properties"."city" LIKE $1`)
	assert.Contains(t, where, `"properties"."owner_id" = $2`)
	assert.Contains(t, where, `"properties"."cost_per_night" BETWEEN $3 AND $4`)
	assert.Less(t, strings.Index(where, "city"), strings.Index(where, "owner_id"))
	assert.Less(t, strings.Index(where, "owner_id"), strings.Index(where, "cost_per_night"))

	assert.Contains(t, query, `HAVING (AVG("property_reviews"."rating") >= $5)`)
	assert.True(t, strings.HasSuffix(query, "LIMIT $6"), query)

	require.Len(t, args, 6)
	assert.Equal(t, "%Vancouver%", args[0])
	assert.Equal(t, int64(3), args[1])
	assert.Equal(t, int64(5000), args[2])
	assert.Equal(t, int64(15000), args[3])
	assert.Equal(t, 3.5, args[4])
	assert.EqualValues(t, 20, args[5])
}

func TestBuildPropertySearch_PlaceholdersMatchArgs(t *testing.T) {
	optsList := []model.PropertySearchOptions{
		{},
		{OwnerID: ptr(int64(1))},
		{City: ptr("a"), MinimumRating: ptr(1.0)},
		{MinimumPricePerNight: ptr(1.0), MaximumPricePerNight: ptr(2.0), MinimumRating: ptr(5.0)},
	}

	for _, opts := range optsList {
		query, args, err := buildPropertySearch(opts, 10)
		require.NoError(t, err)

		assert.Equal(t, len(args), strings.Count(query, "$"), query)
	}
}

func TestBuildPropertySearch_ZeroMinimumPriceIsABound(t *testing.T) {
	query, args, err := buildPropertySearch(model.PropertySearchOptions{
		MinimumPricePerNight: ptr(0.0),
		MaximumPricePerNight: ptr(150.0),
	}, 10)
	require.NoError(t, err)

	assert.Contains(t, query, `("properties"."cost_per_night" BETWEEN $1 AND $2)`)
	require.Len(t, args, 3)
	assert.Equal(t, int64(0), args[0])
	assert.Equal(t, int64(15000), args[1])
}

func TestBuildPropertySearch_InvalidPriceBounds(t *testing.T) {
	tests := []struct {
		name   string
		min    float64
		max    float64
		fields []string
	}{
		{"NaN minimum", math.NaN(), 150, []string{"minimum_price_per_night"}},
		{"infinite maximum", 50, math.Inf(1), []string{"maximum_price_per_night"}},
		{"cents overflow", 50, 1e18, []string{"maximum_price_per_night"}},
		{"both bounds bad", math.Inf(-1), math.NaN(), []string{"minimum_price_per_night", "maximum_price_per_night"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildPropertySearch(model.PropertySearchOptions{
				MinimumPricePerNight: ptr(tt.min),
				MaximumPricePerNight: ptr(tt.max),
			}, 10)

			require.Error(t, err)
			assert.Empty(t, query)
			assert.Nil(t, args)

			var appErr *errs.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, errs.KindInvalidInput, appErr.Kind)
			assert.Equal(t, searchOp, appErr.Op)

			fields := make([]string, 0, len(appErr.Errors))
			for _, fe := range appErr.Errors {
				fields = append(fields, fe.Field)
			}
			assert.Equal(t, tt.fields, fields)
		})
	}
}

func TestBuildPropertySearch_HalfRangeIgnoresBadBound(t *testing.T) {
	// Without the other bound the range is inactive, so the value is never converted.
	query, args, err := buildPropertySearch(model.PropertySearchOptions{MinimumPricePerNight: ptr(math.NaN())}, 10)
	require.NoError(t, err)
	assert.NotContains(t, query, "BETWEEN")
	assert.Len(t, args, 1)
}
