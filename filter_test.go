package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func places() []any {
	return []any{
		M{"name": "Brandenburger Tor", "city": "Berlin", "rating": 4.8,
			"loc": M{"lat": 52.5163, "lng": 13.3777}},
		M{"name": "Reichstag", "city": "Berlin", "rating": 4.7,
			"loc": M{"lat": 52.5186, "lng": 13.3762}},
		M{"name": "Fernsehturm", "city": "Berlin", "rating": 4.5,
			"loc": M{"lat": 52.5208, "lng": 13.4094}},
		M{"name": "Torre de Belém", "city": "Lisbon", "rating": 4.6,
			"loc": M{"lat": 38.6916, "lng": -9.2160}},
	}
}

func placeNames(items []any) []string {
	res := make([]string, len(items))
	for n, item := range items {
		res[n] = item.(M)["name"].(string)
	}
	return res
}

func TestFilterByField(t *testing.T) {
	res, err := Filter(places(), M{"city": "Berlin"})
	require.NoError(t, err)
	assert.Len(t, res, 3)
}

func TestFilterWildcardAndNegation(t *testing.T) {
	res, err := Filter(places(), M{"name": "Torre%"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Torre de Belém"}, placeNames(res))

	res, err = Filter(places(), M{"city": "!Berlin"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Torre de Belém"}, placeNames(res))
}

// The matches of an expression and of its negation partition the collection.
func TestNegationIsSetDifference(t *testing.T) {
	all := places()
	pos, err := Filter(all, M{"city": "Berlin"})
	require.NoError(t, err)
	neg, err := Filter(all, M{"city": "!Berlin"})
	require.NoError(t, err)
	assert.Len(t, pos, len(all)-len(neg))

	seen := map[string]bool{}
	for _, item := range append(pos, neg...) {
		seen[item.(M)["name"].(string)] = true
	}
	assert.Len(t, seen, len(all))
}

func TestAndCompositionEqualsSequentialFilters(t *testing.T) {
	all := places()
	combined, err := Filter(all, M{"city": "Berlin", "rating": M{"$gte": 4.7}})
	require.NoError(t, err)

	step1, err := Filter(all, M{"city": "Berlin"})
	require.NoError(t, err)
	step2, err := Filter(step1, M{"rating": M{"$gte": 4.7}})
	require.NoError(t, err)

	assert.Equal(t, placeNames(step2), placeNames(combined))
}

func TestOrderByAndLimit(t *testing.T) {
	res, err := Filter(places(), M{"city": "Berlin"},
		WithOrderBy("-rating"), WithLimit(2))
	require.NoError(t, err)
	assert.Equal(t, []string{"Brandenburger Tor", "Reichstag"}, placeNames(res))
}

func TestGeofence(t *testing.T) {
	// Sights within walking distance of Pariser Platz.
	near := M{"loc": M{"$near": M{
		"center":            M{"lat": 52.5160, "lng": 13.3779},
		"maxDistanceMeters": 500,
	}}}
	res, err := Filter(places(), near)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Brandenburger Tor", "Reichstag"}, placeNames(res))

	box := M{"loc": M{"$geoBox": M{
		"southwest": M{"lat": 52.3, "lng": 13.0},
		"northeast": M{"lat": 52.7, "lng": 13.8},
	}}}
	res, err = Filter(places(), box)
	require.NoError(t, err)
	assert.Len(t, res, 3)
}

func TestGeofenceKnownDistance(t *testing.T) {
	// ~140 m northeast of Alexanderplatz center.
	items := []any{M{"name": "spot", "loc": M{"lat": 52.521, "lng": 13.406}}}

	res, err := Filter(items, M{"loc": M{"$near": M{
		"center":            M{"lat": 52.52, "lng": 13.405},
		"maxDistanceMeters": 1000,
	}}})
	require.NoError(t, err)
	assert.Len(t, res, 1)

	res, err = Filter(items, M{"loc": M{"$geoBox": M{
		"southwest": M{"lat": 52.5, "lng": 13.3},
		"northeast": M{"lat": 52.6, "lng": 13.5},
	}}})
	require.NoError(t, err)
	assert.Len(t, res, 1)
}

func TestGeoPolygonCentroidInVerticesOut(t *testing.T) {
	square := []any{
		M{"lat": 52.0, "lng": 13.0},
		M{"lat": 52.0, "lng": 14.0},
		M{"lat": 53.0, "lng": 14.0},
		M{"lat": 53.0, "lng": 13.0},
	}
	items := []any{
		M{"name": "center", "loc": M{"lat": 52.5, "lng": 13.5}},
		M{"name": "vertex", "loc": M{"lat": 52.0, "lng": 13.0}},
		M{"name": "outside", "loc": M{"lat": 51.0, "lng": 13.5}},
	}
	res, err := Filter(items, M{"loc": M{"$geoPolygon": square}})
	require.NoError(t, err)
	assert.Equal(t, []string{"center"}, placeNames(res))
}

func TestLazyMatchesEager(t *testing.T) {
	all := places()
	expr := M{"rating": M{"$gte": 4.6}}

	eager, err := Filter(all, expr)
	require.NoError(t, err)

	seq, err := FilterLazy(all, expr)
	require.NoError(t, err)
	lazy := make([]any, 0, len(eager))
	for v := range seq {
		lazy = append(lazy, v)
	}
	assert.Equal(t, eager, lazy)
}

func TestFirstExistsCount(t *testing.T) {
	all := places()

	first, err := FilterFirst(all, M{"city": "Berlin"}, 2)
	require.NoError(t, err)
	assert.Len(t, first, 2)

	ok, err := Exists(all, M{"city": "Lisbon"})
	require.NoError(t, err)
	assert.True(t, ok)

	n, err := Count(all, M{"rating": M{"$gt": 4.6}})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestEquivalentExpressionsShareCompiledPredicate(t *testing.T) {
	e := New()
	all := places()

	_, err := e.Filter(all, M{"city": "Berlin", "rating": M{"$gte": 4.5}})
	require.NoError(t, err)
	size := e.CacheStats().PredicateCacheSize

	// Same expression with reordered keys compiles to the same cache slot.
	_, err = e.Filter(all, M{"rating": M{"$gte": 4.5}, "city": "Berlin"})
	require.NoError(t, err)
	assert.Equal(t, size, e.CacheStats().PredicateCacheSize)
}

func TestIndependentEnginesShareNothing(t *testing.T) {
	a, b := New(), New()
	_, err := a.Filter(places(), M{"city": "Berlin"})
	require.NoError(t, err)
	assert.NotZero(t, a.CacheStats().PredicateCacheSize)
	assert.Zero(t, b.CacheStats().PredicateCacheSize)
}

func TestComparatorOption(t *testing.T) {
	res, err := Filter(places(), M{"rating": 1},
		WithComparator(func(a, b any) bool { return true }))
	require.NoError(t, err)
	assert.Len(t, res, 4)
}

func TestRelativeTimeEndToEnd(t *testing.T) {
	events := []any{
		M{"name": "recent", "at": time.Now().Add(-2 * time.Hour)},
		M{"name": "stale", "at": time.Now().AddDate(0, 0, -30)},
		M{"name": "soon", "at": time.Now().Add(24 * time.Hour)},
	}

	res, err := Filter(events, M{"at": M{"$recent": 7}})
	require.NoError(t, err)
	assert.Equal(t, []string{"recent"}, placeNames(res))

	res, err = Filter(events, M{"at": M{"$upcoming": 2}})
	require.NoError(t, err)
	assert.Equal(t, []string{"soon"}, placeNames(res))
}

func TestWholeItemSearchEndToEnd(t *testing.T) {
	res, err := Filter(places(), "Torre")
	require.NoError(t, err)
	assert.Equal(t, []string{"Torre de Belém"}, placeNames(res))
}

func TestStructItems(t *testing.T) {
	type place struct {
		Name string `filter:"name"`
		City string `filter:"city"`
	}
	items := []any{
		place{Name: "Brandenburger Tor", City: "Berlin"},
		place{Name: "Torre de Belém", City: "Lisbon"},
	}
	res, err := Filter(items, M{"city": "Berlin"})
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "Brandenburger Tor", res[0].(place).Name)
}
