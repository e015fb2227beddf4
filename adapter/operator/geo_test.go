package operator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcabreradev/filter-sub003/domain"
)

// Brandenburger Tor and the Reichstag building, roughly 1.4 km apart.
var (
	brandenburgerTor = domain.GeoPoint{Lat: 52.5163, Lng: 13.3777}
	reichstag        = domain.GeoPoint{Lat: 52.5186, Lng: 13.3762}
)

func TestHaversine(t *testing.T) {
	d := haversineMeters(brandenburgerTor, reichstag)
	assert.InDelta(t, 270, d, 30, "measured distance is about 270 m")

	assert.Zero(t, haversineMeters(brandenburgerTor, brandenburgerTor))

	lisbon := domain.GeoPoint{Lat: 38.7223, Lng: -9.1393}
	d = haversineMeters(brandenburgerTor, lisbon)
	assert.InDelta(t, 2315000, d, 30000)
}

func TestNear(t *testing.T) {
	e := NewEvaluator()
	q := domain.NearQuery{Center: brandenburgerTor, MaxDistanceMeters: 500}

	assert.True(t, e.Near(reichstag, q))
	assert.True(t, e.Near(domain.M{"lat": 52.5186, "lng": 13.3762}, q))
	assert.False(t, e.Near(domain.GeoPoint{Lat: 52.53, Lng: 13.42}, q))
}

func TestNearMinDistanceBand(t *testing.T) {
	e := NewEvaluator()
	q := domain.NearQuery{
		Center:            brandenburgerTor,
		MinDistanceMeters: 100,
		MaxDistanceMeters: 1000,
	}
	assert.True(t, e.Near(reichstag, q))
	assert.False(t, e.Near(brandenburgerTor, q), "below the minimum distance")
}

func TestNearFailsClosed(t *testing.T) {
	e := NewEvaluator()
	q := domain.NearQuery{Center: brandenburgerTor, MaxDistanceMeters: 500}

	assert.False(t, e.Near(nil, q))
	assert.False(t, e.Near("not a point", q))
	assert.False(t, e.Near(domain.M{"lat": 52.5}, q), "missing lng")
	assert.False(t, e.Near(domain.GeoPoint{Lat: 91, Lng: 0}, q), "invalid latitude")
}

func TestGeoBox(t *testing.T) {
	e := NewEvaluator()
	box := domain.BoundingBox{
		Southwest: domain.GeoPoint{Lat: 52.3, Lng: 13.0},
		Northeast: domain.GeoPoint{Lat: 52.7, Lng: 13.8},
	}
	assert.True(t, e.GeoBox(brandenburgerTor, box))
	assert.False(t, e.GeoBox(domain.GeoPoint{Lat: 52.5, Lng: 14.0}, box))
	assert.False(t, e.GeoBox(domain.GeoPoint{Lat: 53.0, Lng: 13.4}, box))
}

func TestGeoBoxAntimeridian(t *testing.T) {
	e := NewEvaluator()
	// Fiji region: the box wraps from 177E across the dateline to 178W.
	box := domain.BoundingBox{
		Southwest: domain.GeoPoint{Lat: -20, Lng: 177},
		Northeast: domain.GeoPoint{Lat: -15, Lng: -178},
	}
	assert.True(t, e.GeoBox(domain.GeoPoint{Lat: -17, Lng: 179}, box))
	assert.True(t, e.GeoBox(domain.GeoPoint{Lat: -17, Lng: -179}, box))
	assert.False(t, e.GeoBox(domain.GeoPoint{Lat: -17, Lng: 170}, box))
	assert.False(t, e.GeoBox(domain.GeoPoint{Lat: -17, Lng: -170}, box))
}

func TestGeoPolygon(t *testing.T) {
	e := NewEvaluator()
	square := domain.PolygonQuery{Points: []domain.GeoPoint{
		{Lat: 0, Lng: 0},
		{Lat: 0, Lng: 10},
		{Lat: 10, Lng: 10},
		{Lat: 10, Lng: 0},
	}}

	assert.True(t, e.GeoPolygon(domain.GeoPoint{Lat: 5, Lng: 5}, square), "centroid is inside")
	assert.False(t, e.GeoPolygon(domain.GeoPoint{Lat: 15, Lng: 5}, square))
	for _, v := range square.Points {
		assert.False(t, e.GeoPolygon(v, square), "vertices count as outside")
	}
}

func TestParseNear(t *testing.T) {
	q, err := ParseNear(domain.M{
		"center":            domain.M{"lat": 52.5, "lng": 13.4},
		"maxDistanceMeters": 500,
	})
	require.NoError(t, err)
	assert.Equal(t, 52.5, q.Center.Lat)
	assert.Equal(t, 500.0, q.MaxDistanceMeters)
}

func TestParseGeoPolygon(t *testing.T) {
	bare := []any{
		domain.M{"lat": 0, "lng": 0},
		domain.M{"lat": 0, "lng": 1},
		domain.M{"lat": 1, "lng": 0},
	}
	p, err := ParseGeoPolygon(bare)
	require.NoError(t, err)
	assert.Len(t, p.Points, 3)

	wrapped, err := ParseGeoPolygon(domain.M{"points": bare})
	require.NoError(t, err)
	assert.Equal(t, p, wrapped)

	_, err = ParseGeoPolygon(bare[:2])
	var argErr domain.ErrOperatorArgument
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, "$geoPolygon", argErr.Operator)
}
