package operator

import (
	"math"

	"github.com/mitchellh/mapstructure"

	"github.com/mcabreradev/filter-sub003/domain"
	"github.com/mcabreradev/filter-sub003/pkg/structure"
)

// Mean Earth radius, meters.
const earthRadiusMeters = 6371008.8

// ParseNear decodes a $near argument of the shape
// {center: {lat, lng}, maxDistanceMeters, minDistanceMeters}.
func ParseNear(arg any) (domain.NearQuery, error) {
	var q domain.NearQuery
	if err := decodeArg(arg, &q); err != nil {
		return q, domain.ErrOperatorArgument{Operator: "$near", Want: "near query", Actual: arg}
	}
	return q, nil
}

// ParseGeoBox decodes a $geoBox argument of the shape
// {southwest: {lat, lng}, northeast: {lat, lng}}.
func ParseGeoBox(arg any) (domain.BoundingBox, error) {
	var b domain.BoundingBox
	if err := decodeArg(arg, &b); err != nil {
		return b, domain.ErrOperatorArgument{Operator: "$geoBox", Want: "bounding box", Actual: arg}
	}
	return b, nil
}

// ParseGeoPolygon decodes a $geoPolygon argument: either {points: [...]} or a
// bare vertex list. Fewer than three vertices is a structural error.
func ParseGeoPolygon(arg any) (domain.PolygonQuery, error) {
	var p domain.PolygonQuery
	if items, ok := structure.Items(arg); ok {
		p.Points = make([]domain.GeoPoint, 0, len(items))
		for _, item := range items {
			pt, ok := asPoint(item)
			if !ok {
				return p, domain.ErrOperatorArgument{Operator: "$geoPolygon", Want: "point list", Actual: arg}
			}
			p.Points = append(p.Points, pt)
		}
	} else if err := decodeArg(arg, &p); err != nil {
		return p, domain.ErrOperatorArgument{Operator: "$geoPolygon", Want: "polygon", Actual: arg}
	}
	if len(p.Points) < 3 {
		return p, domain.ErrOperatorArgument{Operator: "$geoPolygon", Want: "at least 3 points", Actual: arg}
	}
	return p, nil
}

// Near reports whether the value's coordinates lie within the query's
// distance band around its center. Invalid coordinates on either side fail
// closed.
func (e *Evaluator) Near(value any, q domain.NearQuery) bool {
	pt, ok := asPoint(value)
	if !ok || !pt.Valid() || !q.Center.Valid() {
		return false
	}
	d := haversineMeters(pt, q.Center)
	if q.MaxDistanceMeters > 0 && d > q.MaxDistanceMeters {
		return false
	}
	if q.MinDistanceMeters > 0 && d < q.MinDistanceMeters {
		return false
	}
	return true
}

// GeoBox reports whether the value's coordinates fall inside the box. Boxes
// that straddle the antimeridian (west > east) apply an OR on longitude.
func (e *Evaluator) GeoBox(value any, b domain.BoundingBox) bool {
	pt, ok := asPoint(value)
	if !ok || !pt.Valid() || !b.Valid() {
		return false
	}
	if pt.Lat < b.Southwest.Lat || pt.Lat > b.Northeast.Lat {
		return false
	}
	west, east := b.Southwest.Lng, b.Northeast.Lng
	if west > east {
		return pt.Lng >= west || pt.Lng <= east
	}
	return pt.Lng >= west && pt.Lng <= east
}

// GeoPolygon reports point-in-polygon containment by ray casting (even-odd
// rule). Points coincident with a vertex count as outside.
func (e *Evaluator) GeoPolygon(value any, p domain.PolygonQuery) bool {
	pt, ok := asPoint(value)
	if !ok || !pt.Valid() || !p.Valid() {
		return false
	}
	return pointInPolygon(pt, p.Points)
}

func haversineMeters(a, b domain.GeoPoint) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLng*sinLng
	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(h))
}

func pointInPolygon(pt domain.GeoPoint, ring []domain.GeoPoint) bool {
	for _, v := range ring {
		if v == pt {
			return false
		}
	}
	inside := false
	j := len(ring) - 1
	for i := range ring {
		vi, vj := ring[i], ring[j]
		if (vi.Lat > pt.Lat) != (vj.Lat > pt.Lat) &&
			pt.Lng < (vj.Lng-vi.Lng)*(pt.Lat-vi.Lat)/(vj.Lat-vi.Lat)+vi.Lng {
			inside = !inside
		}
		j = i
	}
	return inside
}

// asPoint coerces an item value into a GeoPoint: a concrete [domain.GeoPoint]
// or any object carrying lat and lng fields. Both fields must be present.
func asPoint(v any) (domain.GeoPoint, bool) {
	switch t := v.(type) {
	case domain.GeoPoint:
		return t, true
	case *domain.GeoPoint:
		if t == nil {
			return domain.GeoPoint{}, false
		}
		return *t, true
	}
	i, _, err := structure.Seq2(v)
	if err != nil {
		return domain.GeoPoint{}, false
	}
	var pt domain.GeoPoint
	var hasLat, hasLng bool
	for k, fv := range i {
		switch k {
		case "lat", "Lat", "latitude":
			pt.Lat, hasLat = structure.AsFloat64(fv)
		case "lng", "Lng", "longitude":
			pt.Lng, hasLng = structure.AsFloat64(fv)
		}
	}
	return pt, hasLat && hasLng
}

func decodeArg(src, dst any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           dst,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(src)
}
