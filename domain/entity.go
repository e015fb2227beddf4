package domain

// M is a shorthand for generic object expressions and items.
type M = map[string]any

// A is a shorthand for generic lists.
type A = []any

// Config controls a single filter call. It is immutable per call and
// participates in cache-key computation. The zero value is completed with
// engine defaults before use.
type Config struct {
	// CaseSensitive applies to string operators, wildcard patterns and
	// string ordering. Off by default.
	CaseSensitive bool
	// MaxDepth strictly bounds recursive descent into nested objects and
	// arrays. Valid range is 1 through 10. Exceeding the bound resolves
	// the branch to non-matching rather than erroring.
	MaxDepth int
	// DisableCache bypasses the predicate and result tiers for this call.
	// Results are unaffected, only timing.
	DisableCache bool
	// Comparator, when set, overrides the default primitive comparison of
	// the deep structural comparator.
	Comparator func(a, b any) bool `json:"-"`
	// OrderBy lists the sort keys applied on the eager path.
	OrderBy []SortKey
	// Limit truncates the eager result set. Zero or negative means no
	// limit.
	Limit int
}

// SortKey is one normalized ordering criterion.
type SortKey struct {
	Field string
	Desc  bool
}

// GeoPoint is a WGS84 coordinate pair.
type GeoPoint struct {
	Lat float64 `mapstructure:"lat"`
	Lng float64 `mapstructure:"lng"`
}

// Valid reports whether the point lies within the latitude range [-90,90]
// and longitude range [-180,180].
func (p GeoPoint) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// BoundingBox is a geographic rectangle. It may wrap the antimeridian, in
// which case Southwest.Lng > Northeast.Lng.
type BoundingBox struct {
	Southwest GeoPoint `mapstructure:"southwest"`
	Northeast GeoPoint `mapstructure:"northeast"`
}

// Valid reports whether both corners carry valid coordinates.
func (b BoundingBox) Valid() bool {
	return b.Southwest.Valid() && b.Northeast.Valid()
}

// PolygonQuery is a closed polygon given as a vertex ring. Fewer than three
// vertices never match.
type PolygonQuery struct {
	Points []GeoPoint `mapstructure:"points"`
}

// Valid reports whether the polygon has at least three valid vertices.
func (p PolygonQuery) Valid() bool {
	if len(p.Points) < 3 {
		return false
	}
	for _, pt := range p.Points {
		if !pt.Valid() {
			return false
		}
	}
	return true
}

// NearQuery is the argument of the $near operator. Distances are meters on a
// mean Earth radius sphere.
type NearQuery struct {
	Center            GeoPoint `mapstructure:"center"`
	MaxDistanceMeters float64  `mapstructure:"maxDistanceMeters"`
	MinDistanceMeters float64  `mapstructure:"minDistanceMeters"`
}
