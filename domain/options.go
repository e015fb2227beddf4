package domain

// FilterOption configures a single filter call through the functional options
// pattern.
type FilterOption func(*Config)

// WithCaseSensitive makes string matching, wildcard patterns and string
// ordering case sensitive.
func WithCaseSensitive() FilterOption {
	return func(c *Config) {
		c.CaseSensitive = true
	}
}

// WithMaxDepth bounds recursive descent into nested objects and arrays.
// Valid values are 1 through 10.
func WithMaxDepth(depth int) FilterOption {
	return func(c *Config) {
		c.MaxDepth = depth
	}
}

// WithCache enables or disables the predicate and result cache tiers for
// this call. Disabling never changes the result set, only timing.
func WithCache(enabled bool) FilterOption {
	return func(c *Config) {
		c.DisableCache = !enabled
	}
}

// WithoutCache bypasses the predicate and result cache tiers for this call.
func WithoutCache() FilterOption {
	return func(c *Config) {
		c.DisableCache = true
	}
}

// WithComparator overrides the default primitive comparison used by the deep
// structural comparator.
func WithComparator(fn func(a, b any) bool) FilterOption {
	return func(c *Config) {
		c.Comparator = fn
	}
}

// WithOrderBy sets the sort specification for the eager path. Each spec may
// be a bare field name, a field name with a leading '-' for descending order,
// or a [SortKey].
func WithOrderBy(specs ...any) FilterOption {
	return func(c *Config) {
		for _, spec := range specs {
			switch s := spec.(type) {
			case SortKey:
				c.OrderBy = append(c.OrderBy, s)
			case string:
				if len(s) > 0 && s[0] == '-' {
					c.OrderBy = append(c.OrderBy, SortKey{Field: s[1:], Desc: true})
					continue
				}
				c.OrderBy = append(c.OrderBy, SortKey{Field: s})
			}
		}
	}
}

// WithLimit truncates the eager result set after sorting. Zero or negative
// means no limit.
func WithLimit(n int) FilterOption {
	return func(c *Config) {
		c.Limit = n
	}
}
