package navmux

import "net/url"

// Query holds the query parameters of a navigation. A key that occurs
// once has a single value; a key that occurs several times keeps every
// value in the order it appeared.
type Query map[string][]string

// parseQuery parses a raw query string. Malformed pairs are skipped.
func parseQuery(raw string) Query {
	if raw == "" {
		return Query{}
	}
	values, _ := url.ParseQuery(raw) //nolint:errcheck // keep the pairs that parsed
	return Query(values)
}

// Get returns the first value for key, or "" when key is absent.
func (q Query) Get(key string) string {
	if vs := q[key]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// Values returns every value for key in occurrence order.
func (q Query) Values(key string) []string {
	return q[key]
}

// Has reports whether key is present.
func (q Query) Has(key string) bool {
	_, ok := q[key]
	return ok
}

// IsMulti reports whether key occurred more than once.
func (q Query) IsMulti(key string) bool {
	return len(q[key]) > 1
}
