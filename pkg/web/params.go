package web

import (
	"net/http"
	"strconv"
)

// Optional query parameter parsers. Filters are lenient by contract: an
// absent or unparsable value means "no constraint", never zero.

// QueryFloat returns the named query parameter as a float pointer, or nil
// when the parameter is absent or not a number.
func QueryFloat(r *http.Request, key string) *float64 {
	value := r.URL.Query().Get(key)
	if value == "" {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &f
}

// QueryInt32 returns the named query parameter as an int32 pointer, or nil
// when the parameter is absent or not an integer.
func QueryInt32(r *http.Request, key string) *int32 {
	value := r.URL.Query().Get(key)
	if value == "" {
		return nil
	}
	i, err := strconv.ParseInt(value, 10, 32)
	if err != nil {
		return nil
	}
	i32 := int32(i)
	return &i32
}

// QueryIntDefault returns the named query parameter as an int, falling back
// to def when the parameter is absent or not an integer.
func QueryIntDefault(r *http.Request, key string, def int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return def
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return i
}
