package middlewares

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Source reads a locale candidate from a request.
type Source func(r *http.Request) (string, bool)

// Sources tries each source in order and returns the first non-empty value.
type Sources []Source

func (s Sources) Extract(r *http.Request) (string, bool) {
	for _, src := range s {
		if src == nil {
			continue
		}
		if v, ok := src(r); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// FromCookie reads a plain cookie.
func FromCookie(name string) Source {
	return func(r *http.Request) (string, bool) {
		c, err := r.Cookie(name)
		if err != nil || c.Value == "" {
			return "", false
		}
		return c.Value, true
	}
}

// FromQuery reads a query parameter.
func FromQuery(name string) Source {
	return func(r *http.Request) (string, bool) {
		v := r.URL.Query().Get(name)
		return v, v != ""
	}
}

// FromHeader reads a request header.
func FromHeader(name string) Source {
	return func(r *http.Request) (string, bool) {
		v := r.Header.Get(name)
		return v, v != ""
	}
}

// FromURLParam reads a chi route parameter, as in "/{lang}/docs".
func FromURLParam(name string) Source {
	return func(r *http.Request) (string, bool) {
		v := chi.URLParam(r, name)
		return v, v != ""
	}
}
