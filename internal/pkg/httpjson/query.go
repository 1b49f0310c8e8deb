package httpjson

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Query reads typed query parameters, remembering the first parse error.
type Query struct {
	values url.Values
	err    error
}

func NewQuery(r *http.Request) *Query {
	return &Query{values: r.URL.Query()}
}

// Err returns the first parse error, if any.
func (q *Query) Err() error { return q.err }

func (q *Query) Str(key string) string {
	return strings.TrimSpace(q.values.Get(key))
}

func (q *Query) ID(key string) uuid.UUID {
	raw := q.Str(key)
	if raw == "" || q.err != nil {
		return uuid.Nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		q.err = fmt.Errorf("invalid %s %q", key, raw)
	}
	return id
}

// Int parses a non-negative integer. Absent keys read as zero.
func (q *Query) Int(key string) int {
	raw := q.Str(key)
	if raw == "" || q.err != nil {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		q.err = fmt.Errorf("invalid %s %q", key, raw)
	}
	return n
}

func (q *Query) Bool(key string) bool {
	raw := q.Str(key)
	if raw == "" || q.err != nil {
		return false
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		q.err = fmt.Errorf("invalid %s %q", key, raw)
	}
	return b
}
