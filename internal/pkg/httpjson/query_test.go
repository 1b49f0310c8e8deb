package httpjson

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestQuery(t *testing.T) {
	id := uuid.New()
	r := httptest.NewRequest(http.MethodGet, "/x?id="+id.String()+"&limit=20&active=true&name=+kyl+", nil)
	q := NewQuery(r)

	assert.Equal(t, id, q.ID("id"))
	assert.Equal(t, 20, q.Int("limit"))
	assert.Equal(t, 0, q.Int("page"))
	assert.True(t, q.Bool("active"))
	assert.Equal(t, "kyl", q.Str("name"))
	assert.NoError(t, q.Err())
}

func TestQuery_KeepsFirstError(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/x?id=nope&limit=-1&active=maybe", nil)
	q := NewQuery(r)

	assert.Equal(t, uuid.Nil, q.ID("id"))
	q.Int("limit")
	q.Bool("active")
	assert.EqualError(t, q.Err(), `invalid id "nope"`)
}

func TestQuery_RejectsNegative(t *testing.T) {
	q := NewQuery(httptest.NewRequest(http.MethodGet, "/x?page=-2", nil))
	q.Int("page")
	assert.EqualError(t, q.Err(), `invalid page "-2"`)
}
