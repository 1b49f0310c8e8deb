package httpjson

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gartstein/propertyhub/internal/propertybase/models"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// FailFunc answers a request whose operation returned err.
type FailFunc func(w http.ResponseWriter, err error)

func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, "bad_request", message)
}

// PathID parses the id path variable.
func PathID(r *http.Request) (uuid.UUID, error) {
	raw := mux.Vars(r)["id"]
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

func Get[T any](fail FailFunc, get func(context.Context, uuid.UUID) (*T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := PathID(r)
		if err != nil {
			BadRequest(w, err.Error())
			return
		}
		found, err := get(r.Context(), id)
		if err != nil {
			fail(w, err)
			return
		}
		Content(w, http.StatusOK, found)
	}
}

// List parses the filter and page from the query string and writes the
// page as is.
func List[F, T any](fail FailFunc, filter func(*Query) F,
	list func(context.Context, F, models.PageRequest) (models.Page[T], error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := NewQuery(r)
		f := filter(q)
		p := PageRequest(q)
		if err := q.Err(); err != nil {
			BadRequest(w, err.Error())
			return
		}
		result, err := list(r.Context(), f, p)
		if err != nil {
			fail(w, err)
			return
		}
		Write(w, http.StatusOK, result)
	}
}

func Create[T any](fail FailFunc, create func(context.Context, *T) (*T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input := new(T)
		if err := Decode(r, input); err != nil {
			BadRequest(w, err.Error())
			return
		}
		created, err := create(r.Context(), input)
		if err != nil {
			fail(w, err)
			return
		}
		Content(w, http.StatusCreated, created)
	}
}

func Update[U, T any](fail FailFunc, update func(context.Context, uuid.UUID, *U) (*T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := PathID(r)
		if err != nil {
			BadRequest(w, err.Error())
			return
		}
		input := new(U)
		if err := Decode(r, input); err != nil {
			BadRequest(w, err.Error())
			return
		}
		updated, err := update(r.Context(), id, input)
		if err != nil {
			fail(w, err)
			return
		}
		Content(w, http.StatusOK, updated)
	}
}

func Delete(fail FailFunc, del func(context.Context, uuid.UUID) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := PathID(r)
		if err != nil {
			BadRequest(w, err.Error())
			return
		}
		if err := del(r.Context(), id); err != nil {
			fail(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
