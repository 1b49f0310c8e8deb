package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPtr(t *testing.T) {
	p := Ptr(42)
	assert.Equal(t, 42, *p)

	s := Ptr("name")
	*s = "changed"
	assert.Equal(t, "changed", *s)
}

func TestDeref(t *testing.T) {
	assert.Equal(t, 7, Deref(Ptr(7), 1))
	assert.Equal(t, 1, Deref[int](nil, 1))
	assert.Equal(t, "", Deref[string](nil, ""))
}
