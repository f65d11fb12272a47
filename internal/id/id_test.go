package id_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pyqforge/backend/internal/id"
)

func TestGenerateID(t *testing.T) {
	a := id.GenerateID()
	b := id.GenerateID()

	assert.Len(t, a, 16)
	assert.NotEqual(t, a, b)
}

func TestWithPrefix(t *testing.T) {
	got := id.WithPrefix("att")

	assert.True(t, strings.HasPrefix(got, "att_"))
	assert.Len(t, got, len("att_")+16)
	assert.Len(t, id.WithPrefix(""), 16)
}
