package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseID_Valid(t *testing.T) {
	oid := primitive.NewObjectID()

	parsed, err := ParseID(oid.Hex())

	require.NoError(t, err)
	assert.Equal(t, oid, parsed)
}

func TestParseID_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "too short", raw: "abc123"},
		{name: "not hex", raw: "zzzzzzzzzzzzzzzzzzzzzzzz"},
		{name: "too long", raw: strings.Repeat("a", 25)},
		{name: "whitespace", raw: "  507f1f77bcf86cd799439011"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseID(tt.raw)
			assert.ErrorIs(t, err, ErrInvalidID)
		})
	}
}
