package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslateRestError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "single row not found code",
			err:  fmt.Errorf(`(PGRST116) JSON object requested, multiple (or no) rows returned`),
			want: ErrNotFound,
		},
		{
			name: "duplicate key",
			err:  fmt.Errorf(`(23505) duplicate key value violates unique constraint "users_email_key"`),
			want: ErrConflict,
		},
		{
			name: "unique constraint text only",
			err:  fmt.Errorf("unique constraint violation"),
			want: ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TranslateRestError("op", 0, tt.err)
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestTranslateRestErrorPassThrough(t *testing.T) {
	assert.NoError(t, TranslateRestError("op", 0, nil))

	cause := fmt.Errorf("connection refused")
	got := TranslateRestError("list properties", 503, cause)

	var pe *PersistenceError
	assert.ErrorAs(t, got, &pe)
	assert.Equal(t, "list properties", pe.Op)
	assert.Equal(t, 503, pe.Status)
	assert.ErrorIs(t, got, cause)
	assert.NotErrorIs(t, got, ErrNotFound)
	assert.NotErrorIs(t, got, ErrConflict)
}

func TestTranslateAuthError(t *testing.T) {
	got := TranslateAuthError(fmt.Errorf("response status code 400: Invalid login credentials"))
	assert.ErrorIs(t, got, ErrInvalidCredentials)

	got = TranslateAuthError(fmt.Errorf("response status code 422: User already registered"))
	assert.ErrorIs(t, got, ErrConflict)

	// Anything else must stay distinguishable from a credentials error.
	got = TranslateAuthError(errors.New("gateway timeout"))
	assert.NotErrorIs(t, got, ErrInvalidCredentials)
	var pe *PersistenceError
	assert.ErrorAs(t, got, &pe)
}

func TestIsSingleRowNotFound(t *testing.T) {
	assert.True(t, IsSingleRowNotFound(fmt.Errorf("(PGRST116) no rows")))
	assert.False(t, IsSingleRowNotFound(nil))
	assert.False(t, IsSingleRowNotFound(fmt.Errorf("some other failure")))
}
