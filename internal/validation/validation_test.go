package validation

import (
	"strings"
	"testing"

	"github.com/Black-And-White-Club/clubhouse/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Name  string `json:"name" validate:"required,max=10"`
	Email string `json:"email" validate:"required,email"`
	Seats *int   `json:"seats" label:"max attendees" validate:"omitempty,gte=1"`
}

func intPtr(v int) *int { return &v }

func TestStruct(t *testing.T) {
	tests := []struct {
		name    string
		in      signup
		wantErr string
	}{
		{
			name: "valid",
			in:   signup{Name: "Ada", Email: "ada@example.com"},
		},
		{
			name: "multibyte name counts characters",
			in:   signup{Name: strings.Repeat("囲", 10), Email: "ada@example.com", Seats: intPtr(3)},
		},
		{
			name:    "missing name",
			in:      signup{Email: "ada@example.com"},
			wantErr: "name is required",
		},
		{
			name:    "name too long",
			in:      signup{Name: strings.Repeat("a", 11), Email: "ada@example.com"},
			wantErr: "name must be at most 10 characters",
		},
		{
			name:    "display name form is not an address",
			in:      signup{Name: "Bob", Email: "Bob Smith <bob@example.com>"},
			wantErr: "is not a valid address",
		},
		{
			name:    "plain garbage email",
			in:      signup{Name: "Bob", Email: "not-an-email"},
			wantErr: "is not a valid address",
		},
		{
			name:    "non-positive seats",
			in:      signup{Name: "Bob", Email: "bob@example.com", Seats: intPtr(0)},
			wantErr: "max attendees must be at least 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.in)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestStruct_NotAStruct(t *testing.T) {
	err := Struct(42)
	require.Error(t, err)
	assert.Empty(t, apperrors.CodeOf(err))
}
