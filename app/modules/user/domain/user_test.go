package userdomain

import (
	"strings"
	"testing"

	"github.com/Black-And-White-Club/clubhouse/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestRegistrationValidate(t *testing.T) {
	tests := []struct {
		name    string
		reg     Registration
		wantErr bool
	}{
		{
			name: "valid",
			reg:  Registration{Name: "Ada", Email: "ADA@example.com ", Phone: "555-0100"},
		},
		{
			name:    "missing name",
			reg:     Registration{Name: "  ", Email: "ada@example.com"},
			wantErr: true,
		},
		{
			name:    "missing email",
			reg:     Registration{Name: "Ada"},
			wantErr: true,
		},
		{
			name:    "malformed email",
			reg:     Registration{Name: "Ada", Email: "not-an-email"},
			wantErr: true,
		},
		{
			name:    "display name form",
			reg:     Registration{Name: "Bob", Email: "Bob Smith <bob@example.com>"},
			wantErr: true,
		},
		{
			name: "multibyte name at the limit",
			reg:  Registration{Name: strings.Repeat("名", 100), Email: "kana@example.com"},
		},
		{
			name:    "name over the limit",
			reg:     Registration{Name: strings.Repeat("名", 101), Email: "kana@example.com"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.reg.Normalize().Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRegistrationNormalize(t *testing.T) {
	got := Registration{Name: " Ada ", Email: " Ada@Example.COM", Phone: " 1 "}.Normalize()
	assert.Equal(t, Registration{Name: "Ada", Email: "ada@example.com", Phone: "1"}, got)
}
