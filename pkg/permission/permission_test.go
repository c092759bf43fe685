package permission_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/accesskit/pkg/permission"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    permission.Permission
		wantErr bool
	}{
		{
			name:  "valid permission",
			input: "invoice:read",
			want:  "invoice:read",
		},
		{
			name:  "trimmed and case-folded",
			input: " Invoice:Read ",
			want:  "invoice:read",
		},
		{
			name:  "wildcard action",
			input: "invoice:*",
			want:  "invoice:*",
		},
		{
			name:  "wildcard resource",
			input: "*:read",
			want:  "*:read",
		},
		{
			name:  "full wildcard",
			input: "*:*",
			want:  "*:*",
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
		{
			name:    "missing separator",
			input:   "invoiceread",
			wantErr: true,
		},
		{
			name:    "extra separator",
			input:   "invoice:read:extra",
			wantErr: true,
		},
		{
			name:    "empty resource segment",
			input:   ":read",
			wantErr: true,
		},
		{
			name:    "empty action segment",
			input:   "invoice:",
			wantErr: true,
		},
		{
			name:    "disallowed character",
			input:   "invoice:read!",
			wantErr: true,
		},
		{
			name:    "wildcard embedded in resource",
			input:   "inv*:read",
			wantErr: true,
		},
		{
			name:    "wildcard embedded in action",
			input:   "invoice:re*d",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			perm, err := permission.New(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, permission.ErrInvalidPermission)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, perm)
		})
	}
}

func TestNew_NormalizationEquality(t *testing.T) {
	t.Parallel()

	a, err := permission.New(" Invoice:Read ")
	require.NoError(t, err)
	b, err := permission.New("invoice:read")
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestNewRaw(t *testing.T) {
	t.Parallel()

	t.Run("keeps case", func(t *testing.T) {
		t.Parallel()

		// Raw parsing trims but does not case-fold; uppercase segments
		// fail the charset check, which is the point: raw mode is for
		// callers that already store lowercase and opt out of folding.
		_, err := permission.NewRaw("Invoice:Read")
		assert.ErrorIs(t, err, permission.ErrInvalidPermission)
	})

	t.Run("accepts canonical input", func(t *testing.T) {
		t.Parallel()

		perm, err := permission.NewRaw(" invoice:read ")
		require.NoError(t, err)
		assert.Equal(t, permission.Permission("invoice:read"), perm)
	})
}

func TestPermission_Segments(t *testing.T) {
	t.Parallel()

	perm, err := permission.New("invoice:read")
	require.NoError(t, err)

	assert.Equal(t, "invoice", perm.Resource())
	assert.Equal(t, "read", perm.Action())
	assert.False(t, perm.HasWildcard())

	wild, err := permission.New("invoice:*")
	require.NoError(t, err)
	assert.True(t, wild.HasWildcard())
}
