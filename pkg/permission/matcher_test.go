package permission_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/accesskit/pkg/permission"
)

func TestMatcher_Matches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		matcher  permission.Matcher
		granted  permission.Permission
		required permission.Permission
		want     bool
	}{
		{
			name:     "exact match without wildcard",
			matcher:  permission.Matcher{Normalize: true},
			granted:  "invoice:read",
			required: "invoice:read",
			want:     true,
		},
		{
			name:     "different action denied",
			matcher:  permission.Matcher{Normalize: true},
			granted:  "invoice:read",
			required: "invoice:write",
			want:     false,
		},
		{
			name:     "different resource denied",
			matcher:  permission.Matcher{Normalize: true},
			granted:  "invoice:read",
			required: "report:read",
			want:     false,
		},
		{
			name:     "wildcard grant inert while wildcard disabled",
			matcher:  permission.Matcher{Normalize: true},
			granted:  "invoice:*",
			required: "invoice:read",
			want:     false,
		},
		{
			name:     "full wildcard inert while wildcard disabled",
			matcher:  permission.Matcher{Normalize: true},
			granted:  "*:*",
			required: "invoice:read",
			want:     false,
		},
		{
			name:     "wildcard grant does not even match itself while disabled",
			matcher:  permission.Matcher{Normalize: true},
			granted:  "invoice:*",
			required: "invoice:*",
			want:     false,
		},
		{
			name:     "action wildcard matches when enabled",
			matcher:  permission.Matcher{Wildcard: true, Normalize: true},
			granted:  "invoice:*",
			required: "invoice:read",
			want:     true,
		},
		{
			name:     "resource wildcard matches when enabled",
			matcher:  permission.Matcher{Wildcard: true, Normalize: true},
			granted:  "*:read",
			required: "report:read",
			want:     true,
		},
		{
			name:     "full wildcard matches anything when enabled",
			matcher:  permission.Matcher{Wildcard: true, Normalize: true},
			granted:  "*:*",
			required: "report:export",
			want:     true,
		},
		{
			name:     "resource wildcard does not widen action",
			matcher:  permission.Matcher{Wildcard: true, Normalize: true},
			granted:  "*:read",
			required: "report:export",
			want:     false,
		},
		{
			name:     "action wildcard does not widen resource",
			matcher:  permission.Matcher{Wildcard: true, Normalize: true},
			granted:  "invoice:*",
			required: "report:read",
			want:     false,
		},
		{
			name:     "normalization tolerates raw store data",
			matcher:  permission.Matcher{Normalize: true},
			granted:  "Invoice:Read",
			required: "invoice:read",
			want:     true,
		},
		{
			name:     "no normalization means raw data misses",
			matcher:  permission.Matcher{},
			granted:  "Invoice:Read",
			required: "invoice:read",
			want:     false,
		},
		{
			name:     "malformed grant never matches",
			matcher:  permission.Matcher{Wildcard: true, Normalize: true},
			granted:  "invoice",
			required: "invoice:read",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.matcher.Matches(tt.granted, tt.required))
		})
	}
}

func TestMatcher_CoversResource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		matcher  permission.Matcher
		granted  permission.Permission
		resource permission.ResourceName
		want     bool
	}{
		{
			name:     "matching resource",
			matcher:  permission.Matcher{Normalize: true},
			granted:  "invoice:read",
			resource: "invoice",
			want:     true,
		},
		{
			name:     "action is ignored",
			matcher:  permission.Matcher{Normalize: true},
			granted:  "invoice:delete",
			resource: "invoice",
			want:     true,
		},
		{
			name:     "different resource",
			matcher:  permission.Matcher{Normalize: true},
			granted:  "invoice:read",
			resource: "report",
			want:     false,
		},
		{
			name:     "wildcard action still covers its resource while wildcard disabled",
			matcher:  permission.Matcher{Normalize: true},
			granted:  "invoice:*",
			resource: "invoice",
			want:     true,
		},
		{
			name:     "wildcard resource covers everything when enabled",
			matcher:  permission.Matcher{Wildcard: true, Normalize: true},
			granted:  "*:read",
			resource: "report",
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.matcher.CoversResource(tt.granted, tt.resource))
		})
	}
}

func TestMatcher_Sets(t *testing.T) {
	t.Parallel()

	m := permission.Matcher{Wildcard: true, Normalize: true}
	granted := []permission.Permission{"report:export", "invoice:*"}

	assert.True(t, m.AuthorizeSet("invoice:read", granted))
	assert.True(t, m.AuthorizeSet("report:export", granted))
	assert.False(t, m.AuthorizeSet("report:read", granted))
	assert.False(t, m.AuthorizeSet("invoice:read", nil))

	assert.True(t, m.CoversResourceSet("invoice", granted))
	assert.True(t, m.CoversResourceSet("report", granted))
	assert.False(t, m.CoversResourceSet("customer", granted))
}
