package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAllowlist(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Allowlist
	}{
		{
			name: "empty string",
			raw:  "",
			want: nil,
		},
		{
			name: "single email",
			raw:  "admin@servus.dev",
			want: Allowlist{"admin@servus.dev"},
		},
		{
			name: "trims spaces and lowercases",
			raw:  " Admin@Servus.dev , host@servus.dev ",
			want: Allowlist{"admin@servus.dev", "host@servus.dev"},
		},
		{
			name: "skips empty entries",
			raw:  "admin@servus.dev,,host@servus.dev,",
			want: Allowlist{"admin@servus.dev", "host@servus.dev"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAllowlist(tt.raw))
		})
	}
}

func TestAllowlistContains(t *testing.T) {
	list := ParseAllowlist("admin@servus.dev,host@servus.dev")

	assert.True(t, list.Contains("admin@servus.dev"))
	assert.True(t, list.Contains("Admin@Servus.DEV"))
	assert.True(t, list.Contains(" host@servus.dev "))
	assert.False(t, list.Contains("guest@servus.dev"))
	assert.False(t, list.Contains(""))
}

func TestAdminAllowlist(t *testing.T) {
	conf := &APIConfig{AdminEmails: "Admin@Servus.dev"}

	assert.True(t, conf.AdminAllowlist().Contains("admin@servus.dev"))
}
