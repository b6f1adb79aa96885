package browser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/timecard-cli/internal/core/domain"
)

func TestByID(t *testing.T) {
	assert.Equal(t,
		`document.getElementById("mainForm:buttonPanel:new")`,
		byID("mainForm:buttonPanel:new"))
}

func TestJSString_Escapes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", `"plain"`},
		{`a"b`, `"a\"b"`},
		{`a\b`, `"a\\b"`},
		{"a\nb", `"a\nb"`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, jsString(tt.in))
		})
	}
}

func TestFactoryFromSettings(t *testing.T) {
	remote := domain.DefaultAppSettings().Remote
	remote.Headless = false
	remote.TimeoutSeconds = 5

	opts := FactoryFromSettings(remote).Options()

	assert.False(t, opts.Headless)
	assert.Equal(t, 5*time.Second, opts.Timeout)
}
