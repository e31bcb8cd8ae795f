package rod

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestXPathLiteral(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain text", in: "Submit request", want: "'Submit request'"},
		{name: "double quotes", in: `say "yes"`, want: `'say "yes"'`},
		{name: "single quote", in: "can't attend", want: `"can't attend"`},
		{name: "both quote kinds", in: `it's "fine"`, want: `concat('it', "'", 's "fine"')`},
		{name: "single quotes only", in: "'quoted'", want: `"'quoted'"`},
		{name: "both kinds at the edges", in: `'a"b`, want: `concat("'", 'a"b')`},
		{name: "empty", in: "", want: "''"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, xpathLiteral(tt.in))
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, defaultPageLoadTimeout, cfg.PageLoadTimeout)
	assert.Equal(t, defaultElementTimeout, cfg.ElementTimeout)
	assert.True(t, cfg.NoSandbox)
	assert.False(t, cfg.Headless)
}
