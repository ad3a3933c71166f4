package textfmt_test

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/lingua/pkg/textfmt"
)

func TestConvertEscapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "Hello world", "Hello world"},
		{"single placeholder", "Hello {0}", "Hello {0}"},
		{"doubled brace", "{{literal}", "'{'literal}"},
		{"tripled brace", "{{{0}", "'{'{0}"},
		{"four braces", "{{{{", "'{{'"},
		{"five braces", "a{{{{{0}b", "a'{{'{0}b"},
		{"quote", "it's", "it''s"},
		{"two quotes", "''", "''''"},
		{"mixed", "it's {{{0}", "it''s '{'{0}"},
		{"closing brace untouched", "}}", "}}"},
		{"unicode kept", "ünï {{ 😀", "ünï '{' 😀"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, textfmt.ConvertEscapes(tt.in))
		})
	}
}

// Not parallel: AllocsPerRun needs a quiet process.
func TestConvertEscapes_ReturnsSameString(t *testing.T) {
	in := "Hello {0}, you have {1} messages"
	out := textfmt.ConvertEscapes(in)
	require.Equal(t, in, out)
	require.Same(t, unsafe.StringData(in), unsafe.StringData(out))

	allocs := testing.AllocsPerRun(100, func() {
		_ = textfmt.ConvertEscapes(in)
	})
	require.Zero(t, allocs)
}
