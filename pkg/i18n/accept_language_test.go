package i18n_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/lingua/pkg/i18n"
)

func TestPreferredLocales(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header string
		want   []i18n.LocaleKey
	}{
		{"empty", "", []i18n.LocaleKey{}},
		{"single", "de", []i18n.LocaleKey{key("de", "", "")}},
		{
			name:   "ordered by quality",
			header: "pl;q=0.8, en-US, en;q=0.9",
			want:   []i18n.LocaleKey{key("en", "US", ""), key("en", "", ""), key("pl", "", "")},
		},
		{
			name:   "stable for equal quality",
			header: "fr;q=0.5,de;q=0.5",
			want:   []i18n.LocaleKey{key("fr", "", ""), key("de", "", "")},
		},
		{
			name:   "drops wildcard zero quality and garbage",
			header: "*, es;q=0, !!!, it",
			want:   []i18n.LocaleKey{key("it", "", "")},
		},
		{
			name:   "underscore form",
			header: "pt_BR",
			want:   []i18n.LocaleKey{key("pt", "BR", "")},
		},
		{
			name:   "invalid quality keeps default",
			header: "nl;q=abc",
			want:   []i18n.LocaleKey{key("nl", "", "")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, i18n.PreferredLocales(tt.header))
		})
	}
}

func TestParseAcceptLanguage(t *testing.T) {
	t.Parallel()

	available := []i18n.LocaleKey{key("pl", "", ""), key("en", "", ""), key("de", "", ""), key("de", "CH", "")}

	tests := []struct {
		name   string
		header string
		want   i18n.LocaleKey
	}{
		{"exact match", "de-CH", key("de", "CH", "")},
		{"language match", "en-US,en;q=0.9,pl;q=0.8", key("en", "", "")},
		{"prefers language without country", "de-AT", key("de", "", "")},
		{"follows quality", "fr, pl;q=0.3, de;q=0.7", key("de", "", "")},
		{"nothing matches", "ja", key("pl", "", "")},
		{"empty header", "", key("pl", "", "")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, i18n.ParseAcceptLanguage(tt.header, available))
		})
	}

	t.Run("language match with country", func(t *testing.T) {
		t.Parallel()
		got := i18n.ParseAcceptLanguage("pt-PT", []i18n.LocaleKey{key("es", "", ""), key("pt", "BR", "")})
		require.Equal(t, key("pt", "BR", ""), got)
	})

	t.Run("no available list returns most preferred", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, key("fr", "CA", ""), i18n.ParseAcceptLanguage("fr-CA,fr;q=0.9", nil))
	})

	t.Run("explicit fallback", func(t *testing.T) {
		t.Parallel()
		de := key("de", "", "")
		require.Equal(t, de, i18n.MatchAcceptLanguage("", nil, de))
		require.Equal(t, de, i18n.MatchAcceptLanguage("ja", available, de))
		require.Equal(t, key("pl", "", ""), i18n.MatchAcceptLanguage("ja", available, key("fr", "", "")))
		require.Equal(t, key("en", "", ""), i18n.MatchAcceptLanguage("en-GB", available, de))
		require.Equal(t, key("fr", "CA", ""), i18n.MatchAcceptLanguage("fr-CA", nil, de))
	})

	t.Run("oversized header is truncated", func(t *testing.T) {
		t.Parallel()
		header := "de," + strings.Repeat("x", 5000)
		require.Equal(t, key("de", "", ""), i18n.ParseAcceptLanguage(header, available))
	})
}
