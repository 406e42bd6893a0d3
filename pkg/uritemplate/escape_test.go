package uritemplate_test

import (
	"net/url"
	"testing"

	"github.com/karvel/templnet/pkg/uritemplate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathEscaping(t *testing.T) {
	t.Parallel()

	tpl := uritemplate.MustParse("/files/{name}")

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"Plain value passes through", "report", "/files/report"},
		{"Space is percent-encoded", "annual report", "/files/annual%20report"},
		{"Slash keeps its structure", "2024/q3", "/files/2024/q3"},
		{"Question mark cannot open a query", "what?", "/files/what%3F"},
		{"Hash cannot open a fragment", "a#b", "/files/a%23b"},
		{"Percent is encoded", "100%", "/files/100%25"},
		{"Sub-delims pass through", "a,b;c=d", "/files/a,b;c=d"},
		{"Non-ASCII is UTF-8 percent-encoded", "café", "/files/caf%C3%A9"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			u, err := tpl.Populate(nil, map[string]string{"name": tt.value})
			require.NoError(t, err)
			assert.Equal(t, tt.want, u.String())
		})
	}
}

func TestQueryEscaping(t *testing.T) {
	t.Parallel()

	tpl := uritemplate.MustParse("/search?q={q}")

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"Plain value passes through", "cat", "/search?q=cat"},
		{"Space is percent-encoded", "a b", "/search?q=a%20b"},
		{"Ampersand cannot split pairs", "a&b=c", "/search?q=a%26b%3Dc"},
		{"Slash is encoded in query values", "a/b", "/search?q=a%2Fb"},
		{"Unreserved marks pass through", "a-b.c_d~e", "/search?q=a-b.c_d~e"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			u, err := tpl.Populate(nil, map[string]string{"q": tt.value})
			require.NoError(t, err)
			assert.Equal(t, tt.want, u.String())
		})
	}
}

func TestLiteralSegmentsAreEscaped(t *testing.T) {
	t.Parallel()

	tpl, err := uritemplate.Parse("/my files/{id}")
	require.NoError(t, err)

	u, err := tpl.Populate(nil, map[string]string{"id": "1"})
	require.NoError(t, err)
	assert.Equal(t, "/my%20files/1", u.String())
}

// The assembled string must round-trip through the URL parser without the
// escaping changing meaning.
func TestRoundTrip(t *testing.T) {
	t.Parallel()

	base, err := url.Parse("https://api.example.com")
	require.NoError(t, err)

	tpl := uritemplate.MustParse("/v1/docs/{name}?q={q}")

	u, err := tpl.Populate(base, map[string]string{
		"name": "annual report",
		"q":    "cost & budget",
	})
	require.NoError(t, err)

	reparsed, err := url.Parse(u.String())
	require.NoError(t, err)
	assert.Equal(t, "https", reparsed.Scheme)
	assert.Equal(t, "api.example.com", reparsed.Host)
	assert.Equal(t, "/v1/docs/annual report", reparsed.Path)
	assert.Equal(t, "cost & budget", reparsed.Query().Get("q"))
}
