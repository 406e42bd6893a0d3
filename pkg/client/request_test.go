package client_test

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/karvel/templnet/pkg/client"
	clienterrors "github.com/karvel/templnet/pkg/client/errors"
	"github.com/karvel/templnet/pkg/uritemplate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestBuild(t *testing.T) {
	t.Parallel()

	t.Run("Verbatim URL", func(t *testing.T) {
		t.Parallel()

		req, err := client.NewClient().NewRequest().
			Method(http.MethodGet).
			URL("https://example.com/things").
			Build(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/things", req.URL.String())
	})

	t.Run("No URL or template", func(t *testing.T) {
		t.Parallel()

		_, err := client.NewClient().NewRequest().
			Method(http.MethodGet).
			Build(context.Background())

		require.Error(t, err)
		assert.ErrorIs(t, err, clienterrors.ErrNoTarget)
	})

	t.Run("Template with base URL", func(t *testing.T) {
		t.Parallel()

		c := client.NewClient(client.WithBaseURL("https://api.example.com"))

		req, err := c.NewRequest().
			Method(http.MethodGet).
			URLTemplate("/v1/users/{id}").
			Param("id", "7").
			Build(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "https://api.example.com/v1/users/7", req.URL.String())
	})

	t.Run("Template without base URL builds a relative target", func(t *testing.T) {
		t.Parallel()

		req, err := client.NewClient().NewRequest().
			Method(http.MethodGet).
			URLTemplate("/v1/users/{id}").
			Param("id", "7").
			Build(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "/v1/users/7", req.URL.String())
	})

	t.Run("Template without parameters still expands", func(t *testing.T) {
		t.Parallel()

		req, err := client.NewClient().NewRequest().
			Method(http.MethodGet).
			URLTemplate("/v1/users/{id}").
			Build(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "/v1/users", req.URL.String())
	})

	t.Run("Template syntax error surfaces unchanged", func(t *testing.T) {
		t.Parallel()

		_, err := client.NewClient().NewRequest().
			Method(http.MethodGet).
			URLTemplate("/v1/users/{id").
			Build(context.Background())

		require.Error(t, err)
		assert.ErrorIs(t, err, uritemplate.ErrTemplateSyntax)
	})

	t.Run("Builder query merges over template query", func(t *testing.T) {
		t.Parallel()

		req, err := client.NewClient().NewRequest().
			Method(http.MethodGet).
			URLTemplate("/search?q={q}&page={page}").
			Params(map[string]string{"q": "cat", "page": "1"}).
			Query("page", "2").
			Build(context.Background())

		require.NoError(t, err)
		values := req.URL.Query()
		assert.Equal(t, "cat", values.Get("q"))
		assert.Equal(t, "2", values.Get("page"))
	})

	t.Run("Template query encoding survives builder merge", func(t *testing.T) {
		t.Parallel()

		req, err := client.NewClient().NewRequest().
			Method(http.MethodGet).
			URLTemplate("/search?q={q}&lang=en").
			Param("q", "a b").
			Query("page", "2").
			Build(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "q=a%20b&lang=en&page=2", req.URL.RawQuery)
	})

	t.Run("Headers and body are applied", func(t *testing.T) {
		t.Parallel()

		req, err := client.NewClient().NewRequest().
			Method(http.MethodPost).
			URL("https://example.com/things").
			Header("Content-Type", "application/json").
			Body([]byte(`{"name":"widget"}`)).
			Build(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "application/json", req.Header.Get("Content-Type"))

		body, err := io.ReadAll(req.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"widget"}`, string(body))
	})

	t.Run("URL clears template and vice versa", func(t *testing.T) {
		t.Parallel()

		req, err := client.NewClient().NewRequest().
			URLTemplate("/v1/users/{id}").
			Param("id", "7").
			URL("https://example.com/override").
			Build(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/override", req.URL.String())
	})
}

func TestRequestImmutability(t *testing.T) {
	t.Parallel()

	c := client.NewClient(client.WithBaseURL("https://api.example.com"))

	parent := c.NewRequest().
		Method(http.MethodGet).
		URLTemplate("/v1/users/{id}").
		Param("id", "7").
		Header("Accept", "application/json")

	// Fork the parent twice with conflicting configuration.
	byName := parent.Param("id", "8").Query("expand", "profile")
	byHeader := parent.Header("Accept", "application/xml")

	parentReq, err := parent.Build(context.Background())
	require.NoError(t, err)
	byNameReq, err := byName.Build(context.Background())
	require.NoError(t, err)
	byHeaderReq, err := byHeader.Build(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com/v1/users/7", parentReq.URL.String())
	assert.Equal(t, "application/json", parentReq.Header.Get("Accept"))

	assert.Equal(t, "/v1/users/8", byNameReq.URL.Path)
	assert.Equal(t, "profile", byNameReq.URL.Query().Get("expand"))

	assert.Equal(t, "/v1/users/7", byHeaderReq.URL.Path)
	assert.Equal(t, "application/xml", byHeaderReq.Header.Get("Accept"))
}
