package devto

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newListingServer(t *testing.T, status int, body string) (*httptest.Server, *http.Request) {
	t.Helper()
	var seen http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = *r
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &seen
}

func TestFetchArticles_Success(t *testing.T) {
	srv, seen := newListingServer(t, http.StatusOK, `[
		{"title": "First", "description": "Tom &amp; Jerry <b>bold</b>", "tag_list": ["node"]},
		{"title": "Second", "tag_list": []},
		{"title": "Third", "cover_image": "https://img/c.png"}
	]`)

	c := NewClient(WithUserAgent("tabfeed-test"))
	articles, err := c.FetchArticles(context.Background(), srv.URL+"/api/articles?tag=node")
	require.NoError(t, err)
	require.Len(t, articles, 3)

	assert.Equal(t, "First", articles[0].Title)
	assert.Equal(t, "Second", articles[1].Title)
	assert.Equal(t, "Third", articles[2].Title)
	assert.Equal(t, "Tom & Jerry bold", articles[0].Description)
	assert.True(t, articles[2].HasCover())

	assert.Equal(t, "tabfeed-test", seen.Header.Get("User-Agent"))
	assert.Equal(t, "node", seen.URL.Query().Get("tag"))
	assert.Empty(t, seen.Header.Get("Authorization"))
}

func TestFetchArticles_StatusErrors(t *testing.T) {
	for _, code := range []int{http.StatusNotFound, http.StatusTooManyRequests, http.StatusInternalServerError} {
		srv, _ := newListingServer(t, code, `{"error":"nope"}`)

		_, err := NewClient().FetchArticles(context.Background(), srv.URL)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrLoadContent)

		var se *StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, code, se.Code)
	}
}

func TestFetchArticles_DecodeError(t *testing.T) {
	bodies := map[string]string{
		"html page":        `<html>maintenance</html>`,
		"trailing html":    `[{"title":"a"}] <html>oops</html>`,
		"second value":     `[{"title":"a"}] []`,
		"truncated array":  `[{"title":"a"},`,
		"object not array": `{"title":"a"}`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			srv, _ := newListingServer(t, http.StatusOK, body)

			articles, err := NewClient().FetchArticles(context.Background(), srv.URL)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrLoadContent)
			assert.Nil(t, articles)
		})
	}
}

func TestFetchArticles_TrailingWhitespaceAccepted(t *testing.T) {
	srv, _ := newListingServer(t, http.StatusOK, "[{\"title\":\"a\"}]\n\n")

	articles, err := NewClient().FetchArticles(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "a", articles[0].Title)
}

func TestFetchArticles_TransportError(t *testing.T) {
	srv, _ := newListingServer(t, http.StatusOK, `[]`)
	url := srv.URL
	srv.Close()

	_, err := NewClient().FetchArticles(context.Background(), url)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLoadContent)
}

func TestFetchArticles_ContextCanceled(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := NewClient().FetchArticles(ctx, srv.URL)
		done <- err
	}()
	cancel()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled))
		assert.ErrorIs(t, err, ErrLoadContent)
	case <-time.After(5 * time.Second):
		t.Fatal("fetch did not return after cancel")
	}
}

func TestFetchArticles_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	_, err := NewClient(WithTimeout(50*time.Millisecond)).FetchArticles(context.Background(), srv.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLoadContent)
}
