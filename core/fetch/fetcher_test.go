package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gaurav-prasanna/flyerpipe/core"
	"github.com/stretchr/testify/require"
)

func TestFetchOK(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html><body>Prospekte für Kaufland</body></html>"))
	}))
	defer srv.Close()

	f := New(Options{UserAgent: "test-agent"})
	result, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, result.StatusCode)
	require.Contains(t, result.HTML, "Prospekte für Kaufland")
	require.Equal(t, "test-agent", gotUA)
}

func TestFetchStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := New(Options{}).Fetch(context.Background(), srv.URL)
	require.Error(t, err)

	var statusErr *core.StatusError
	require.True(t, errors.As(err, &statusErr))
	require.Equal(t, http.StatusNotFound, statusErr.Code)
	require.False(t, errors.Is(err, core.ErrEmptyPage))
}

func TestFetchEmptyPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("  \n"))
	}))
	defer srv.Close()

	_, err := New(Options{}).Fetch(context.Background(), srv.URL)
	require.ErrorIs(t, err, core.ErrEmptyPage)
}

func TestFetchTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	_, err := New(Options{Timeout: 50 * time.Millisecond}).Fetch(context.Background(), srv.URL)
	require.Error(t, err)

	var statusErr *core.StatusError
	require.False(t, errors.As(err, &statusErr))
	require.False(t, errors.Is(err, core.ErrEmptyPage))
}
