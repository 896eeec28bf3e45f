package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	method      string
	path        string
	contentType string
}

func fakeS3(t *testing.T) (*httptest.Server, func() []recordedRequest) {
	t.Helper()

	var (
		mu   sync.Mutex
		reqs []recordedRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		mu.Lock()
		reqs = append(reqs, recordedRequest{
			method:      r.Method,
			path:        r.URL.Path,
			contentType: r.Header.Get("Content-Type"),
		})
		mu.Unlock()
		w.Header().Set("ETag", `"abc"`)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	return srv, func() []recordedRequest {
		mu.Lock()
		defer mu.Unlock()
		return append([]recordedRequest(nil), reqs...)
	}
}

func TestS3StorePutUsesPathStyle(t *testing.T) {
	srv, requests := fakeS3(t)

	store, err := NewS3Store(S3Config{
		Endpoint:  srv.URL,
		Bucket:    "medifind",
		AccessKey: "key",
		SecretKey: "secret",
	})
	require.NoError(t, err)

	url, err := store.Put(context.Background(), "medicines/1/a.webp", "image/webp", []byte("RIFF"))
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/medifind/medicines/1/a.webp", url)

	got := requests()
	require.Len(t, got, 1)
	assert.Equal(t, http.MethodPut, got[0].method)
	assert.Equal(t, "/medifind/medicines/1/a.webp", got[0].path)
	assert.Equal(t, "image/webp", got[0].contentType)
}

func TestS3StorePutReportsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	t.Cleanup(srv.Close)

	store, err := NewS3Store(S3Config{Endpoint: srv.URL, Bucket: "medifind", AccessKey: "k", SecretKey: "s"})
	require.NoError(t, err)

	_, err = store.Put(context.Background(), "medicines/1/a.webp", "image/webp", []byte("x"))
	assert.Error(t, err)
}

func TestS3StoreURL(t *testing.T) {
	withPublic := &S3Store{cfg: S3Config{Bucket: "b", PublicURL: "https://cdn.example.com/"}}
	assert.Equal(t, "https://cdn.example.com/medicines/2/x.webp", withPublic.URL("/medicines/2/x.webp"))

	aws := &S3Store{cfg: S3Config{Bucket: "b", Region: "sa-east-1"}}
	assert.Equal(t, "https://b.s3.sa-east-1.amazonaws.com/k", aws.URL("k"))
}

func TestNewS3StoreRequiresBucket(t *testing.T) {
	_, err := NewS3Store(S3Config{})
	assert.Error(t, err)
}
