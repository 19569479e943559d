package client

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PrathamBhavsar2112/LogoPulse/pkg/logopulse"
)

func TestClientUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/upload/1718-abc.png", r.URL.Path)
		assert.Equal(t, "image/png", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"imageId":"job-1","key":"1718-abc.png"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)

	result, err := c.Upload(context.Background(), "1718-abc.png", "image/png", bytes.NewReader([]byte{0x89}))
	require.NoError(t, err)
	assert.Equal(t, "job-1", result.ImageID)
	assert.Equal(t, "1718-abc.png", result.Key)
}

func TestClientUploadRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"bad key"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)

	_, err := c.Upload(context.Background(), "k.png", "image/png", bytes.NewReader(nil))

	var upstreamErr *logopulse.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, http.StatusBadRequest, upstreamErr.StatusCode)
	assert.Contains(t, string(upstreamErr.Body), "bad key")
}

func TestClientUploadMalformedIdentifier(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown sentinel", `{"imageId":"unknown","key":"k.png"}`},
		{"missing identifier", `{"key":"k.png"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusCreated)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient(srv.URL)

			_, err := c.Upload(context.Background(), "k.png", "image/png", bytes.NewReader(nil))
			assert.ErrorIs(t, err, logopulse.ErrMalformedUploadResult)
		})
	}
}

func TestClientUploadTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	c := NewClient(srv.URL)

	_, err := c.Upload(context.Background(), "k.png", "image/png", bytes.NewReader(nil))

	var transportErr *logopulse.TransportError
	assert.ErrorAs(t, err, &transportErr)
}

func TestClientGetResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/results/job-1", r.URL.Path)
		w.Write([]byte(`{"Name":"Logo","Confidence":95.5,"BoundingBox":{"Left":0.1,"Top":0.2,"Width":0.3,"Height":0.4}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)

	label, err := c.GetResult(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Equal(t, "Logo", label.Name)
	assert.InDelta(t, 95.5, label.Confidence, 0.001)
	require.NotNil(t, label.BoundingBox)
	assert.InDelta(t, 0.1, label.BoundingBox.Left, 0.001)
}

func TestClientGetResultNotReady(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"result not found"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)

	_, err := c.GetResult(context.Background(), "job-1")
	assert.ErrorIs(t, err, logopulse.ErrResultNotReady)
}

func TestClientGetResultHardError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"boom"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)

	_, err := c.GetResult(context.Background(), "job-1")

	var upstreamErr *logopulse.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.False(t, errors.Is(err, logopulse.ErrResultNotReady))
}

func TestClientListHistory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/history", r.URL.Path)
		w.Write([]byte(`[{"ImageKey":"x.png","Label":null,"ImageUrl":"https://bucket.s3.amazonaws.com/x.png"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)

	records, err := c.ListHistory(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "x.png", records[0].ImageKey)
	assert.Nil(t, records[0].Label)
	assert.Equal(t, "https://bucket.s3.amazonaws.com/x.png", records[0].ImageUrl)
}
