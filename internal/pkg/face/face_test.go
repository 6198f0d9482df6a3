package face

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFaceServer(t *testing.T, confidence float64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/verify", r.URL.Path)

		var req verifyRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotEmpty(t, req.Image)
		require.NotEmpty(t, req.Reference)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(verifyResponse{Confidence: confidence})
	}))
}

func TestHTTPVerifier_MatchAboveThreshold(t *testing.T) {
	srv := newFaceServer(t, 0.92)
	defer srv.Close()

	verifier := NewHTTPVerifier(srv.URL, 0.8)
	res, err := verifier.Verify(context.Background(), []byte("captured"), []byte("reference"))

	require.NoError(t, err)
	assert.True(t, res.IsMatch)
	assert.Equal(t, 0.92, res.Confidence)
}

func TestHTTPVerifier_NoMatchBelowThreshold(t *testing.T) {
	srv := newFaceServer(t, 0.41)
	defer srv.Close()

	verifier := NewHTTPVerifier(srv.URL, 0.8)
	res, err := verifier.Verify(context.Background(), []byte("captured"), []byte("reference"))

	require.NoError(t, err)
	assert.False(t, res.IsMatch)
	assert.Equal(t, 0.41, res.Confidence)
}

func TestHTTPVerifier_ThresholdIsInclusive(t *testing.T) {
	srv := newFaceServer(t, 0.8)
	defer srv.Close()

	verifier := NewHTTPVerifier(srv.URL, 0.8)
	res, err := verifier.Verify(context.Background(), []byte("captured"), []byte("reference"))

	require.NoError(t, err)
	assert.True(t, res.IsMatch)
}

func TestHTTPVerifier_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	verifier := NewHTTPVerifier(srv.URL, 0.8)
	_, err := verifier.Verify(context.Background(), []byte("captured"), []byte("reference"))

	assert.Error(t, err)
}

func TestMockVerifier_ConfidenceInRange(t *testing.T) {
	verifier := NewMockVerifier(0.8)

	for i := 0; i < 50; i++ {
		res, err := verifier.Verify(context.Background(), nil, nil)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.Confidence, 0.0)
		assert.Less(t, res.Confidence, 1.0)
		assert.Equal(t, res.Confidence >= 0.8, res.IsMatch)
	}
}
