package face

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"time"
)

// Result is the outcome of a face comparison. Confidence is in [0, 1].
type Result struct {
	IsMatch    bool
	Confidence float64
}

// Verifier compares a freshly captured selfie against a stored reference
// image. The production implementation talks to the external vision
// service; only the decision contract matters to callers.
type Verifier interface {
	Verify(ctx context.Context, captured []byte, reference []byte) (Result, error)
}

// HTTPVerifier calls the external face verification service. The service
// receives both images base64-encoded and responds with a confidence
// score; the match decision is made here against the configured
// threshold so every backend is gated consistently.
type HTTPVerifier struct {
	baseURL   string
	threshold float64
	client    *http.Client
}

func NewHTTPVerifier(baseURL string, threshold float64) *HTTPVerifier {
	return &HTTPVerifier{
		baseURL:   baseURL,
		threshold: threshold,
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

type verifyRequest struct {
	Image     string `json:"image"`
	Reference string `json:"reference"`
}

type verifyResponse struct {
	Confidence float64 `json:"confidence"`
}

func (v *HTTPVerifier) Verify(ctx context.Context, captured []byte, reference []byte) (Result, error) {
	payload, err := json.Marshal(verifyRequest{
		Image:     base64.StdEncoding.EncodeToString(captured),
		Reference: base64.StdEncoding.EncodeToString(reference),
	})
	if err != nil {
		return Result{}, fmt.Errorf("failed to encode verify request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.baseURL+"/verify", bytes.NewReader(payload))
	if err != nil {
		return Result{}, fmt.Errorf("failed to build verify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("face service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("face service returned status %d", resp.StatusCode)
	}

	var body verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Result{}, fmt.Errorf("failed to decode face service response: %w", err)
	}

	return Result{
		IsMatch:    body.Confidence >= v.threshold,
		Confidence: body.Confidence,
	}, nil
}

// MockVerifier returns a random confidence score. It exists for
// development environments without the vision service and must never be
// wired in production.
type MockVerifier struct {
	threshold float64
	rng       *rand.Rand
}

func NewMockVerifier(threshold float64) *MockVerifier {
	return &MockVerifier{
		threshold: threshold,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (v *MockVerifier) Verify(_ context.Context, _ []byte, _ []byte) (Result, error) {
	confidence := v.rng.Float64()
	return Result{
		IsMatch:    confidence >= v.threshold,
		Confidence: confidence,
	}, nil
}

// StaticVerifier always returns the configured result. Used by tests.
type StaticVerifier struct {
	Result Result
	Err    error
}

func (v *StaticVerifier) Verify(_ context.Context, _ []byte, _ []byte) (Result, error) {
	return v.Result, v.Err
}
