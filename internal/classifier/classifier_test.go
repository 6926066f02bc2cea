package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/config"
	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *HuggingFace {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	hf, err := NewHuggingFace(config.ClassifierConfig{
		BaseURL:        srv.URL,
		Model:          "sst2",
		APIToken:       "secret",
		TimeoutSeconds: 5,
	})
	require.NoError(t, err)
	return hf
}

func TestHuggingFaceClassifyNestedResponse(t *testing.T) {
	hf := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/sst2", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var req inferenceRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "great product", req.Inputs)

		_, _ = w.Write([]byte(`[[{"label":"NEGATIVE","score":0.02},{"label":"POSITIVE","score":0.98}]]`))
	})

	got, err := hf.Classify(context.Background(), "great product")
	require.NoError(t, err)
	assert.Equal(t, domain.SentimentPositive, got.Label)
	assert.InDelta(t, 0.98, got.Confidence, 1e-9)
}

func TestHuggingFaceClassifyFlatResponse(t *testing.T) {
	hf := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"label":"LABEL_0","score":0.91},{"label":"LABEL_1","score":0.09}]`))
	})

	got, err := hf.Classify(context.Background(), "broke after a day")
	require.NoError(t, err)
	assert.Equal(t, domain.SentimentNegative, got.Label)
	assert.InDelta(t, 0.91, got.Confidence, 1e-9)
}

func TestHuggingFaceClassifyFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "model loading", status: http.StatusServiceUnavailable, body: `{"error":"loading"}`},
		{name: "malformed body", status: http.StatusOK, body: `{"label":"POSITIVE"}`},
		{name: "empty list", status: http.StatusOK, body: `[]`},
		{name: "unknown label", status: http.StatusOK, body: `[{"label":"NEUTRAL","score":0.7}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hf := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := hf.Classify(context.Background(), "text")
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrClassifierUnavailable))
		})
	}
}

func TestNewHuggingFaceValidatesConfig(t *testing.T) {
	_, err := NewHuggingFace(config.ClassifierConfig{Model: "m"})
	assert.Error(t, err)

	_, err = NewHuggingFace(config.ClassifierConfig{BaseURL: "http://localhost"})
	assert.Error(t, err)
}

func TestLazyBuildsOnce(t *testing.T) {
	var builds int32
	lazy := NewLazy(func() (Classifier, error) {
		atomic.AddInt32(&builds, 1)
		return Func(func(ctx context.Context, text string) (domain.Classification, error) {
			return domain.Classification{Label: domain.SentimentPositive, Confidence: 0.9}, nil
		}), nil
	})

	for i := 0; i < 3; i++ {
		got, err := lazy.Classify(context.Background(), "ok")
		require.NoError(t, err)
		assert.Equal(t, domain.SentimentPositive, got.Label)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&builds))
}

func TestLazyReportsBuildFailure(t *testing.T) {
	lazy := NewLazy(func() (Classifier, error) {
		return nil, errors.New("no token")
	})

	_, err := lazy.Classify(context.Background(), "ok")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrClassifierUnavailable))
	assert.Contains(t, err.Error(), "no token")
}

func TestLazyCloseBeforeUse(t *testing.T) {
	built := false
	lazy := NewLazy(func() (Classifier, error) {
		built = true
		return nil, nil
	})

	require.NoError(t, lazy.Close())
	_, err := lazy.Classify(context.Background(), "ok")
	assert.Error(t, err)
	assert.False(t, built)
}
