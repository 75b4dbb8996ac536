package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"emoshown/config"
	"emoshown/internal/analytics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSentimentService(url string, timeoutSeconds int) *SentimentService {
	return NewSentimentService(config.Config{
		SentimentServiceURL:     url,
		SentimentTimeoutSeconds: timeoutSeconds,
	})
}

func TestSentimentService_Analyze(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/analyze", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Had a lovely walk today", body["text"])
		assert.Equal(t, "happy", body["emotion"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"compound":0.6369,"neg":0,"neu":0.5,"pos":0.5}`))
	}))
	defer server.Close()

	service := newTestSentimentService(server.URL+"/", 5)

	sentiment, err := service.Analyze(context.Background(), "Had a lovely walk today", analytics.EmotionHappy)
	require.NoError(t, err)

	assert.Equal(t, analytics.Sentiment{Compound: 0.6369, Neg: 0, Neu: 0.5, Pos: 0.5}, sentiment)
}

func TestSentimentService_ClampsCompound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"compound":-1.4}`))
	}))
	defer server.Close()

	sentiment, err := newTestSentimentService(server.URL, 5).
		Analyze(context.Background(), "awful", analytics.EmotionSad)
	require.NoError(t, err)
	assert.Equal(t, -1.0, sentiment.Compound)
}

func TestSentimentService_FailuresAreUpstreamUnavailable(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "Server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"error":"model not loaded"}`))
			},
		},
		{
			name: "Malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`not json`))
			},
		},
		{
			name: "Timeout",
			handler: func(w http.ResponseWriter, r *http.Request) {
				time.Sleep(1500 * time.Millisecond)
				_, _ = w.Write([]byte(`{"compound":0.1}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				tt.handler(w, r)
			}))
			defer server.Close()

			_, err := newTestSentimentService(server.URL, 1).
				Analyze(context.Background(), "text", analytics.EmotionCalm)

			assert.ErrorIs(t, err, analytics.ErrUpstreamUnavailable)
			assert.Equal(t, int32(1), calls.Load())
		})
	}
}

func TestSentimentService_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := newTestSentimentService(url, 1).
		Analyze(context.Background(), "text", analytics.EmotionCalm)
	assert.ErrorIs(t, err, analytics.ErrUpstreamUnavailable)
}
