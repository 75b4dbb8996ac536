package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"emoshown/config"
	"emoshown/internal/analytics"

	logger "github.com/Bparsons0904/goLogger"
)

const sentimentAnalyzePath = "/analyze"

// SentimentAnalyzer scores free text. The journal controller depends on this
// interface so tests can swap the remote service out.
type SentimentAnalyzer interface {
	Analyze(ctx context.Context, text string, emotion analytics.Emotion) (analytics.Sentiment, error)
}

// SentimentService calls the remote sentiment scoring service. Every failure
// wraps analytics.ErrUpstreamUnavailable and nothing is retried.
type SentimentService struct {
	baseURL    string
	httpClient *http.Client
	log        logger.Logger
}

type sentimentRequest struct {
	Text    string `json:"text"`
	Emotion string `json:"emotion"`
}

func NewSentimentService(cfg config.Config) *SentimentService {
	return &SentimentService{
		baseURL: strings.TrimSuffix(cfg.SentimentServiceURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.SentimentTimeout(),
		},
		log: logger.New("SentimentService"),
	}
}

func (s *SentimentService) Analyze(
	ctx context.Context,
	text string,
	emotion analytics.Emotion,
) (analytics.Sentiment, error) {
	log := s.log.TraceFromContext(ctx).Function("Analyze")

	body, err := json.Marshal(sentimentRequest{Text: text, Emotion: string(emotion)})
	if err != nil {
		return analytics.Sentiment{}, log.Err("failed to encode sentiment request", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		s.baseURL+sentimentAnalyzePath,
		bytes.NewReader(body),
	)
	if err != nil {
		return analytics.Sentiment{}, log.Err("failed to build sentiment request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return analytics.Sentiment{}, log.Err(
			"sentiment service request failed",
			fmt.Errorf("%w: %w", analytics.ErrUpstreamUnavailable, err),
		)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return analytics.Sentiment{}, log.Err(
			"sentiment service returned an error",
			fmt.Errorf("%w: status %d", analytics.ErrUpstreamUnavailable, resp.StatusCode),
			"body",
			string(snippet),
		)
	}

	var sentiment analytics.Sentiment
	if err := json.NewDecoder(resp.Body).Decode(&sentiment); err != nil {
		return analytics.Sentiment{}, log.Err(
			"failed to decode sentiment response",
			fmt.Errorf("%w: %w", analytics.ErrUpstreamUnavailable, err),
		)
	}

	return sentiment.Clamped(), nil
}
