package emotion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	apperrors "filmpulse/internal/errors"
	"filmpulse/internal/model"
)

// MaxWords is the word budget submitted to the classifier; longer dialogue
// lines are truncated before scoring.
const MaxWords = 400

// classifierMaxRetries is the number of retries after the immediate first
// attempt, so three attempts in total: now, +1s, +2s.
const classifierMaxRetries = 2

// Scorer scores one dialogue text against the canonical label set.
// Constructed once per batch run and handed to every item.
type Scorer interface {
	// Warmup verifies the scoring service is reachable and its model is
	// loaded. A warmup failure is fatal for the whole run.
	Warmup(ctx context.Context) error

	// Score classifies one dialogue text. Transient failures are retried
	// with exponential backoff; exhaustion surfaces as EXTERNAL_ERROR.
	Score(ctx context.Context, text string) (model.EmotionVector, error)
}

// --- HTTP classifier collaborator (/classify) ---

type classifyRequest struct {
	Text string `json:"text"`
}

type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type classifyResponse struct {
	Emotions []labelScore `json:"emotions"`
}

// Client is an HTTP Scorer talking to the external classification service
type Client struct {
	baseURL string
	httpc   *http.Client
	log     *logrus.Logger
}

// NewClient creates a classifier client for the given base URL
func NewClient(baseURL string, log *logrus.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 30 * time.Second},
		log:     log,
	}
}

// Warmup scores a short probe text once, forcing the remote model load
func (c *Client) Warmup(ctx context.Context) error {
	if _, err := c.classify(ctx, "warmup"); err != nil {
		return apperrors.Wrap(err, apperrors.CodeExternal, "emotion classifier unavailable")
	}
	return nil
}

// Score classifies one dialogue text with bounded retry
func (c *Client) Score(ctx context.Context, text string) (model.EmotionVector, error) {
	text = truncateWords(text, MaxWords)

	var vector model.EmotionVector
	operation := func() error {
		v, err := c.classify(ctx, text)
		if err != nil {
			return err
		}
		vector = v
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Second
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0

	notify := func(err error, wait time.Duration) {
		if c.log != nil {
			c.log.WithError(err).WithField("wait", wait).Warn("classifier call failed, retrying")
		}
	}

	err := backoff.RetryNotify(operation, backoff.WithContext(backoff.WithMaxRetries(b, classifierMaxRetries), ctx), notify)
	if err != nil {
		return model.EmotionVector{}, apperrors.Wrap(err, apperrors.CodeExternal, "emotion classification failed after retries")
	}

	return vector, nil
}

func (c *Client) classify(ctx context.Context, text string) (model.EmotionVector, error) {
	var vector model.EmotionVector

	body, _ := json.Marshal(classifyRequest{Text: text})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/classify", bytes.NewReader(body))
	if err != nil {
		return vector, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return vector, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return vector, fmt.Errorf("classifier %s: %s", resp.Status, string(respBody))
	}

	var out classifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return vector, fmt.Errorf("classifier decode: %w", err)
	}

	// Labels the model did not return stay 0; labels outside the canonical
	// set are dropped
	for _, e := range out.Emotions {
		vector.Set(e.Label, e.Score)
	}

	return vector, nil
}

// truncateWords caps text at the given word count
func truncateWords(text string, maxWords int) string {
	words := strings.Fields(text)
	if len(words) <= maxWords {
		return text
	}
	return strings.Join(words[:maxWords], " ")
}
