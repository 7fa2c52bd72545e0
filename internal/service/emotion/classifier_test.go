package emotion

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "filmpulse/internal/errors"
	"filmpulse/internal/model"
)

func classifierStub(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, nil)
}

func TestClient_Score(t *testing.T) {
	client := classifierStub(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/classify", r.URL.Path)

		var req classifyRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "I believe in America.", req.Text)

		json.NewEncoder(w).Encode(classifyResponse{Emotions: []labelScore{
			{Label: "joy", Score: 0.7},
			{Label: "neutral", Score: 0.2},
			{Label: "optimism", Score: 0.9}, // outside the canonical set
		}})
	})

	vector, err := client.Score(context.Background(), "I believe in America.")
	require.NoError(t, err)

	assert.Equal(t, 0.7, vector.Get("joy"))
	assert.Equal(t, 0.2, vector.Get("neutral"))
	// Labels the model did not return stay at zero
	assert.Equal(t, 0.0, vector.Get("anger"))
	// Non-canonical labels are dropped
	assert.Equal(t, 0.0, vector.Get("optimism"))
}

func TestClient_Score_TruncatesLongText(t *testing.T) {
	client := classifierStub(t, func(w http.ResponseWriter, r *http.Request) {
		var req classifyRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Len(t, strings.Fields(req.Text), MaxWords)
		json.NewEncoder(w).Encode(classifyResponse{})
	})

	longText := strings.Repeat("word ", MaxWords+50)
	_, err := client.Score(context.Background(), longText)
	require.NoError(t, err)
}

func TestClient_Score_RetriesTransientFailure(t *testing.T) {
	var calls atomic.Int32
	client := classifierStub(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "model busy", http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(classifyResponse{Emotions: []labelScore{{Label: "fear", Score: 0.9}}})
	})

	vector, err := client.Score(context.Background(), "a knock at the door")
	require.NoError(t, err)

	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, 0.9, vector.Get("fear"))
}

func TestClient_Score_ExhaustsRetries(t *testing.T) {
	var calls atomic.Int32
	client := classifierStub(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "model crashed", http.StatusInternalServerError)
	})

	_, err := client.Score(context.Background(), "doomed request")
	require.Error(t, err)

	// Immediate attempt plus two retries
	assert.Equal(t, int32(3), calls.Load())
	assert.True(t, apperrors.HasCode(err, apperrors.CodeExternal))
	assert.Contains(t, err.Error(), "after retries")
}

func TestClient_Warmup(t *testing.T) {
	client := classifierStub(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(classifyResponse{})
	})
	assert.NoError(t, client.Warmup(context.Background()))
}

func TestClient_Warmup_Unreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", nil)

	err := client.Warmup(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeExternal))
}

func TestEmotionVector_SetGet(t *testing.T) {
	var v model.EmotionVector
	v.Set("sadness", 0.4)
	v.Set("nonsense", 0.9)

	assert.Equal(t, 0.4, v.Get("sadness"))
	assert.Equal(t, 0.0, v.Get("nonsense"))
	assert.Equal(t, -1, model.LabelIndex("nonsense"))
}
