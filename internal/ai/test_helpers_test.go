package ai

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/triagelab/logtriage/internal/model"
)

// verifyOpenAIChatRequest validates an OpenAI-style chat completion request.
// It decodes the request body and verifies the structure is well-formed.
func verifyOpenAIChatRequest(t *testing.T, r *http.Request, w http.ResponseWriter) *openAIChatRequest {
	t.Helper()

	var req openAIChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		t.Errorf("failed to decode request: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return nil
	}

	if req.Model == "" {
		t.Error("model is empty")
	}
	if len(req.Messages) != 2 {
		t.Errorf("expected 2 messages, got %d", len(req.Messages))
	}
	if req.Messages[0].Role != "system" {
		t.Errorf("first message should be system, got %s", req.Messages[0].Role)
	}
	if req.Messages[1].Role != "user" {
		t.Errorf("second message should be user, got %s", req.Messages[1].Role)
	}

	return &req
}

// completionResponse builds a well-formed chat completion reply carrying the
// given assistant content.
func completionResponse(content string) openAIChatResponse {
	var resp openAIChatResponse
	resp.ID = "chatcmpl-123"
	resp.Object = "chat.completion"
	resp.Created = 1705000000
	resp.Model = "nvidia/llama-3.1-nemotron-70b-instruct"
	resp.Choices = append(resp.Choices, struct {
		Index        int           `json:"index"`
		Message      openAIMessage `json:"message"`
		FinishReason string        `json:"finish_reason"`
	}{
		Index:        0,
		Message:      openAIMessage{Role: "assistant", Content: content},
		FinishReason: "stop",
	})
	resp.Usage.PromptTokens = 1500
	resp.Usage.CompletionTokens = 250
	resp.Usage.TotalTokens = 1750
	return resp
}

// sampleSummary is the fixture most analyzer tests start from: a burst of
// connection failures followed by recovery.
func sampleSummary() model.PatternSummary {
	return model.PatternSummary{
		TotalEntries: 8,
		ErrorCount:   6,
		UniqueErrors: 4,
		LevelCounts:  map[string]int{"ERROR": 6, "INFO": 2},
		TopErrors: []model.ErrorPattern{
			{Message: "Connection refused to database at db.example.com:N", Count: 2},
			{Message: "Failed to fetch user data from database", Count: 2},
			{Message: "API request to /api/users failed with status N", Count: 1},
			{Message: "API request to /api/products failed with status N", Count: 1},
		},
		Timeline: []model.TimelineEvent{
			{Time: "2024-01-15 14:23:15", Message: "Connection refused to database at db.example.com:5432"},
		},
		Cascades: []model.Cascade{},
	}
}

// sampleErrorEntries returns raw error entries matching sampleSummary.
func sampleErrorEntries() []model.LogEntry {
	return []model.LogEntry{
		{Timestamp: "2024-01-15 14:23:15", Level: "ERROR", Message: "Connection refused to database at db.example.com:5432"},
		{Timestamp: "2024-01-15 14:23:16", Level: "ERROR", Message: "Failed to fetch user data from database"},
		{Timestamp: "2024-01-15 14:23:17", Level: "ERROR", Message: "API request to /api/users failed with status 500"},
	}
}
