package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/triagelab/logtriage/internal/model"
)

// stubProvider records the prompts it was handed and returns canned results.
type stubProvider struct {
	text  string
	stats *Stats
	err   error

	gotSystem string
	gotUser   string
}

func (s *stubProvider) Complete(_ context.Context, systemPrompt, userPrompt string) (string, *Stats, error) {
	s.gotSystem = systemPrompt
	s.gotUser = userPrompt
	return s.text, s.stats, s.err
}

func (s *stubProvider) GetProviderName() string { return "stub" }

func TestAnalyze_NoProvider(t *testing.T) {
	analyzer := NewAnalyzer(nil, nil)
	summary := sampleSummary()

	text, stats := analyzer.Analyze(context.Background(), summary, sampleErrorEntries())

	if text != FallbackAnalysis(summary) {
		t.Errorf("Analyze() without provider should return the rule-based text:\n%s", text)
	}
	if stats != nil {
		t.Errorf("stats should be nil for rule-based analysis, got %+v", stats)
	}
}

func TestAnalyze_ProviderError(t *testing.T) {
	provider := &stubProvider{err: errors.New("API returned status 500")}
	analyzer := NewAnalyzer(provider, nil)
	summary := sampleSummary()

	text, stats := analyzer.Analyze(context.Background(), summary, sampleErrorEntries())

	if text != FallbackAnalysis(summary) {
		t.Errorf("Analyze() should degrade to the rule-based text on provider error:\n%s", text)
	}
	if stats != nil {
		t.Errorf("stats should be nil after fallback, got %+v", stats)
	}
}

func TestAnalyze_Success(t *testing.T) {
	const reply = "ROOT CAUSE: The database rejected new connections.\nFIXES:\n1. Restart\n2. Pool\n3. DNS\nPREVENTION: Health checks"
	provider := &stubProvider{
		text:  reply,
		stats: &Stats{Provider: "stub", Model: "test-model", InputTokens: 100, OutputTokens: 50},
	}
	analyzer := NewAnalyzer(provider, nil)

	text, stats := analyzer.Analyze(context.Background(), sampleSummary(), sampleErrorEntries())

	if text != reply {
		t.Errorf("Analyze() must return provider text verbatim:\n%q\nwant\n%q", text, reply)
	}
	if stats == nil || stats.InputTokens != 100 || stats.OutputTokens != 50 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestAnalyze_PromptsHandedToProvider(t *testing.T) {
	provider := &stubProvider{text: "ok", stats: &Stats{}}
	analyzer := NewAnalyzer(provider, nil)
	summary := sampleSummary()

	analyzer.Analyze(context.Background(), summary, sampleErrorEntries())

	if provider.gotSystem != GetSystemPrompt() {
		t.Errorf("system prompt = %q", provider.gotSystem)
	}
	if !strings.Contains(provider.gotUser, "Total log entries: 8") {
		t.Errorf("user prompt missing summary context:\n%s", provider.gotUser)
	}
	if !strings.Contains(provider.gotUser, "- (2x) Connection refused to database at db.example.com:N") {
		t.Errorf("user prompt missing top error:\n%s", provider.gotUser)
	}
	if !strings.Contains(provider.gotUser, "ROOT CAUSE: <one sentence>") {
		t.Errorf("user prompt missing format instructions:\n%s", provider.gotUser)
	}
}

func TestAnalyze_CapsSampleErrors(t *testing.T) {
	provider := &stubProvider{text: "ok", stats: &Stats{}}
	analyzer := NewAnalyzer(provider, nil)

	samples := make([]model.LogEntry, 0, 15)
	for i := 0; i < 15; i++ {
		samples = append(samples, sampleErrorEntries()[0])
	}

	analyzer.Analyze(context.Background(), sampleSummary(), samples)

	if n := strings.Count(provider.gotUser, "[2024-01-15 14:23:15]"); n != 5 {
		t.Errorf("user prompt quotes %d samples, want 5", n)
	}
}

func TestAnalyze_EndToEnd(t *testing.T) {
	const reply = "ROOT CAUSE: Database connectivity failure.\nFIXES:\n1. a\n2. b\n3. c\nPREVENTION: d"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if req := verifyOpenAIChatRequest(t, r, w); req == nil {
			return
		}
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(completionResponse(reply))
	}))
	defer server.Close()

	client, err := NewNvidiaClient(NvidiaConfig{BaseURL: server.URL, APIKey: "nvapi-test"})
	if err != nil {
		t.Fatalf("NewNvidiaClient() error = %v", err)
	}

	analyzer := NewAnalyzer(client, nil)
	text, stats := analyzer.Analyze(context.Background(), sampleSummary(), sampleErrorEntries())

	if text != reply {
		t.Errorf("Analyze() = %q, want %q", text, reply)
	}
	if stats == nil {
		t.Fatal("stats should not be nil on success")
	}
	if stats.Provider != "NVIDIA" || stats.InputTokens != 1500 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestAnalyze_ServerErrorFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client, err := NewNvidiaClient(NvidiaConfig{BaseURL: server.URL, APIKey: "nvapi-test"})
	if err != nil {
		t.Fatalf("NewNvidiaClient() error = %v", err)
	}

	analyzer := NewAnalyzer(client, nil)
	summary := sampleSummary()
	text, stats := analyzer.Analyze(context.Background(), summary, sampleErrorEntries())

	if text != FallbackAnalysis(summary) {
		t.Errorf("expected rule-based text after server error:\n%s", text)
	}
	if stats != nil {
		t.Errorf("stats = %+v, want nil", stats)
	}
}
