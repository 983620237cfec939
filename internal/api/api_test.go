package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evalyze/evalyze/internal/judge"
	"github.com/evalyze/evalyze/internal/llm"
	"github.com/evalyze/evalyze/internal/problemgen"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixture struct {
	mock   *llm.Scripted
	server *httptest.Server
}

func newFixture(t *testing.T, judgeCfg judge.Config, responses ...llm.Reply) *fixture {
	t.Helper()
	mock := llm.NewScripted(responses...)
	gen := problemgen.New(mock, problemgen.DefaultConfig())
	srv := httptest.NewServer(NewRouter(gen, judge.New(judgeCfg), quietLogger()))
	t.Cleanup(srv.Close)
	return &fixture{mock: mock, server: srv}
}

func (f *fixture) post(t *testing.T, path, body string) (int, map[string]any) {
	t.Helper()
	resp, err := http.Post(f.server.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestHealthz(t *testing.T) {
	f := newFixture(t, judge.Config{})
	resp, err := http.Get(f.server.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))
}

func TestGenerateTest(t *testing.T) {
	f := newFixture(t, judge.Config{}, llm.Reply{Content: json.RawMessage(`{"questions": [
		{"id": 1, "question": "Which keyword declares a constant?", "type": "theoretical",
		 "options": ["var", "const", "let", "def"], "correctAnswer": "const", "explanation": "const declares constants."}
	]}`)})

	status, body := f.post(t, "/api/generate-test", `{"skill": "Go", "level": "Beginner", "testType": "theoretical"}`)
	require.Equal(t, http.StatusOK, status)

	qs := body["questions"].([]any)
	require.Len(t, qs, 1)
	q := qs[0].(map[string]any)
	assert.Equal(t, float64(1), q["id"])
	assert.Equal(t, "Which keyword declares a constant?", q["question"])
	assert.Equal(t, "theoretical", q["type"])
	assert.Equal(t, "const", q["correctAnswer"])
	assert.Len(t, q["options"], 4)
}

func TestGenerateTest_BadRequest(t *testing.T) {
	f := newFixture(t, judge.Config{})

	status, body := f.post(t, "/api/generate-test", `{"skill": "", "level": "beginner", "testType": "technical"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Missing parameters", body["error"])

	status, _ = f.post(t, "/api/generate-test", `{"skill": "Go", "testType": "essay"}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = f.post(t, "/api/generate-test", `not json`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid request body", body["error"])

	assert.Equal(t, 0, f.mock.Calls())
}

func TestGenerateTest_NotConfigured(t *testing.T) {
	f := newFixture(t, judge.Config{}, llm.Reply{Err: &llm.ErrNotConfigured{Provider: "Gemini"}})

	status, body := f.post(t, "/api/generate-test", `{"skill": "Go", "level": "beginner", "testType": "technical"}`)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Gemini API key not found.", body["error"])
}

func TestGenerateTest_UpstreamFailure(t *testing.T) {
	f := newFixture(t, judge.Config{}, llm.Reply{Err: &llm.ErrProviderUnavailable{}})

	status, body := f.post(t, "/api/generate-test", `{"skill": "Go", "level": "beginner", "testType": "technical"}`)
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, "Failed to generate test questions.", body["error"])
}

func TestGenerateTest_Malformed(t *testing.T) {
	f := newFixture(t, judge.Config{}, llm.Reply{Content: json.RawMessage(`{"questions": "nope"}`)})

	status, _ := f.post(t, "/api/generate-test", `{"skill": "Go", "level": "beginner", "testType": "technical"}`)
	assert.Equal(t, http.StatusBadGateway, status)
}

func TestGenerateProblems(t *testing.T) {
	f := newFixture(t, judge.Config{}, llm.Reply{Content: json.RawMessage(`{"problems": [
		{"slug": "two-sum", "title": "Two Sum", "description": "Find two numbers.", "difficulty": "Easy",
		 "examples": [], "constraints": [], "starterCode": ""}
	]}`)})

	status, body := f.post(t, "/api/generate-problems", `{"topic": "Arrays"}`)
	require.Equal(t, http.StatusOK, status)
	ps := body["problems"].([]any)
	require.Len(t, ps, 1)
	assert.Equal(t, "two-sum", ps[0].(map[string]any)["slug"])
}

func TestGenerateStarterCode(t *testing.T) {
	f := newFixture(t, judge.Config{}, llm.Reply{Content: json.RawMessage("```go\nfunc twoSum() {}\n```")})

	status, body := f.post(t, "/api/generate-starter-code", `{"description": "Find two numbers.", "language": "Go"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "func twoSum() {}", body["starterCode"])
}

func TestTestSuggestions(t *testing.T) {
	f := newFixture(t, judge.Config{},
		llm.Reply{Content: json.RawMessage(`{"suggestions": ["React Hooks", "React Router"]}`)},
		llm.Reply{Content: json.RawMessage(`{"oops": true}`)},
	)

	status, body := f.post(t, "/api/test-suggestions", `{"query": "React"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []any{"React Hooks", "React Router"}, body["suggestions"])

	status, body = f.post(t, "/api/test-suggestions", `{"query": "React"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []any{}, body["suggestions"])
}

func TestGenerateQuestion(t *testing.T) {
	f := newFixture(t, judge.Config{},
		llm.Reply{Content: json.RawMessage(`{"title": "Reverse", "description": "Reverse a list.", "examples": [], "constraints": []}`)},
		llm.Reply{Content: json.RawMessage(`Sorry, here is plain text`)},
	)

	status, body := f.post(t, "/api/generate-question", `{"skill": "Go", "difficulty": "easy", "testType": "technical"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Reverse", body["title"])

	status, body = f.post(t, "/api/generate-question", `{"skill": "Go", "difficulty": "easy", "testType": "technical"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Sorry, here is plain text", body["raw"])

	status, body = f.post(t, "/api/generate-question", `{"skill": "Go"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Missing parameters", body["error"])
}

func TestSubmitCode(t *testing.T) {
	judgeSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "k", r.Header.Get("X-RapidAPI-Key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"stdout": "42\n", "status": {"id": 3, "description": "Accepted"}}`))
	}))
	t.Cleanup(judgeSrv.Close)

	f := newFixture(t, judge.Config{APIKey: "k", BaseURL: judgeSrv.URL})
	status, body := f.post(t, "/api/submit-code", `{"code": "print(42)", "language_id": 71}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "42\n", body["stdout"])
	assert.Equal(t, "Accepted", body["status"].(map[string]any)["description"])
}

func TestSubmitCode_NotConfigured(t *testing.T) {
	f := newFixture(t, judge.Config{})
	status, body := f.post(t, "/api/submit-code", `{"code": "print(42)", "language_id": 71}`)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Judge0 API key not found on the server.", body["error"])
}

func TestSubmitCode_Upstream(t *testing.T) {
	judgeSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(judgeSrv.Close)

	f := newFixture(t, judge.Config{APIKey: "k", BaseURL: judgeSrv.URL})
	status, body := f.post(t, "/api/submit-code", `{"code": "x", "language_id": 71}`)
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, "Failed to execute code.", body["error"])
}

func TestLanguages(t *testing.T) {
	f := newFixture(t, judge.Config{})
	resp, err := http.Get(f.server.URL + "/api/languages")
	require.NoError(t, err)
	defer resp.Body.Close()

	var langs []judge.Language
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&langs))
	assert.Len(t, langs, 20)
	assert.Equal(t, "JavaScript", langs[0].Name)
}
