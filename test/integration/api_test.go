package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/eugenenazirov/llm-council/internal/api"
	"github.com/eugenenazirov/llm-council/internal/config"
	"github.com/eugenenazirov/llm-council/internal/envfile"
)

func newRouter(t *testing.T, cfg config.Config) http.Handler {
	t.Helper()

	handler := api.NewHandler(cfg)
	logger := zaptest.NewLogger(t)
	return api.NewRouter(handler, logger, api.WithLogging(false))
}

func performRequest(t *testing.T, handler http.Handler, method, target string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeConfig(t *testing.T, rec *httptest.ResponseRecorder) config.Description {
	t.Helper()

	var d config.Description
	if err := json.Unmarshal(rec.Body.Bytes(), &d); err != nil {
		t.Fatalf("failed to decode config response: %v", err)
	}
	return d
}

// clearCouncilEnv unsets every council variable for the duration of the test.
func clearCouncilEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{config.EnvAPIKey, config.EnvCouncilModels, config.EnvChairmanModel, config.EnvReasoningEffort} {
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("unset %s: %v", key, err)
		}
	}
}

func TestIntegrationDefaults(t *testing.T) {
	clearCouncilEnv(t)

	handler := newRouter(t, config.FromEnv())

	rec := performRequest(t, handler, http.MethodGet, "/api/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from health, got %d", rec.Code)
	}

	rec = performRequest(t, handler, http.MethodGet, "/api/config", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from config, got %d", rec.Code)
	}

	d := decodeConfig(t, rec)
	if !slices.Equal(d.CouncilModels, config.DefaultCouncilModels()) {
		t.Fatalf("expected default council, got %v", d.CouncilModels)
	}
	if d.ChairmanModel != d.CouncilModels[0] {
		t.Fatalf("expected chairman to be the first council model, got %s", d.ChairmanModel)
	}
	if d.ReasoningEffort == nil || *d.ReasoningEffort != "medium" {
		t.Fatalf("expected medium reasoning effort, got %v", d.ReasoningEffort)
	}
	if d.APIKeyConfigured {
		t.Fatalf("expected credential to be absent")
	}
}

func TestIntegrationEnvFile(t *testing.T) {
	clearCouncilEnv(t)
	t.Setenv(config.EnvChairmanModel, "from-process")

	dir := t.TempDir()
	content := "OPENROUTER_API_KEY=sk-or-file\n" +
		"COUNCIL_MODELS=modelA, modelB ,,modelC\n" +
		"CHAIRMAN_MODEL=from-file\n" +
		"REASONING_EFFORT=\"  HIGH  \"\n"
	if err := os.WriteFile(filepath.Join(dir, "council.env"), []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	nested := filepath.Join(dir, "nested")
	if err := os.Mkdir(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	t.Chdir(nested)

	path, err := envfile.Autoload("council.env")
	if err != nil {
		t.Fatalf("Autoload returned error: %v", err)
	}
	if path == "" {
		t.Fatalf("expected env file to be found")
	}

	handler := newRouter(t, config.FromEnv())
	d := decodeConfig(t, performRequest(t, handler, http.MethodGet, "/api/config", nil))

	if want := []string{"modelA", "modelB", "modelC"}; !slices.Equal(d.CouncilModels, want) {
		t.Fatalf("expected %v, got %v", want, d.CouncilModels)
	}
	if d.ChairmanModel != "from-process" {
		t.Fatalf("expected process environment to win over env file, got %s", d.ChairmanModel)
	}
	if d.ChairmanInCouncil {
		t.Fatalf("expected chairman outside the council")
	}
	if d.ReasoningEffort == nil || *d.ReasoningEffort != "high" {
		t.Fatalf("expected high reasoning effort, got %v", d.ReasoningEffort)
	}
	if !d.APIKeyConfigured {
		t.Fatalf("expected credential from env file")
	}
}
