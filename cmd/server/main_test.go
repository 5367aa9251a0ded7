package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"symptom-checker/internal/config"
	"symptom-checker/internal/session"
	"symptom-checker/pkg"
)

func TestVersionCmd(t *testing.T) {
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.Equal(t, "symptom-checker version dev\n", out.String())
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()
	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["analyze"])
	assert.True(t, names["version"])
}

func TestOpenStore_Memory(t *testing.T) {
	cfg := &config.Config{Session: config.SessionConfig{Backend: config.BackendMemory, TTL: time.Minute}}
	store, closeStore, err := openStore(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer closeStore()
	assert.IsType(t, &session.MemoryStore{}, store)
}

func TestAnalyzeCmd(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"choices": []map[string]interface{}{{
				"index":         0,
				"finish_reason": "stop",
				"message": map[string]string{
					"role":    "assistant",
					"content": "Summary:\nFlu-like.\nPossible Causes:\n- Cold\n- Flu\nAdvice:\n- Rest\n- Hydrate",
				},
			}},
		})
	}))
	defer provider.Close()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("provider:\n  api_key: test\n  base_url: "+provider.URL+"\n"), 0o600))
	t.Setenv("GROQ_API_KEY", "")
	t.Setenv("groq_api", "")
	t.Setenv("PROVIDER_BASE_URL", "")
	t.Setenv("SESSION_BACKEND", "")

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"analyze", "fever and chills", "--config", path, "-o", "json"})
	require.NoError(t, root.Execute())

	var got pkg.Analysis
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "Flu-like.", got.Summary)
	assert.Equal(t, []string{"Cold", "Flu"}, got.Causes)
	assert.Equal(t, []string{"Rest", "Hydrate"}, got.Advice)
}

func TestAnalyzeCmd_RequiresSymptoms(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"analyze"})
	assert.Error(t, root.Execute())
}
