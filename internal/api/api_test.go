package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

type echoRequest struct {
	Name string `json:"name"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ok", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	mux.HandleFunc("POST /echo", func(w http.ResponseWriter, r *http.Request) {
		var req echoRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(req)
	})
	mux.HandleFunc("GET /text", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("plain body"))
	})
	mux.HandleFunc("GET /missing", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"session not found"}`))
	})
	mux.HandleFunc("DELETE /thing", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient(t *testing.T) {
	srv := newTestServer(t)
	client := NewClient(srv.URL)
	ctx := context.Background()

	t.Run("get", func(t *testing.T) {
		var resp map[string]string
		if err := client.Get(ctx, "/ok", &resp); err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if resp["status"] != "ok" {
			t.Errorf("expected ok, got %v", resp)
		}
	})

	t.Run("post", func(t *testing.T) {
		var resp echoRequest
		if err := client.Post(ctx, "/echo", echoRequest{Name: "Ann"}, &resp); err != nil {
			t.Fatalf("Post failed: %v", err)
		}
		if resp.Name != "Ann" {
			t.Errorf("expected Ann, got %s", resp.Name)
		}
	})

	t.Run("get text", func(t *testing.T) {
		body, err := client.GetText(ctx, "/text")
		if err != nil {
			t.Fatalf("GetText failed: %v", err)
		}
		if body != "plain body" {
			t.Errorf("unexpected body %q", body)
		}
	})

	t.Run("error response", func(t *testing.T) {
		err := client.Get(ctx, "/missing", nil)
		var statusErr *StatusError
		if !errors.As(err, &statusErr) {
			t.Fatalf("expected StatusError, got %v", err)
		}
		if statusErr.StatusCode != http.StatusNotFound || statusErr.Message != "session not found" {
			t.Errorf("unexpected error: %+v", statusErr)
		}

		_, err = client.GetText(ctx, "/missing")
		if !errors.As(err, &statusErr) {
			t.Fatalf("expected StatusError from GetText, got %v", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := client.Delete(ctx, "/thing"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
	})
}

type textValue struct{ s string }

func (v textValue) Text() string { return v.s }

func TestOutputTo(t *testing.T) {
	data := map[string]string{"persona": "professional"}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := OutputTo(&buf, OutputFormatJSON, data); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(buf.String(), `"persona": "professional"`) {
			t.Errorf("unexpected json: %s", buf.String())
		}
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		if err := OutputTo(&buf, OutputFormatYAML, data); err != nil {
			t.Fatal(err)
		}
		if strings.TrimSpace(buf.String()) != "persona: professional" {
			t.Errorf("unexpected yaml: %s", buf.String())
		}
	})

	t.Run("text uses Texter", func(t *testing.T) {
		var buf bytes.Buffer
		if err := OutputTo(&buf, OutputFormatText, textValue{"hello"}); err != nil {
			t.Fatal(err)
		}
		if buf.String() != "hello\n" {
			t.Errorf("unexpected text: %q", buf.String())
		}
	})

	t.Run("text falls back to yaml", func(t *testing.T) {
		var buf bytes.Buffer
		if err := OutputTo(&buf, OutputFormatText, data); err != nil {
			t.Fatal(err)
		}
		if strings.TrimSpace(buf.String()) != "persona: professional" {
			t.Errorf("unexpected fallback: %s", buf.String())
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if err := OutputTo(&bytes.Buffer{}, OutputFormat("xml"), data); err == nil {
			t.Error("expected error for unknown format")
		}
	})
}

type fakeEndpoint struct {
	method, path string
	init         bool
}

func (e *fakeEndpoint) Route() (string, string, http.HandlerFunc) {
	return e.method, e.path, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}
}

func (e *fakeEndpoint) RequiresInit() bool { return e.init }

func (e *fakeEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{Use: strings.TrimPrefix(e.path, "/")}
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&fakeEndpoint{method: "GET", path: "/open"})
	reg.Register(&fakeEndpoint{method: "GET", path: "/guarded", init: true})

	if len(reg.Endpoints()) != 2 {
		t.Fatalf("expected 2 endpoints, got %d", len(reg.Endpoints()))
	}

	mux := http.NewServeMux()
	reg.RegisterRoutes(mux, func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	})

	for path, want := range map[string]int{"/open": http.StatusOK, "/guarded": http.StatusServiceUnavailable} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != want {
			t.Errorf("%s: expected %d, got %d", path, want, rec.Code)
		}
	}

	cmd := reg.BuildCommands(func() string { return "http://localhost" })
	if len(cmd.Commands()) != 2 {
		t.Errorf("expected 2 subcommands, got %d", len(cmd.Commands()))
	}
}
