// ABOUTME: Tests for the login and logout commands
// ABOUTME: Verifies sign-in output, exit codes, and token persistence

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/nickigann03/phishguard/internal/client"
)

// isolateConfig points the token store at a temp dir and the client at
// the given test server for the duration of one test.
func isolateConfig(t *testing.T, serverURL string) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	apiURL = serverURL
	t.Cleanup(func() { apiURL = "" })
	return dir
}

// authServer serves a login endpoint plus an identity endpoint that
// accepts the issued token.
func authServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			if err := r.ParseForm(); err != nil {
				t.Fatalf("bad login form: %v", err)
			}
			if r.FormValue("username") != "admin@example.com" || r.FormValue("password") != "hunter2" {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"detail": "wrong password"})
				return
			}
			json.NewEncoder(w).Encode(client.LoginResponse{AccessToken: "tok-123", TokenType: "bearer"})
		case "/auth/me":
			if r.Header.Get("Authorization") != "Bearer tok-123" {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"detail": "Could not validate credentials"})
				return
			}
			json.NewEncoder(w).Encode(client.User{
				ID:       "u1",
				Email:    "admin@example.com",
				FullName: "Admin User",
				Role:     "admin",
			})
		default:
			t.Errorf("unexpected request path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestLoginCommand_Success(t *testing.T) {
	server := authServer(t)
	defer server.Close()
	configDir := isolateConfig(t, server.URL)

	var buf bytes.Buffer
	exitCode := runLogin(context.Background(), &buf, "admin@example.com", "hunter2")

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("Signed in as Admin User (admin@example.com)")) {
		t.Errorf("unexpected output: %s", buf.String())
	}

	// Token should be persisted for later commands
	data, err := os.ReadFile(filepath.Join(configDir, "phishguard", "phishguard_token"))
	if err != nil {
		t.Fatalf("expected persisted token: %v", err)
	}
	if string(data) != "tok-123" {
		t.Errorf("expected stored token tok-123, got %q", string(data))
	}
}

func TestLoginCommand_BadCredentials(t *testing.T) {
	server := authServer(t)
	defer server.Close()
	configDir := isolateConfig(t, server.URL)

	var buf bytes.Buffer
	exitCode := runLogin(context.Background(), &buf, "admin@example.com", "wrong")

	if exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Invalid credentials")) {
		t.Errorf("expected Invalid credentials in output, got: %s", buf.String())
	}

	if _, err := os.Stat(filepath.Join(configDir, "phishguard", "phishguard_token")); !os.IsNotExist(err) {
		t.Error("expected no token persisted after failed login")
	}
}

func TestLogoutCommand(t *testing.T) {
	server := authServer(t)
	defer server.Close()
	configDir := isolateConfig(t, server.URL)

	var buf bytes.Buffer
	if exitCode := runLogin(context.Background(), &buf, "admin@example.com", "hunter2"); exitCode != 0 {
		t.Fatalf("login failed: %s", buf.String())
	}

	buf.Reset()
	runLogout(&buf)

	if !bytes.Contains(buf.Bytes(), []byte("Signed out.")) {
		t.Errorf("unexpected output: %s", buf.String())
	}
	if _, err := os.Stat(filepath.Join(configDir, "phishguard", "phishguard_token")); !os.IsNotExist(err) {
		t.Error("expected token file removed after logout")
	}
}
