// ABOUTME: Tests for the PhishGuard API client
// ABOUTME: Uses httptest to mock backend responses and assert auth headers

package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/nickigann03/phishguard/internal/token"
)

// memStore is a minimal in-memory token.Store for tests
type memStore struct {
	token string
}

func (m *memStore) Set(tok string)      { m.token = tok }
func (m *memStore) Get() (string, bool) { return m.token, m.token != "" }
func (m *memStore) Clear()              { m.token = "" }

var _ token.Store = (*memStore)(nil)

func TestLogin_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("expected path /auth/login, got %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("expected form content type, got %s", ct)
		}
		body, _ := io.ReadAll(r.Body)
		form, err := url.ParseQuery(string(body))
		if err != nil {
			t.Fatalf("body is not form-encoded: %v", err)
		}
		if form.Get("username") != "user@x.com" {
			t.Errorf("expected username user@x.com, got %s", form.Get("username"))
		}
		if form.Get("password") != "secret" {
			t.Errorf("expected password secret, got %s", form.Get("password"))
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(LoginResponse{AccessToken: "abc", TokenType: "bearer"})
	}))
	defer server.Close()

	store := &memStore{}
	c := New(server.URL, store)

	resp, err := c.Login(context.Background(), "user@x.com", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.AccessToken != "abc" {
		t.Errorf("expected token abc, got %s", resp.AccessToken)
	}
	if tok, ok := store.Get(); !ok || tok != "abc" {
		t.Errorf("expected token persisted in store, got %q (present=%t)", tok, ok)
	}
}

func TestLogin_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "account locked"})
	}))
	defer server.Close()

	store := &memStore{}
	c := New(server.URL, store)

	_, err := c.Login(context.Background(), "user@x.com", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	// Server detail is discarded on login failures
	if err.Error() != "Invalid credentials" {
		t.Errorf("expected exact message Invalid credentials, got %q", err.Error())
	}
	if _, ok := store.Get(); ok {
		t.Error("expected no token stored after failed login")
	}
}

func TestCurrentUser_SendsBearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/me" {
			t.Errorf("expected path /auth/me, got %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer tok123" {
			t.Errorf("expected Bearer tok123, got %q", auth)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(User{ID: "u1", Email: "a@b.com", FullName: "Ana", Role: "admin"})
	}))
	defer server.Close()

	c := New(server.URL, &memStore{token: "tok123"})
	user, err := c.CurrentUser(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != "a@b.com" {
		t.Errorf("expected email a@b.com, got %s", user.Email)
	}
	if user.Role != "admin" {
		t.Errorf("expected role admin, got %s", user.Role)
	}
}

func TestRequest_NoToken_OmitsAuthorizationHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, present := r.Header["Authorization"]; present {
			t.Errorf("expected no Authorization header, got %q", r.Header.Get("Authorization"))
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]Campaign{})
	}))
	defer server.Close()

	c := New(server.URL, &memStore{})
	if _, err := c.Campaigns(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRequest_ErrorDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Not found"})
	}))
	defer server.Close()

	c := New(server.URL, &memStore{})
	_, err := c.Campaign(context.Background(), "missing")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "Not found" {
		t.Errorf("expected message Not found, got %q", err.Error())
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", apiErr.StatusCode)
	}
}

func TestRequest_UnparseableErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, "<html>boom</html>")
	}))
	defer server.Close()

	c := New(server.URL, &memStore{})
	_, err := c.Dashboard(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "500") {
		t.Errorf("expected message to contain status code 500, got %q", err.Error())
	}
}

func TestRequest_EmptyDetailFallsBackToStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer server.Close()

	c := New(server.URL, &memStore{})
	_, err := c.Dashboard(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "502") {
		t.Errorf("expected message to contain 502, got %q", err.Error())
	}
}

func TestRequest_ConnectionError(t *testing.T) {
	c := New("http://localhost:1", &memStore{})
	_, err := c.Dashboard(context.Background())
	if err == nil {
		t.Error("expected connection error, got nil")
	}
}

func TestRequest_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		json.NewEncoder(w).Encode(DashboardData{})
	}))
	defer server.Close()

	c := New(server.URL, &memStore{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	_, err := c.Dashboard(ctx)
	if err == nil {
		t.Error("expected error for canceled context, got nil")
	}
}

func TestRequest_ContextTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		json.NewEncoder(w).Encode(DashboardData{})
	}))
	defer server.Close()

	c := New(server.URL, &memStore{})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := c.Dashboard(ctx)
	if err == nil {
		t.Error("expected error for timed out context, got nil")
	}
}

func TestDashboard(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/analytics/dashboard" {
			t.Errorf("expected path /analytics/dashboard, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(DashboardData{
			Summary: DashboardSummary{
				TotalCampaigns:   24,
				ActiveCampaigns:  12,
				OverallClickRate: 18.2,
			},
			RiskByDepartment: map[string]float64{"Finance": 78},
			ClickTrend:       []ClickTrendPoint{{Date: "2024-12-28", Clicks: 41}},
		})
	}))
	defer server.Close()

	c := New(server.URL, &memStore{token: "tok"})
	data, err := c.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.Summary.TotalCampaigns != 24 {
		t.Errorf("expected 24 campaigns, got %d", data.Summary.TotalCampaigns)
	}
	if data.RiskByDepartment["Finance"] != 78 {
		t.Errorf("expected Finance risk 78, got %f", data.RiskByDepartment["Finance"])
	}
}

func TestCreateCampaign(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected JSON content type, got %s", ct)
		}
		var input CreateCampaignRequest
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			t.Fatalf("invalid request body: %v", err)
		}
		if input.TargetType != "department" {
			t.Errorf("expected target_type department, got %s", input.TargetType)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Campaign{ID: "c1", Name: input.Name, Status: "draft"})
	}))
	defer server.Close()

	c := New(server.URL, &memStore{token: "tok"})
	campaign, err := c.CreateCampaign(context.Background(), &CreateCampaignRequest{
		Name:       "Q1 Drill",
		TemplateID: "t1",
		TargetType: "department",
		Department: "Finance",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if campaign.Status != "draft" {
		t.Errorf("expected status draft, got %s", campaign.Status)
	}
}

func TestLaunchCampaign(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/campaigns/c1/launch" {
			t.Errorf("expected path /campaigns/c1/launch, got %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(LaunchResponse{Message: "Campaign launched"})
	}))
	defer server.Close()

	c := New(server.URL, &memStore{token: "tok"})
	resp, err := c.LaunchCampaign(context.Background(), "c1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Message != "Campaign launched" {
		t.Errorf("unexpected message %q", resp.Message)
	}
}

func TestTemplates_NoFilters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/templates/" {
			t.Errorf("expected path /templates/, got %s", r.URL.Path)
		}
		if r.URL.RawQuery != "" {
			t.Errorf("expected no query string, got %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]Template{{ID: "t1", Name: "Invoice"}})
	}))
	defer server.Close()

	c := New(server.URL, &memStore{token: "tok"})
	templates, err := c.Templates(context.Background(), TemplateFilters{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(templates) != 1 {
		t.Fatalf("expected 1 template, got %d", len(templates))
	}
}

func TestTemplates_CountryFilterOnly(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if query.Get("country") != "MY" {
			t.Errorf("expected country=MY, got %q", query.Get("country"))
		}
		if _, present := query["category"]; present {
			t.Error("expected category to be omitted, not sent empty")
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]Template{})
	}))
	defer server.Close()

	c := New(server.URL, &memStore{token: "tok"})
	if _, err := c.Templates(context.Background(), TemplateFilters{Country: "MY"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGenerateTemplate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ai/generate-template" {
			t.Errorf("expected path /ai/generate-template, got %s", r.URL.Path)
		}
		var input GenerateTemplateRequest
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			t.Fatalf("invalid request body: %v", err)
		}
		if input.Prompt == "" {
			t.Error("expected non-empty prompt")
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(GeneratedTemplate{
			Subject:              "Action required",
			Difficulty:           "medium",
			EstimatedSuccessRate: "22%",
		})
	}))
	defer server.Close()

	c := New(server.URL, &memStore{token: "tok"})
	generated, err := c.GenerateTemplate(context.Background(), &GenerateTemplateRequest{
		Prompt:      "IT helpdesk credential check",
		CountryCode: "MY",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if generated.Subject != "Action required" {
		t.Errorf("unexpected subject %q", generated.Subject)
	}
}

func TestRegister(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/register" {
			t.Errorf("expected path /auth/register, got %s", r.URL.Path)
		}
		var input RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			t.Fatalf("invalid request body: %v", err)
		}
		if input.OrganizationName != "Acme" {
			t.Errorf("expected organization Acme, got %s", input.OrganizationName)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(User{ID: "u1", Email: input.Email, FullName: input.FullName, Role: "admin"})
	}))
	defer server.Close()

	c := New(server.URL, &memStore{})
	user, err := c.Register(context.Background(), &RegisterRequest{
		Email:            "new@acme.com",
		Password:         "pw",
		FullName:         "New User",
		OrganizationName: "Acme",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != "new@acme.com" {
		t.Errorf("expected email new@acme.com, got %s", user.Email)
	}
}

func TestRequest_InvalidResponseBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "not json")
	}))
	defer server.Close()

	c := New(server.URL, &memStore{token: "tok"})
	_, err := c.Dashboard(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "invalid response") {
		t.Errorf("expected invalid response error, got %q", err.Error())
	}
}
