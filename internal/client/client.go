// ABOUTME: HTTP client for the PhishGuard platform API
// ABOUTME: Attaches the stored bearer credential and normalizes API errors

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nickigann03/phishguard/internal/token"
)

// ErrInvalidCredentials is returned by Login for any HTTP failure.
// Server detail is deliberately discarded to avoid leaking auth internals.
var ErrInvalidCredentials = errors.New("Invalid credentials")

// Client is the API client for the PhishGuard backend
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     token.Store
}

// New creates a new API client with the given base URL and token store
func New(baseURL string, tokens token.Store) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// APIError represents an HTTP-level failure from the backend
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("request failed (HTTP %d)", e.StatusCode)
}

// LoginResponse is the issued credential from /auth/login
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// User represents the authenticated identity from /auth/me
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// RegisterRequest is the payload for /auth/register
type RegisterRequest struct {
	Email            string `json:"email"`
	Password         string `json:"password"`
	FullName         string `json:"full_name"`
	OrganizationName string `json:"organization_name"`
}

// Login authenticates with the backend using form-encoded credentials,
// per the backend's OAuth2 password-flow convention. On success the
// issued token is persisted in the token store before returning.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, ErrInvalidCredentials
	}

	var login LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&login); err != nil {
		return nil, fmt.Errorf("invalid response from backend: %w", err)
	}

	c.tokens.Set(login.AccessToken)
	return &login, nil
}

// Register calls POST /auth/register
func (c *Client) Register(ctx context.Context, input *RegisterRequest) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPost, "/auth/register", input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CurrentUser calls GET /auth/me to resolve the stored credential to an identity
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DashboardSummary holds the aggregate campaign metrics
type DashboardSummary struct {
	TotalCampaigns   int     `json:"total_campaigns"`
	ActiveCampaigns  int     `json:"active_campaigns"`
	TotalEmailsSent  int     `json:"total_emails_sent"`
	TotalClicks      int     `json:"total_clicks"`
	OverallClickRate float64 `json:"overall_click_rate"`
	UsersTrained     int     `json:"users_trained"`
	AvgRiskScore     float64 `json:"avg_risk_score"`
}

// CampaignStats is a campaign row in the dashboard response
type CampaignStats struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Status       string  `json:"status"`
	TargetsCount int     `json:"targets_count"`
	ClicksCount  int     `json:"clicks_count"`
	ClickRate    float64 `json:"click_rate"`
	CreatedAt    string  `json:"created_at"`
}

// ClickTrendPoint is one day of click activity
type ClickTrendPoint struct {
	Date   string `json:"date"`
	Clicks int    `json:"clicks"`
}

// DashboardData is the /analytics/dashboard response
type DashboardData struct {
	Summary          DashboardSummary   `json:"summary"`
	RecentCampaigns  []CampaignStats    `json:"recent_campaigns"`
	RiskByDepartment map[string]float64 `json:"risk_by_department"`
	ClickTrend       []ClickTrendPoint  `json:"click_trend"`
}

// Dashboard calls GET /analytics/dashboard
func (c *Client) Dashboard(ctx context.Context) (*DashboardData, error) {
	var data DashboardData
	if err := c.do(ctx, http.MethodGet, "/analytics/dashboard", nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// Campaign represents a simulated phishing campaign
type Campaign struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Status        string `json:"status"`
	TemplateID    string `json:"template_id"`
	LandingPageID string `json:"landing_page_id,omitempty"`
	ScheduledAt   string `json:"scheduled_at,omitempty"`
	StartedAt     string `json:"started_at,omitempty"`
	CompletedAt   string `json:"completed_at,omitempty"`
	TargetsCount  int    `json:"targets_count"`
	ClicksCount   int    `json:"clicks_count"`
	CreatedAt     string `json:"created_at"`
}

// CreateCampaignRequest is the payload for creating a campaign
type CreateCampaignRequest struct {
	Name       string   `json:"name"`
	TemplateID string   `json:"template_id"`
	TargetType string   `json:"target_type"`
	TargetIDs  []string `json:"target_ids,omitempty"`
	Department string   `json:"department,omitempty"`
}

// LaunchResponse is the /campaigns/{id}/launch response
type LaunchResponse struct {
	Message string `json:"message"`
}

// Campaigns calls GET /campaigns/
func (c *Client) Campaigns(ctx context.Context) ([]Campaign, error) {
	var campaigns []Campaign
	if err := c.do(ctx, http.MethodGet, "/campaigns/", nil, &campaigns); err != nil {
		return nil, err
	}
	return campaigns, nil
}

// Campaign calls GET /campaigns/{id}
func (c *Client) Campaign(ctx context.Context, id string) (*Campaign, error) {
	var campaign Campaign
	if err := c.do(ctx, http.MethodGet, "/campaigns/"+id, nil, &campaign); err != nil {
		return nil, err
	}
	return &campaign, nil
}

// CreateCampaign calls POST /campaigns/
func (c *Client) CreateCampaign(ctx context.Context, input *CreateCampaignRequest) (*Campaign, error) {
	var campaign Campaign
	if err := c.do(ctx, http.MethodPost, "/campaigns/", input, &campaign); err != nil {
		return nil, err
	}
	return &campaign, nil
}

// LaunchCampaign calls POST /campaigns/{id}/launch
func (c *Client) LaunchCampaign(ctx context.Context, id string) (*LaunchResponse, error) {
	var launch LaunchResponse
	if err := c.do(ctx, http.MethodPost, "/campaigns/"+id+"/launch", nil, &launch); err != nil {
		return nil, err
	}
	return &launch, nil
}

// Template represents a phishing email template
type Template struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Subject           string `json:"subject"`
	BodyHTML          string `json:"body_html"`
	BodyText          string `json:"body_text"`
	CountryCode       string `json:"country_code"`
	Language          string `json:"language"`
	Category          string `json:"category"`
	Difficulty        string `json:"difficulty"`
	BrandImpersonated string `json:"brand_impersonated,omitempty"`
	IsActive          bool   `json:"is_active"`
	CreatedAt         string `json:"created_at"`
}

// TemplateFilters narrows the template listing. Zero-value fields are
// omitted from the query string entirely.
type TemplateFilters struct {
	Country  string
	Category string
}

// Templates calls GET /templates/ with optional filters
func (c *Client) Templates(ctx context.Context, filters TemplateFilters) ([]Template, error) {
	params := url.Values{}
	if filters.Country != "" {
		params.Set("country", filters.Country)
	}
	if filters.Category != "" {
		params.Set("category", filters.Category)
	}

	path := "/templates/"
	if query := params.Encode(); query != "" {
		path += "?" + query
	}

	var templates []Template
	if err := c.do(ctx, http.MethodGet, path, nil, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

// Template calls GET /templates/{id}
func (c *Client) Template(ctx context.Context, id string) (*Template, error) {
	var tmpl Template
	if err := c.do(ctx, http.MethodGet, "/templates/"+id, nil, &tmpl); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// GenerateTemplateRequest is the payload for AI template generation
type GenerateTemplateRequest struct {
	Prompt        string `json:"prompt"`
	CountryCode   string `json:"country_code,omitempty"`
	Language      string `json:"language,omitempty"`
	BrandCategory string `json:"brand_category,omitempty"`
}

// GeneratedTemplate is the AI generation response
type GeneratedTemplate struct {
	Subject              string `json:"subject"`
	BodyHTML             string `json:"body_html"`
	BodyText             string `json:"body_text"`
	Difficulty           string `json:"difficulty"`
	EstimatedSuccessRate string `json:"estimated_success_rate"`
}

// GenerateTemplate calls POST /ai/generate-template
func (c *Client) GenerateTemplate(ctx context.Context, input *GenerateTemplateRequest) (*GeneratedTemplate, error) {
	var generated GeneratedTemplate
	if err := c.do(ctx, http.MethodPost, "/ai/generate-template", input, &generated); err != nil {
		return nil, err
	}
	return &generated, nil
}

// do issues a JSON request against the backend. The stored credential,
// when present, is attached as a bearer token; when absent the
// Authorization header is omitted entirely.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal input: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if tok, ok := c.tokens.Get(); ok {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.handleErrorResponse(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

// handleRequestError converts context errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return fmt.Errorf("request canceled")
	}
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
}

// handleErrorResponse parses API error responses. The backend reports
// failures as {"detail": "..."}; anything else falls back to a
// status-code message.
func (c *Client) handleErrorResponse(resp *http.Response) error {
	var errResp struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		return &APIError{StatusCode: resp.StatusCode}
	}
	return &APIError{StatusCode: resp.StatusCode, Detail: errResp.Detail}
}
