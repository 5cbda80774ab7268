// ABOUTME: Tests for status badge widgets
// ABOUTME: Validates badge text mapping for campaigns, difficulties, and risk

package widgets

import (
	"strings"
	"testing"
)

func TestCampaignStatusBadge(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{"active", "ACTIVE"},
		{"scheduled", "SCHEDULED"},
		{"completed", "DONE"},
		{"draft", "DRAFT"},
		{"Draft", "DRAFT"},
		{"archived", "ARCHIVED"},
	}

	for _, tt := range tests {
		got := CampaignStatusBadge(tt.status)
		if !strings.Contains(got, tt.want) {
			t.Errorf("CampaignStatusBadge(%q) = %q, expected to contain %q", tt.status, got, tt.want)
		}
	}
}

func TestDifficultyBadge(t *testing.T) {
	for _, tt := range []struct{ in, want string }{
		{"easy", "EASY"},
		{"medium", "MEDIUM"},
		{"hard", "HARD"},
	} {
		got := DifficultyBadge(tt.in)
		if !strings.Contains(got, tt.want) {
			t.Errorf("DifficultyBadge(%q) = %q, expected to contain %q", tt.in, got, tt.want)
		}
	}
}

func TestRiskLevel(t *testing.T) {
	tests := []struct {
		score     float64
		wantLabel string
		wantLevel StatusLevel
	}{
		{10, "Low", StatusOK},
		{40, "Low", StatusOK},
		{41, "Medium", StatusWarning},
		{70, "Medium", StatusWarning},
		{71, "High", StatusCritical},
		{100, "High", StatusCritical},
	}

	for _, tt := range tests {
		label, level := RiskLevel(tt.score)
		if label != tt.wantLabel || level != tt.wantLevel {
			t.Errorf("RiskLevel(%v) = %q, %d, want %q, %d", tt.score, label, level, tt.wantLabel, tt.wantLevel)
		}
	}
}

func TestRiskBadge(t *testing.T) {
	if got := RiskBadge(85); !strings.Contains(got, "High") {
		t.Errorf("RiskBadge(85) = %q, expected High", got)
	}
}
