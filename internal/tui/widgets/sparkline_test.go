// ABOUTME: Tests for sparkline widget
// ABOUTME: Validates block mapping and resampling behavior

package widgets

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestSparklineEmpty(t *testing.T) {
	if got := Sparkline(nil, 10, ""); got != "" {
		t.Errorf("expected empty sparkline for no values, got %q", got)
	}
	if got := Sparkline([]float64{1, 2}, 0, ""); got != "" {
		t.Errorf("expected empty sparkline for zero width, got %q", got)
	}
}

func TestSparklineLength(t *testing.T) {
	got := Sparkline([]float64{1, 2, 3, 4, 5}, 5, lipgloss.Color("#F97316"))
	if lipgloss.Width(got) != 5 {
		t.Errorf("expected width 5, got %d: %q", lipgloss.Width(got), got)
	}
}

func TestSparklineMinMaxBlocks(t *testing.T) {
	got := Sparkline([]float64{0, 100}, 2, "")
	runes := []rune(got)
	if runes[0] != SparklineBlocks[0] {
		t.Errorf("expected lowest block first, got %q", got)
	}
	if runes[len(runes)-1] != SparklineBlocks[len(SparklineBlocks)-1] {
		t.Errorf("expected highest block last, got %q", got)
	}
}

func TestSampleValues_Pad(t *testing.T) {
	got := sampleValues([]float64{5, 6}, 4)
	if len(got) != 4 {
		t.Fatalf("expected length 4, got %d", len(got))
	}
	if got[0] != 0 || got[1] != 0 || got[2] != 5 || got[3] != 6 {
		t.Errorf("expected zero-padded prefix, got %v", got)
	}
}

func TestSampleValues_Downsample(t *testing.T) {
	values := make([]float64, 20)
	for i := range values {
		values[i] = float64(i)
	}
	got := sampleValues(values, 5)
	if len(got) != 5 {
		t.Fatalf("expected length 5, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i] < got[i-1] {
			t.Errorf("expected monotonic sample of increasing input, got %v", got)
		}
	}
}

func TestValueToBlock_FlatSeries(t *testing.T) {
	got := valueToBlock(5, 5, 5)
	if got != SparklineBlocks[len(SparklineBlocks)/2] {
		t.Errorf("expected middle block for flat series, got %q", got)
	}
}
