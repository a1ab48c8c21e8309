package stats

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/mindsight/internal/model"
)

func TestAccuracy(t *testing.T) {
	if got := Accuracy(0, 0); got != 0 {
		t.Fatalf("expected 0 for no responses, got %f", got)
	}
	if got := Accuracy(1, 1); got != 50 {
		t.Fatalf("expected 50, got %f", got)
	}
	if got := Accuracy(3, 0); got != 100 {
		t.Fatalf("expected 100, got %f", got)
	}
}

func TestAverageResponse(t *testing.T) {
	if got := AverageResponse(nil); got != 0 {
		t.Fatalf("expected 0 for empty sequence, got %v", got)
	}
	times := []time.Duration{200 * time.Millisecond, 400 * time.Millisecond}
	if got := AverageResponse(times); got != 300*time.Millisecond {
		t.Fatalf("expected 300ms, got %v", got)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(model.Statistics{
		Correct:        1,
		Wrong:          1,
		Skipped:        1,
		TotalResponded: 2,
		ResponseTimes:  []time.Duration{time.Second, 2 * time.Second},
	})
	if s.Accuracy != 50 {
		t.Fatalf("expected 50%% accuracy, got %f", s.Accuracy)
	}
	if s.AvgResponse != 1500*time.Millisecond {
		t.Fatalf("expected 1.5s average, got %v", s.AvgResponse)
	}
	if s.Responses != 2 {
		t.Fatalf("expected 2 timed responses, got %d", s.Responses)
	}
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	s := Summary{Correct: 1, Wrong: 1, Skipped: 1, TotalResponded: 2, Responses: 2, Accuracy: 50, AvgResponse: 1234 * time.Millisecond}
	if err := RenderSummary(&buf, s); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Score Summary", "Correct", "Skipped", "Percent Correct", "50.0%", "1.23s"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{1, 3, 5, 7}, 2)
	want := []float64{1, 2, 4, 6}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: expected %f, got %f", i, want[i], got[i])
		}
	}
}

func TestSparkline(t *testing.T) {
	if Sparkline(nil) != "" {
		t.Fatalf("expected empty sparkline")
	}
	line := Sparkline([]float64{0, 1})
	if line != " @" {
		t.Fatalf("unexpected sparkline %q", line)
	}
}

func TestRenderResponseCurve(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderResponseCurveWithSize(&buf, nil, 3, 80, 4, false); err != nil {
		t.Fatalf("render: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected nothing for no responses")
	}
	times := []time.Duration{time.Second, 500 * time.Millisecond, 750 * time.Millisecond}
	if err := RenderResponseCurveWithSize(&buf, times, 2, 60, 4, false); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "Response Times") || !strings.Contains(buf.String(), "Avg of 2") {
		t.Fatalf("unexpected curve output:\n%s", buf.String())
	}
}

func TestRenderResponseCurveForPlainOutput(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderResponseCurve(&buf, nil, 5); err != nil {
		t.Fatalf("render: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected nothing for no responses")
	}
	times := []time.Duration{400 * time.Millisecond, 600 * time.Millisecond, 500 * time.Millisecond}
	if err := RenderResponseCurve(&buf, times, 5); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Response Times") || !strings.Contains(out, "Avg of 5") {
		t.Fatalf("unexpected curve output:\n%s", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no color codes when writing to a buffer:\n%s", out)
	}
}
