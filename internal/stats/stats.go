// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/verte-zerg/mindsight/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Summary holds the counters of a session plus its derived metrics.
type Summary struct {
	Correct        int
	Wrong          int
	Skipped        int
	TotalResponded int
	Responses      int
	Accuracy       float64
	AvgResponse    time.Duration
}

// Accuracy returns the percentage of responded trials answered correctly,
// or 0 when nothing was answered.
func Accuracy(correct, wrong int) float64 {
	den := correct + wrong
	if den <= 0 {
		return 0
	}
	return float64(correct) / float64(den) * 100
}

// AverageResponse returns the mean response time, or 0 for no responses.
func AverageResponse(times []time.Duration) time.Duration {
	if len(times) == 0 {
		return 0
	}
	var sum time.Duration
	for _, t := range times {
		sum += t
	}
	avg := sum / time.Duration(len(times))
	if avg < 0 {
		return 0
	}
	return avg
}

// Summarize computes the derived metrics for a session.
func Summarize(st model.Statistics) Summary {
	return Summary{
		Correct:        st.Correct,
		Wrong:          st.Wrong,
		Skipped:        st.Skipped,
		TotalResponded: st.TotalResponded,
		Responses:      len(st.ResponseTimes),
		Accuracy:       Accuracy(st.Correct, st.Wrong),
		AvgResponse:    AverageResponse(st.ResponseTimes),
	}
}

// FormatSeconds renders a duration as seconds with two decimals.
func FormatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.2fs", d.Seconds())
}

// ResponseSeconds converts response times to seconds for plotting.
func ResponseSeconds(times []time.Duration) []float64 {
	out := make([]float64, len(times))
	for i, t := range times {
		out[i] = t.Seconds()
	}
	return out
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// SummaryRows returns the label/value pairs shown on the score summary.
func SummaryRows(s Summary) [][]string {
	return [][]string{
		{"Correct", fmt.Sprintf("%d", s.Correct)},
		{"Wrong", fmt.Sprintf("%d", s.Wrong)},
		{"Skipped", fmt.Sprintf("%d", s.Skipped)},
		{"Total Responded", fmt.Sprintf("%d", s.TotalResponded)},
		{"Responses Timed", fmt.Sprintf("%d", s.Responses)},
		{"Percent Correct", fmt.Sprintf("%.1f%%", s.Accuracy)},
		{"Avg Response Time", FormatSeconds(s.AvgResponse)},
	}
}

// RenderSummary prints the score summary as a plain-text table.
func RenderSummary(w io.Writer, s Summary) error {
	if _, err := fmt.Fprintln(w, "Score Summary"); err != nil {
		return err
	}
	lines := formatTable(nil, SummaryRows(s), map[int]bool{1: true})
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

// RenderResponseCurve prints the response-time curve of a session at the
// terminal's width.
func RenderResponseCurve(w io.Writer, times []time.Duration, window int) error {
	if len(times) == 0 {
		return nil
	}
	return PlotSeries(w, responseCurveTitle, responseSeries(times, window), 0, 8)
}

// RenderResponseCurveWithSize prints the response-time curve sized to a given total width.
func RenderResponseCurveWithSize(w io.Writer, times []time.Duration, window, totalWidth, height int, useColor bool) error {
	if len(times) == 0 {
		return nil
	}
	width := 0
	if totalWidth > 0 {
		width = PlotWidthFor(totalWidth)
	}
	return PlotSeriesWithColor(w, responseCurveTitle, responseSeries(times, window), width, height, useColor)
}

const responseCurveTitle = "Response Times"

func responseSeries(times []time.Duration, window int) []Series {
	raw := ResponseSeconds(times)
	return []Series{
		{Name: "Seconds", Values: raw},
		{Name: fmt.Sprintf("Avg of %d", window), Values: MovingAverage(raw, window)},
	}
}
