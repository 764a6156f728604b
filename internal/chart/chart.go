// Package chart renders the normalized score history of two players as a PNG.
package chart

import (
	"fmt"
	"io"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/pfrederiksen/golf-rounds/internal/analysis"
	"github.com/pfrederiksen/golf-rounds/internal/round"
)

const (
	Width  = 900
	Height = 450

	placeholderWidth  = 400
	placeholderHeight = 200
	placeholderText   = "No compared rounds"
)

var (
	colorA          = drawing.ColorFromHex("0074d9")
	colorB          = drawing.ColorFromHex("ff4136")
	colorBackground = drawing.ColorFromHex("ffffff")
	colorText       = drawing.ColorFromHex("333333")
)

// Render writes a line chart of both players' normalized scores to w.
// The X axis is the round date when every date parses and spans more than
// one day, otherwise the round's position. An empty graph renders a
// placeholder image.
func Render(w io.Writer, g *analysis.GraphData) error {
	if g == nil || g.Len() == 0 {
		return renderNoDataPlaceholder(w)
	}

	var series []chart.Series
	xAxis := chart.XAxis{
		Style: chart.Style{FontColor: colorText},
	}

	if times, ok := parseDates(g.Dates); ok {
		series = []chart.Series{
			chart.TimeSeries{Name: g.PlayerA, XValues: times, YValues: floats(g.NormalizedScoreA), Style: lineStyle(colorA)},
			chart.TimeSeries{Name: g.PlayerB, XValues: times, YValues: floats(g.NormalizedScoreB), Style: lineStyle(colorB)},
		}
		xAxis.Name = "Date"
		xAxis.ValueFormatter = chart.TimeValueFormatterWithFormat("Jan 2")
	} else {
		xs := make([]float64, g.Len())
		for i := range xs {
			xs[i] = float64(i + 1)
		}
		series = []chart.Series{
			chart.ContinuousSeries{Name: g.PlayerA, XValues: xs, YValues: floats(g.NormalizedScoreA), Style: lineStyle(colorA)},
			chart.ContinuousSeries{Name: g.PlayerB, XValues: xs, YValues: floats(g.NormalizedScoreB), Style: lineStyle(colorB)},
		}
		xAxis.Name = "Round"
		xAxis.Range = &chart.ContinuousRange{Min: 0, Max: float64(g.Len() + 1)}
	}

	low, high := scoreBounds(g)
	graph := chart.Chart{
		Title:  fmt.Sprintf("%s vs %s (normalized to 18 holes)", g.PlayerA, g.PlayerB),
		Width:  Width,
		Height: Height,
		Background: chart.Style{
			FillColor: colorBackground,
			Padding:   chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		Canvas: chart.Style{
			FillColor: colorBackground,
		},
		XAxis: xAxis,
		YAxis: chart.YAxis{
			Name:  "Score",
			Style: chart.Style{FontColor: colorText},
			Range: &chart.ContinuousRange{Min: low, Max: high},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	return nil
}

func lineStyle(c drawing.Color) chart.Style {
	return chart.Style{
		StrokeColor: c,
		StrokeWidth: 2,
		DotColor:    c,
		DotWidth:    4,
	}
}

// parseDates returns the round dates as times, or false when any date does
// not parse or all dates fall on the same day
func parseDates(dates []string) ([]time.Time, bool) {
	times := make([]time.Time, len(dates))
	for i, d := range dates {
		t := round.ParseDate(d)
		if t.IsZero() {
			return nil, false
		}
		times[i] = t
	}

	for _, t := range times[1:] {
		if !t.Equal(times[0]) {
			return times, true
		}
	}
	return nil, false
}

func floats(values []int) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}

// scoreBounds pads the score range so a single value still spans the axis
func scoreBounds(g *analysis.GraphData) (float64, float64) {
	low, high := 0, 0
	first := true
	for _, scores := range [][]int{g.NormalizedScoreA, g.NormalizedScoreB} {
		for _, s := range scores {
			if first || s < low {
				low = s
			}
			if first || s > high {
				high = s
			}
			first = false
		}
	}
	return float64(low - 5), float64(high + 5)
}

// renderNoDataPlaceholder draws a centered message on a blank canvas.
// It uses the renderer directly because a chart requires at least one series.
func renderNoDataPlaceholder(w io.Writer) error {
	r, err := chart.PNG(placeholderWidth, placeholderHeight)
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}

	font, err := chart.GetDefaultFont()
	if err != nil {
		return fmt.Errorf("loading font: %w", err)
	}

	r.SetFillColor(colorBackground)
	r.MoveTo(0, 0)
	r.LineTo(placeholderWidth, 0)
	r.LineTo(placeholderWidth, placeholderHeight)
	r.LineTo(0, placeholderHeight)
	r.Close()
	r.Fill()

	r.SetFont(font)
	r.SetFontColor(colorText)
	r.SetFontSize(12.0)
	tb := r.MeasureText(placeholderText)
	r.Text(placeholderText, (placeholderWidth-tb.Width())/2, (placeholderHeight+tb.Height())/2)

	if err := r.Save(w); err != nil {
		return fmt.Errorf("writing placeholder: %w", err)
	}
	return nil
}
