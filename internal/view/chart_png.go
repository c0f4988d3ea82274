package view

import (
	"bytes"
	"fmt"
	"math"

	"github.com/2beens/gymlog/internal/client"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const maxPNGTicks = 7

// RenderChartPNG draws the same daily volume series as RenderChart into a PNG image.
// Dates become x axis labels.
func RenderChartPNG(dailies []client.Daily, surface Surface) ([]byte, error) {
	surface = surface.resolved()
	if len(dailies) == 0 {
		return nil, fmt.Errorf("no daily volumes to draw")
	}

	xs := make([]float64, 0, len(dailies))
	ys := make([]float64, 0, len(dailies))
	maxY := float64(chartMinMaxY)
	for i, d := range dailies {
		xs = append(xs, float64(i))
		ys = append(ys, d.Volume)
		maxY = math.Max(maxY, d.Volume)
	}
	// a single point has no x range, go-chart refuses to draw it
	maxX := math.Max(float64(len(dailies)-1), 1)
	if len(dailies) == 1 {
		xs = append(xs, maxX)
		ys = append(ys, ys[0])
	}

	ch := chart.Chart{
		Width:  surface.Width,
		Height: surface.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: chartPad, Left: chartPad, Right: chartPad, Bottom: chartPad},
		},
		XAxis: chart.XAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: maxX},
			Ticks: dateTicks(dailies),
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: maxY},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "volume",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: drawing.ColorFromHex(lineStroke[1:]),
					StrokeWidth: lineStrokeWidth,
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render chart png: %w", err)
	}
	return buf.Bytes(), nil
}

func dateTicks(dailies []client.Daily) []chart.Tick {
	step := 1
	if len(dailies) > maxPNGTicks {
		step = int(math.Ceil(float64(len(dailies)) / maxPNGTicks))
	}
	ticks := make([]chart.Tick, 0, maxPNGTicks+1)
	for i := 0; i < len(dailies); i += step {
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: dailies[i].Date})
	}
	return ticks
}
