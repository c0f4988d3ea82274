package view

import (
	"math"
	"strings"

	"github.com/2beens/gymlog/internal/client"
)

const (
	DefaultChartWidth  = 700
	DefaultChartHeight = 220

	chartPad        = 24
	chartMinMaxY    = 10
	axisStroke      = "#23273a"
	axisStrokeWidth = 2
	lineStroke      = "#5eead4"
	lineStrokeWidth = 3
	lineFill        = "none"
)

// Surface is the drawing area in pixels. Non positive sides fall back to the defaults.
type Surface struct {
	Width  int
	Height int
}

func (s Surface) resolved() Surface {
	if s.Width <= 0 {
		s.Width = DefaultChartWidth
	}
	if s.Height <= 0 {
		s.Height = DefaultChartHeight
	}
	return s
}

type Point struct {
	X float64
	Y float64
}

type Line struct {
	X1, Y1, X2, Y2 float64
	Stroke         string
	StrokeWidth    int
}

type Polyline struct {
	Points      []Point
	Stroke      string
	StrokeWidth int
	Fill        string
}

// PointsAttr is the svg points attribute, "x,y x,y ...".
func (p Polyline) PointsAttr() string {
	parts := make([]string, 0, len(p.Points))
	for _, pt := range p.Points {
		parts = append(parts, FormatNumber(pt.X)+","+FormatNumber(pt.Y))
	}
	return strings.Join(parts, " ")
}

// ChartView holds the chart primitives. An Empty chart draws nothing.
type ChartView struct {
	Width  int
	Height int
	Empty  bool
	Axis   Line
	Series Polyline
}

// RenderChart lays out daily volumes left to right in input order.
// The y scale starts at 0 and tops at the largest volume, but never below 10.
func RenderChart(dailies []client.Daily, surface Surface) ChartView {
	surface = surface.resolved()
	view := ChartView{
		Width:  surface.Width,
		Height: surface.Height,
	}
	if len(dailies) == 0 {
		view.Empty = true
		return view
	}

	w := float64(surface.Width)
	h := float64(surface.Height)
	const pad = float64(chartPad)

	maxY := float64(chartMinMaxY)
	for _, d := range dailies {
		maxY = math.Max(maxY, d.Volume)
	}
	const minY = 0.0

	steps := math.Max(float64(len(dailies)-1), 1)
	points := make([]Point, 0, len(dailies))
	for i, d := range dailies {
		points = append(points, Point{
			X: pad + (float64(i)/steps)*(w-2*pad),
			Y: h - pad - ((d.Volume-minY)/(maxY-minY))*(h-2*pad),
		})
	}

	view.Axis = Line{
		X1:          pad,
		Y1:          h - pad,
		X2:          w - pad,
		Y2:          h - pad,
		Stroke:      axisStroke,
		StrokeWidth: axisStrokeWidth,
	}
	view.Series = Polyline{
		Points:      points,
		Stroke:      lineStroke,
		StrokeWidth: lineStrokeWidth,
		Fill:        lineFill,
	}
	return view
}
