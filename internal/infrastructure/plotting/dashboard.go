package plotting

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"VirtualScreening/internal/analysis"
	"VirtualScreening/internal/domain"
	"VirtualScreening/internal/ports"
)

const (
	DefaultTitle = "Virtual Screening Dashboard"
	DefaultDPI   = 300

	trendSamples = 100
	labelShiftMW = 2.0
)

var (
	DefaultWidth  = 15 * vg.Inch
	DefaultHeight = 12 * vg.Inch

	// ErrNoRows is returned when there is nothing to draw.
	ErrNoRows = errors.New("no results to plot")

	palette = map[domain.Category]color.Color{
		domain.CategoryNatural:   color.RGBA{R: 135, G: 206, B: 235, A: 255},
		domain.CategorySynthetic: color.RGBA{R: 255, G: 165, A: 255},
	}
	trendColor = color.RGBA{R: 255, A: 255}
)

// Options controls the canvas. Zero values fall back to the defaults.
type Options struct {
	Title  string
	Width  vg.Length
	Height vg.Length
	DPI    int
}

// Dashboard renders the 2x2 comparison figure as a PNG.
type Dashboard struct {
	opts   Options
	logger *slog.Logger
}

var _ ports.DashboardRenderer = (*Dashboard)(nil)

// NewDashboard applies defaults to opts.
func NewDashboard(opts Options, logger *slog.Logger) *Dashboard {
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	if opts.DPI <= 0 {
		opts.DPI = DefaultDPI
	}
	return &Dashboard{opts: opts, logger: logger}
}

// Render draws every panel and writes the image to output. Nothing is
// written when any panel fails.
func (d *Dashboard) Render(ctx context.Context, rows []domain.ScreeningResult, output string) error {
	if len(rows) == 0 {
		return ErrNoRows
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	means, err := meanPanel(rows)
	if err != nil {
		return fmt.Errorf("mean panel: %w", err)
	}
	board, err := leaderboardPanel(rows)
	if err != nil {
		return fmt.Errorf("leaderboard panel: %w", err)
	}
	space, err := chemicalSpacePanel(rows)
	if err != nil {
		return fmt.Errorf("chemical space panel: %w", err)
	}
	trend, err := sizeTrendPanel(rows, d.logger)
	if err != nil {
		return fmt.Errorf("trend panel: %w", err)
	}

	img := vgimg.NewWith(vgimg.UseWH(d.opts.Width, d.opts.Height), vgimg.UseDPI(d.opts.DPI))
	dc := draw.New(img)

	titleHeight := vg.Points(40)
	d.drawTitle(dc, titleHeight)
	body := draw.Crop(dc, 0, 0, 0, -titleHeight)

	tiles := draw.Tiles{
		Rows:      2,
		Cols:      2,
		PadX:      vg.Points(30),
		PadY:      vg.Points(30),
		PadTop:    vg.Points(10),
		PadBottom: vg.Points(20),
		PadLeft:   vg.Points(20),
		PadRight:  vg.Points(20),
	}
	grid := [][]*plot.Plot{{means, board}, {space, trend}}
	canvases := plot.Align(grid, tiles, body)
	for j := range grid {
		for i := range grid[j] {
			grid[j][i].Draw(canvases[j][i])
		}
	}

	var buf bytes.Buffer
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(&buf); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	d.info("dashboard rendered", "path", output, "rows", len(rows))
	return nil
}

func (d *Dashboard) drawTitle(dc draw.Canvas, height vg.Length) {
	sty := plot.New().Title.TextStyle
	sty.Font.Size = vg.Points(24)
	sty.XAlign = text.XCenter
	sty.YAlign = text.YTop
	pt := vg.Point{X: (dc.Min.X + dc.Max.X) / 2, Y: dc.Max.Y - height/4}
	dc.FillText(sty, pt, d.opts.Title)
}

func meanPanel(rows []domain.ScreeningResult) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Average Binding Affinity (Lower is Better)"
	p.Y.Label.Text = "Mean Score"

	means := analysis.MeanByCategory(rows)
	names := make([]string, len(means))
	points := make(plotter.XYs, len(means))
	labels := make([]string, len(means))
	for i, m := range means {
		bars, err := plotter.NewBarChart(plotter.Values{m.Mean}, vg.Points(60))
		if err != nil {
			return nil, err
		}
		bars.Color = palette[m.Category]
		bars.XMin = float64(i)
		p.Add(bars)

		names[i] = string(m.Category)
		points[i] = plotter.XY{X: float64(i), Y: m.Mean}
		labels[i] = fmt.Sprintf("%.2f", m.Mean)
	}

	values, err := plotter.NewLabels(plotter.XYLabels{XYs: points, Labels: labels})
	if err != nil {
		return nil, err
	}
	p.Add(values)
	p.NominalX(names...)
	return p, nil
}

func leaderboardPanel(rows []domain.ScreeningResult) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Compound Leaderboard (Top Binders First)"
	p.X.Label.Text = "Binding Affinity Score"

	board := analysis.Leaderboard(rows)
	n := len(board)
	names := make([]string, n)
	for rank, r := range board {
		pos := n - 1 - rank
		bars, err := plotter.NewBarChart(plotter.Values{r.Score}, vg.Points(10))
		if err != nil {
			return nil, err
		}
		bars.Horizontal = true
		bars.Color = palette[r.Category]
		bars.XMin = float64(pos)
		p.Add(bars)
		names[pos] = r.Name
	}
	p.NominalY(names...)
	addCategoryLegend(p)
	return p, nil
}

func chemicalSpacePanel(rows []domain.ScreeningResult) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Chemical Space (MW vs LogP)"
	p.X.Label.Text = "Molecular Weight"
	p.Y.Label.Text = "LogP"
	p.Legend.Top = true

	var (
		labelXYs plotter.XYs
		names    []string
	)
	groups := analysis.ByCategory(rows)
	for _, cat := range analysis.Categories {
		var (
			xys    plotter.XYs
			scores []float64
		)
		for _, r := range groups[cat] {
			if r.MolecularWeight == nil {
				continue
			}
			xys = append(xys, plotter.XY{X: *r.MolecularWeight, Y: r.LogP})
			scores = append(scores, r.Score)
			labelXYs = append(labelXYs, plotter.XY{X: *r.MolecularWeight + labelShiftMW, Y: r.LogP})
			names = append(names, r.Name)
		}
		if len(xys) == 0 {
			continue
		}

		sc, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, err
		}
		base := draw.GlyphStyle{Color: palette[cat], Radius: vg.Points(5), Shape: draw.CircleGlyph{}}
		sc.GlyphStyle = base
		sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
			g := base
			g.Radius = scoreRadius(scores[i])
			return g
		}
		p.Add(sc)
		p.Legend.Add(string(cat), sc)
	}

	if len(labelXYs) > 0 {
		labels, err := plotter.NewLabels(plotter.XYLabels{XYs: labelXYs, Labels: names})
		if err != nil {
			return nil, err
		}
		p.Add(labels)
	}
	p.Add(plotter.NewGrid())
	return p, nil
}

func sizeTrendPanel(rows []domain.ScreeningResult, logger *slog.Logger) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Size vs Strength Correlation"
	p.X.Label.Text = "Molecular Weight"
	p.Y.Label.Text = "Binding Score"
	p.Legend.Top = true

	groups := analysis.ByCategory(rows)
	for _, cat := range analysis.Categories {
		var xys plotter.XYs
		for _, r := range groups[cat] {
			if r.MolecularWeight != nil {
				xys = append(xys, plotter.XY{X: *r.MolecularWeight, Y: r.Score})
			}
		}
		if len(xys) == 0 {
			continue
		}
		sc, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, err
		}
		sc.GlyphStyle = draw.GlyphStyle{Color: palette[cat], Radius: vg.Points(5), Shape: draw.CircleGlyph{}}
		p.Add(sc)
		p.Legend.Add(string(cat), sc)
	}

	trend, err := analysis.SizeTrend(rows)
	switch {
	case errors.Is(err, analysis.ErrInsufficientData):
		if logger != nil {
			logger.Warn("trend line skipped", "error", err)
		}
	case err != nil:
		return nil, err
	default:
		xs, ys := trend.Sample(trendSamples)
		pts := make(plotter.XYs, len(xs))
		for i := range xs {
			pts[i] = plotter.XY{X: xs[i], Y: ys[i]}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, err
		}
		line.LineStyle.Color = trendColor
		line.LineStyle.Width = vg.Points(2)
		line.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
		p.Add(line)
		p.Legend.Add("Trend", line)
	}
	p.Add(plotter.NewGrid())
	return p, nil
}

// scoreRadius maps |score| to a marker radius so marker area grows with affinity.
func scoreRadius(score float64) vg.Length {
	return vg.Points(math.Sqrt(math.Abs(score)*20) / 2)
}

func addCategoryLegend(p *plot.Plot) {
	p.Legend.Top = true
	for _, cat := range analysis.Categories {
		swatch, err := plotter.NewBarChart(plotter.Values{0}, vg.Points(6))
		if err != nil {
			continue
		}
		swatch.Color = palette[cat]
		p.Legend.Add(string(cat), swatch)
	}
}

func (d *Dashboard) info(msg string, args ...interface{}) {
	if d.logger != nil {
		d.logger.Info(msg, args...)
	}
}
