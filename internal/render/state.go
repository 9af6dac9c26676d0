// Package render draws accident locations for one state and year as a
// scatter map scaled to the data's coordinate ranges.
package render

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/couchcryptid/fars-report/internal/domain"
	"github.com/couchcryptid/fars-report/internal/observability"
)

// StatePlotter renders one state's accident locations for a single year.
type StatePlotter struct {
	source  domain.RecordSource
	outDir  string
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates a StatePlotter writing maps into outDir.
func New(source domain.RecordSource, outDir string, logger *slog.Logger, metrics *observability.Metrics) *StatePlotter {
	return &StatePlotter{
		source:  source,
		outDir:  outDir,
		logger:  logger,
		metrics: metrics,
	}
}

// PlotState draws every geolocated accident in the given state and year
// as a point marker and writes the map as a PNG under the output
// directory, returning the written path. A read failure for the year
// propagates unchanged, and a state code absent from the year's data is
// a *domain.InvalidStateError. An empty path with a nil error means the
// state is present but has nothing plottable; that outcome is
// informational, not an error.
func (p *StatePlotter) PlotState(ctx context.Context, stateNum, year int) (string, error) {
	out := filepath.Join(p.outDir, fmt.Sprintf("accidents_state%02d_%d.png", stateNum, year))
	return p.PlotStateFile(ctx, stateNum, year, out)
}

// PlotStateFile is PlotState with an explicit output path.
func (p *StatePlotter) PlotStateFile(ctx context.Context, stateNum, year int, outPath string) (string, error) {
	set, err := p.source.Read(ctx, domain.Filename(year))
	if err != nil {
		return "", err
	}

	if !set.HasState(stateNum) {
		return "", &domain.InvalidStateError{StateNum: stateNum, Year: year}
	}

	records := set.FilterState(stateNum)
	points := sanitizeCoordinates(records)
	if len(points) == 0 {
		p.logger.Info("no accidents to plot",
			"state", stateNum,
			"year", year,
			"rows", len(records),
		)
		return "", nil
	}

	if err := p.draw(points, stateNum, year, outPath); err != nil {
		return "", err
	}

	p.metrics.PlotsRendered.Inc()
	p.logger.Info("state map rendered",
		"state", stateNum,
		"year", year,
		"points", len(points),
		"path", outPath,
	)
	return outPath, nil
}

// sanitizeCoordinates drops rows carrying FARS missing-coordinate
// sentinels. A sentinel in either coordinate excludes the whole row.
func sanitizeCoordinates(records []domain.AccidentRecord) plotter.XYs {
	points := make(plotter.XYs, 0, len(records))
	for _, rec := range records {
		if !rec.HasCoordinates() {
			continue
		}
		points = append(points, plotter.XY{X: rec.Longitude, Y: rec.Latitude})
	}
	return points
}

func (p *StatePlotter) draw(points plotter.XYs, stateNum, year int, outPath string) error {
	pl := plot.New()
	pl.Title.Text = fmt.Sprintf("Traffic fatalities, state %d, %d", stateNum, year)
	pl.X.Label.Text = "Longitude"
	pl.Y.Label.Text = "Latitude"

	scatter, err := plotter.NewScatter(points)
	if err != nil {
		return fmt.Errorf("build scatter: %w", err)
	}
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	scatter.GlyphStyle.Radius = vg.Points(1.5)
	scatter.GlyphStyle.Color = color.RGBA{R: 0xc0, G: 0x20, B: 0x20, A: 0xff}

	pl.Add(plotter.NewGrid(), scatter)

	// Scale the canvas to the sanitized coordinate ranges with a small
	// margin so boundary points do not sit on the frame.
	minX, maxX, minY, maxY := bounds(points)
	padX := pad(minX, maxX)
	padY := pad(minY, maxY)
	pl.X.Min, pl.X.Max = minX-padX, maxX+padX
	pl.Y.Min, pl.Y.Max = minY-padY, maxY+padY

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create plot directory: %w", err)
		}
	}
	if err := pl.Save(7*vg.Inch, 7*vg.Inch, outPath); err != nil {
		return fmt.Errorf("save plot %s: %w", outPath, err)
	}
	return nil
}

func bounds(points plotter.XYs) (minX, maxX, minY, maxY float64) {
	minX, maxX = points[0].X, points[0].X
	minY, maxY = points[0].Y, points[0].Y
	for _, pt := range points[1:] {
		minX = min(minX, pt.X)
		maxX = max(maxX, pt.X)
		minY = min(minY, pt.Y)
		maxY = max(maxY, pt.Y)
	}
	return minX, maxX, minY, maxY
}

// pad returns a 5% range margin, with a floor so a single-point plot
// still has a visible extent.
func pad(lo, hi float64) float64 {
	p := (hi - lo) * 0.05
	if p < 0.1 {
		return 0.1
	}
	return p
}
