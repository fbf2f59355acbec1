package sim

import (
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// New2DPlot creates a new scatter plot of the simulation from three data sources:
// truth:    true trajectory values
// measured: measurement values
// estimate: filter estimate values
// Each matrix stores one 2D point per row.
// It returns error if either of the supplied data matrices is nil, does not
// have at least 2 columns or if the plot fails to be created.
func New2DPlot(truth, measured, estimate *mat.Dense) (*plot.Plot, error) {
	if truth == nil || measured == nil || estimate == nil {
		return nil, fmt.Errorf("invalid data supplied")
	}

	_, ct := truth.Dims()
	_, cm := measured.Dims()
	_, ce := estimate.Dims()

	if ct < 2 || cm < 2 || ce < 2 {
		return nil, fmt.Errorf("invalid data dimensions")
	}

	p := plot.New()

	p.Title.Text = "Trajectory"
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Y"

	legend := plot.NewLegend()
	legend.Top = true
	p.Legend = legend

	// Make a scatter plotter for the true trajectory
	truthScatter, err := plotter.NewScatter(makePoints(truth))
	if err != nil {
		return nil, err
	}
	truthScatter.GlyphStyle.Color = color.RGBA{R: 255, B: 128, A: 255}
	truthScatter.Shape = draw.PyramidGlyph{}
	truthScatter.GlyphStyle.Radius = vg.Points(3)

	p.Add(truthScatter)
	p.Legend.Add("truth", truthScatter)

	// Make a scatter plotter for measurement data
	measScatter, err := plotter.NewScatter(makePoints(measured))
	if err != nil {
		return nil, err
	}
	measScatter.GlyphStyle.Color = color.RGBA{G: 255, A: 128}
	measScatter.GlyphStyle.Radius = vg.Points(3)

	p.Add(measScatter)
	p.Legend.Add("measurement", measScatter)

	// Make a scatter plotter for filter estimates
	estScatter, err := plotter.NewScatter(makePoints(estimate))
	if err != nil {
		return nil, fmt.Errorf("failed to create scatter: %v", err)
	}
	estScatter.GlyphStyle.Color = color.RGBA{R: 169, G: 169, B: 169}
	estScatter.Shape = draw.CrossGlyph{}
	estScatter.GlyphStyle.Radius = vg.Points(3)

	p.Add(estScatter)
	p.Legend.Add("estimate", estScatter)

	return p, nil
}

func makePoints(m *mat.Dense) plotter.XYs {
	r, _ := m.Dims()
	pts := make(plotter.XYs, r)
	for i := 0; i < r; i++ {
		pts[i].X = m.At(i, 0)
		pts[i].Y = m.At(i, 1)
	}

	return pts
}
