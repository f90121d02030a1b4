/*
 * relaxplot.go, part of gorelax.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//Package relaxplot plots measured against back-calculated relaxation data, and the
//weighted residuals of a fit.
package relaxplot

import (
	"fmt"
	"math"
	"path/filepath"

	relax "github.com/rmera/gorelax"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

//points is a set of data with their experimental errors.
type points struct {
	plotter.XYs
	plotter.YErrors
}

type group struct {
	frq float64
	pts points
}

//groups collects, for the data type t, the measured (X) and back-calculated (Y) values
//at x, one group per field, in order of increasing field.
func groups(M *relax.Mf, x []float64, t relax.DataType) []*group {
	pred := M.BackCalc(x)
	var ret []*group
	for i, S := range M.Spins() {
		for j, d := range S.Data {
			if d.Type != t {
				continue
			}
			frq := S.Frq[d.Frq]
			var g *group
			for _, v := range ret {
				if v.frq == frq {
					g = v
				}
			}
			if g == nil {
				g = &group{frq: frq}
				ret = append(ret, g)
			}
			g.pts.XYs = append(g.pts.XYs, plotter.XY{X: d.Value, Y: pred[i][j]})
			g.pts.YErrors = append(g.pts.YErrors, struct{ Low, High float64 }{d.Error, d.Error})
		}
	}
	for i := 1; i < len(ret); i++ {
		for j := i; j > 0 && ret[j].frq < ret[j-1].frq; j-- {
			ret[j], ret[j-1] = ret[j-1], ret[j]
		}
	}
	return ret
}

//Compare returns a plot of the measured (horizontal axis) against the back-calculated
//(vertical axis) data of type t at the scaled point x, one series per field, with the
//experimental errors as error bars and the y = x line. Returns nil and an error if
//there are no data of type t.
func Compare(M *relax.Mf, x []float64, t relax.DataType) (*plot.Plot, error) {
	gr := groups(M, x, t)
	if len(gr) == 0 {
		return nil, Error{fmt.Sprintf("No %s data to plot", t), []string{"Compare"}, true}
	}
	p := plot.New()
	p.Title.Text = t.String()
	p.Title.Padding = 3 * vg.Millimeter
	p.X.Label.Text = "Measured"
	p.Y.Label.Text = "Back-calculated"
	p.Add(plotter.NewGrid())
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, g := range gr {
		s, err := plotter.NewScatter(g.pts)
		if err != nil {
			return nil, errDecorate(err, "Compare")
		}
		s.GlyphStyle.Color = plotutil.Color(i)
		s.GlyphStyle.Shape = plotutil.Shape(i)
		bars, err := plotter.NewYErrorBars(g.pts)
		if err != nil {
			return nil, errDecorate(err, "Compare")
		}
		bars.LineStyle.Color = plotutil.Color(i)
		p.Add(s, bars)
		p.Legend.Add(fmt.Sprintf("%.0f MHz", g.frq/1e6), s)
		for _, v := range g.pts.XYs {
			lo = math.Min(lo, math.Min(v.X, v.Y))
			hi = math.Max(hi, math.Max(v.X, v.Y))
		}
	}
	diag := plotter.NewFunction(func(v float64) float64 { return v })
	diag.XMin, diag.XMax = lo, hi
	diag.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
	p.Add(diag)
	p.Legend.Top = true
	p.Legend.Left = true
	return p, nil
}

//Residuals returns a plot of the weighted residuals at the scaled point x against
//the index of the datum, with the spins in order.
func Residuals(M *relax.Mf, x []float64) (*plot.Plot, error) {
	res := M.Residuals(x)
	pts := make(plotter.XYs, len(res))
	for i, v := range res {
		pts[i].X = float64(i)
		pts[i].Y = v
	}
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Weighted residuals, chi2 = %.4g", M.Func(x))
	p.X.Label.Text = "Datum"
	p.Y.Label.Text = "(obs - pred) / error"
	p.Add(plotter.NewGrid())
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, errDecorate(err, "Residuals")
	}
	s.GlyphStyle.Color = plotutil.Color(0)
	zero := plotter.NewFunction(func(float64) float64 { return 0 })
	p.Add(s, zero)
	return p, nil
}

//SaveAll saves, as PNG files in dir, the comparison plot of each data type
//present in M (R1.png, R2.png, NOE.png) and the residual plot (residuals.png).
//The side of each square plot is size.
func SaveAll(M *relax.Mf, x []float64, dir string, size vg.Length) error {
	for _, t := range []relax.DataType{relax.R1, relax.R2, relax.NOE} {
		if len(groups(M, x, t)) == 0 {
			continue
		}
		p, err := Compare(M, x, t)
		if err != nil {
			return errDecorate(err, "SaveAll")
		}
		if err := p.Save(size, size, filepath.Join(dir, t.String()+".png")); err != nil {
			return errDecorate(err, "SaveAll")
		}
	}
	p, err := Residuals(M, x)
	if err != nil {
		return errDecorate(err, "SaveAll")
	}
	if err := p.Save(size, size, filepath.Join(dir, "residuals.png")); err != nil {
		return errDecorate(err, "SaveAll")
	}
	return nil
}
