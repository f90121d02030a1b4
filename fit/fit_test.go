/*
 * fit_test.go, part of gorelax.
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

package fit

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"testing"

	relax "github.com/rmera/gorelax"
	"github.com/rmera/gorelax/diffusion"
	"github.com/rmera/gorelax/jw"
	v3 "github.com/rmera/gorelax/v3"
)

var testFrqs = []float64{500e6, 600e6, 800e6}

//bond vectors spread over the sphere, so every orientation of a tensor is determined.
var bonds = [][]float64{
	{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {1, 1, 0},
	{1, 0, 1}, {0, 1, 1}, {1, -1, 1}, {-1, 1, 1},
}

//synthetic returns spins whose data are back-calculated from their own values,
//so the minimum chi2 is zero at those values.
func synthetic(Te *testing.T, setup relax.Setup) relax.Setup {
	for i, S := range setup.Spins {
		for _, f := range testFrqs {
			S.AddDatum(relax.R1, f, 1, 0.02)
			S.AddDatum(relax.R2, f, 1, 0.2)
			S.AddDatum(relax.NOE, f, 1, 0.02)
		}
		if S.XH == nil {
			S.XH, _ = v3.NewMatrix(append([]float64(nil), bonds[i%len(bonds)]...))
		}
	}
	M, err := relax.NewMf(setup, nil)
	if err != nil {
		Te.Fatal(err)
	}
	pred := M.BackCalc(M.X0())
	for i, S := range setup.Spins {
		for j := range S.Data {
			S.Data[j].Value = pred[i][j]
		}
	}
	return setup
}

func TestSingleSpin(Te *testing.T) {
	for _, method := range []Method{Newton, BFGS, LBFGS} {
		S := relax.NewSpin("1", jw.Original, relax.S2, relax.Te, relax.Rex)
		want := []float64{0.82, 45e-12, 1.5 / math.Pow(2*math.Pi*testFrqs[0], 2)}
		S.Values = append([]float64(nil), want...)
		T, _ := diffusion.NewTensor(diffusion.Sphere, 8e-9)
		setup := synthetic(Te, relax.Setup{Mode: relax.SingleSpin, Tensor: T, Spins: []*relax.Spin{S}})
		M, err := relax.NewMf(setup, nil)
		if err != nil {
			Te.Fatal(err)
		}
		x0 := M.Scale(nil, []float64{0.7, 80e-12, 0.5 / math.Pow(2*math.Pi*testFrqs[0], 2)})
		opts := DefaultOptions()
		opts.Method(method)
		opts.GradientThreshold(1e-9)
		res, err := Minimise(M, x0, opts)
		if err != nil {
			Te.Fatal(err)
		}
		for i, v := range res.SpinValues[0] {
			if math.Abs(v-want[i]) > 1e-4*math.Abs(want[i]) {
				Te.Errorf("%s: parameter %s %g, expected %g", method, S.Params[i], v, want[i])
			}
		}
		if res.Chi2 > 1e-8 {
			Te.Errorf("%s: chi2 %g at the minimum", method, res.Chi2)
		}
		if res.Tensor.Params[0] != 8e-9 {
			Te.Errorf("%s: the fixed tensor changed to %v", method, res.Tensor.Params)
		}
		fmt.Println(method, res.Status, res.Iterations, "iterations", res.FuncEvals, "evaluations; chi2", res.Chi2, "reduced", res.ReducedChi2)
	}
}

func TestJointSpheroid(Te *testing.T) {
	T, _ := diffusion.NewTensor(diffusion.Spheroid, 9e-9, 6e6, 0.8, 1.9)
	var spins []*relax.Spin
	for i := range bonds {
		S := relax.NewSpin(fmt.Sprint(i), jw.Original, relax.S2, relax.Te)
		S.Values = []float64{0.78 + 0.02*float64(i), (30 + 5*float64(i)) * 1e-12}
		spins = append(spins, S)
	}
	setup := synthetic(Te, relax.Setup{Mode: relax.Joint, Tensor: T, Spins: spins})
	var buf bytes.Buffer
	mopts := relax.DefaultOptions()
	mopts.Logger(log.New(&buf, "", 0))
	M, err := relax.NewMf(setup, mopts)
	if err != nil {
		Te.Fatal(err)
	}
	want := M.Unscale(nil, M.X0())
	x0 := M.X0()
	for i := range x0 {
		x0[i] *= 1.01
	}
	opts := DefaultOptions()
	opts.Method(Newton)
	opts.GradientThreshold(1e-8)
	opts.MaxIterations(200)
	opts.Logger(log.New(&buf, "", 0))
	res, err := Minimise(M, x0, opts)
	if err != nil {
		Te.Fatal(err)
	}
	for i, v := range res.Params {
		if math.Abs(v-want[i]) > 1e-3*math.Abs(want[i]) {
			Te.Errorf("Parameter %d: %g, expected %g", i, v, want[i])
		}
	}
	if !strings.Contains(buf.String(), "fit: iteration 1 ") {
		Te.Errorf("No trace of the iterations in the log")
	}
	if math.Abs(res.ResidualMean) > 1e-3 || res.ResidualRMS > 1e-3 {
		Te.Errorf("Residual mean %g RMS %g at the minimum", res.ResidualMean, res.ResidualRMS)
	}
	fmt.Println("Joint spheroid:", res.Status, res.Iterations, "iterations, tensor", res.Tensor.Params)
}

func TestNotConverged(Te *testing.T) {
	S := relax.NewSpin("1", jw.Original, relax.S2, relax.Te)
	S.Values = []float64{0.8, 50e-12}
	T, _ := diffusion.NewTensor(diffusion.Sphere, 8e-9)
	setup := synthetic(Te, relax.Setup{Mode: relax.SingleSpin, Tensor: T, Spins: []*relax.Spin{S}})
	M, err := relax.NewMf(setup, nil)
	if err != nil {
		Te.Fatal(err)
	}
	opts := DefaultOptions()
	opts.Method(NelderMead)
	opts.MaxIterations(2)
	res, err := Minimise(M, M.Scale(nil, []float64{0.5, 200e-12}), opts)
	if err == nil {
		Te.Fatal("No error after 2 simplex iterations")
	}
	if !errors.Is(err, ErrNotConverged) {
		Te.Errorf("Unexpected error %v", err)
	}
	if e, ok := err.(Error); !ok || e.Critical() || res == nil {
		Te.Errorf("Expected a non-critical error with a result, got %v", err)
	}
	if _, err := Minimise(M, []float64{1}, nil); !errors.Is(err, relax.ErrSetup) {
		Te.Errorf("Wrong starting point gave %v", err)
	}
}

func TestParseMethod(Te *testing.T) {
	for _, m := range []Method{Newton, BFGS, LBFGS, NelderMead} {
		if p, err := ParseMethod(m.String()); err != nil || p != m {
			Te.Errorf("%s parsed as %s, %v", m, p, err)
		}
	}
	if _, err := ParseMethod("annealing"); !errors.Is(err, relax.ErrInvalidParamType) {
		Te.Errorf("Unknown method gave %v", err)
	}
}
