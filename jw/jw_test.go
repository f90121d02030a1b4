/*
 * jw_test.go, part of gorelax.
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

package jw

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/rmera/gorelax/diffusion"
	"gonum.org/v1/gonum/diff/fd"
)

//pTe is Te, which the test functions shadow.
const pTe = Te

//In these tests tm is of order 1, the formulas don't depend on the units.
var testOmegas = []float64{0, 0.4, 1.1, 2, 3.1}

var testTensors = map[diffusion.Kind][]float64{
	diffusion.Sphere:    {1.3},
	diffusion.Spheroid:  {1.3, 0.08, 0.9, 2.2},
	diffusion.Ellipsoid: {1.3, 0.06, 0.35, 0.5, 1.2, 2.7},
}

var legalSets = []struct {
	eq     Equation
	set    []Param
	values []float64
}{
	{Original, nil, nil},
	{Original, []Param{S2}, []float64{0.82}},
	{Original, []Param{S2, Te}, []float64{0.82, 0.07}},
	{Original, []Param{Te, S2}, []float64{0.07, 0.82}},
	{Extended, []Param{S2f, S2, Ts}, []float64{0.9, 0.7, 0.25}},
	{Extended, []Param{S2f, Tf, S2, Ts}, []float64{0.9, 0.02, 0.7, 0.25}},
	{Extended2, []Param{S2f, S2s, Ts}, []float64{0.9, 0.75, 0.25}},
	{Extended2, []Param{S2f, Tf, S2s, Ts}, []float64{0.9, 0.02, 0.75, 0.25}},
}

//jFunc returns a function of the concatenated tensor and internal parameters that
//evaluates J at the frequency index j, through a freshly computed geometry.
func jFunc(F *Form, G *diffusion.Geometry, v [3]float64, j int) func([]float64) float64 {
	nd := G.Kind.NParams()
	points := NewPoints(len(testOmegas), F.NSlots())
	return func(x []float64) float64 {
		G.Compute(x[:nd], v)
		F.Eval(points, testOmegas, G, x[nd:])
		return points[j].V
	}
}

func TestGradientHessian(Te *testing.T) {
	v := [3]float64{0.48, -0.6, 0.64}
	for kind, tensor := range testTensors {
		for _, c := range legalSets {
			F, err := NewForm(kind, c.eq, c.set)
			if err != nil {
				Te.Fatal(err)
			}
			nd := kind.NParams()
			n := nd + len(c.set)
			diff := make([]int, nd)
			internal := make([]int, len(c.set))
			for i := range diff {
				diff[i] = i
			}
			for i := range internal {
				internal[i] = nd + i
			}
			if err := F.Bind(n, diff, internal); err != nil {
				Te.Fatal(err)
			}
			x := append(append([]float64(nil), tensor...), c.values...)
			G := diffusion.NewGeometry(kind)
			G.Compute(tensor, v)
			points := NewPoints(len(testOmegas), n)
			F.Eval(points, testOmegas, G, c.values)
			fmt.Println(kind, c.eq, c.set, "J:", points[0].V, points[2].V)
			for j := range testOmegas {
				num := fd.Gradient(nil, jFunc(F, diffusion.NewGeometry(kind), v, j), x, &fd.Settings{Formula: fd.Central, Step: 1e-6})
				for a := range num {
					if math.Abs(num[a]-points[j].D[a]) > 1e-6*(1+math.Abs(num[a])) {
						Te.Errorf("%s %s %v w=%v: dJ/dx%d analytic %v numeric %v", kind, c.eq, c.set, testOmegas[j], a, points[j].D[a], num[a])
					}
				}
				for a := 0; a < n; a++ {
					ga := func(y []float64) float64 {
						p := NewPoints(len(testOmegas), n)
						g := diffusion.NewGeometry(kind)
						g.Compute(y[:nd], v)
						F2, _ := NewForm(kind, c.eq, c.set)
						F2.Bind(n, diff, internal)
						F2.Eval(p, testOmegas, g, y[nd:])
						return p[j].D[a]
					}
					row := fd.Gradient(nil, ga, x, &fd.Settings{Formula: fd.Central, Step: 1e-6})
					for b := range row {
						if points[j].D2[a][b] != points[j].D2[b][a] {
							Te.Errorf("Hessian not symmetric at %d,%d", a, b)
						}
						if math.Abs(row[b]-points[j].D2[a][b]) > 1e-5*(1+math.Abs(row[b])) {
							Te.Errorf("%s %s %v w=%v: d2J/dx%ddx%d analytic %v numeric %v", kind, c.eq, c.set, testOmegas[j], a, b, points[j].D2[a][b], row[b])
						}
					}
				}
			}
		}
	}
}

func TestIsotropicClosedForm(Te *testing.T) {
	tm, s2 := 1e-8, 0.8
	F, err := NewForm(diffusion.Sphere, Original, []Param{S2})
	if err != nil {
		Te.Fatal(err)
	}
	G := diffusion.NewGeometry(diffusion.Sphere)
	G.Compute([]float64{tm}, [3]float64{})
	w := Frequencies(nil, 600e6, 2.7126e7/26.7522212e7)
	points := NewPoints(5, F.NSlots())
	F.Eval(points, w, G, []float64{s2})
	for j, om := range w {
		exp := 0.4 * s2 * tm / (1 + om*om*tm*tm)
		if math.Abs(points[j].V-exp) > 1e-12*exp {
			Te.Errorf("J(%v) = %v, expected %v", om, points[j].V, exp)
		}
		if d := 0.4 * tm / (1 + om*om*tm*tm); math.Abs(points[j].D[0]-d) > 1e-12*d {
			Te.Errorf("dJ/dS2(%v) = %v, expected %v", om, points[j].D[0], d)
		}
	}
}

func TestFastMotionLimit(Te *testing.T) {
	kind := diffusion.Spheroid
	G := diffusion.NewGeometry(kind)
	G.Compute(testTensors[kind], [3]float64{0.6, 0, 0.8})
	full, _ := NewForm(kind, Extended, []Param{S2f, Tf, S2, Ts})
	reduced, _ := NewForm(kind, Extended, []Param{S2f, S2, Ts})
	pf := NewPoints(len(testOmegas), full.NSlots())
	pr := NewPoints(len(testOmegas), reduced.NSlots())
	full.Eval(pf, testOmegas, G, []float64{0.9, 0, 0.7, 0.25})
	reduced.Eval(pr, testOmegas, G, []float64{0.9, 0.7, 0.25})
	for j := range testOmegas {
		if pf[j].V != pr[j].V {
			Te.Errorf("tf=0 gives J=%v, the reduced set %v", pf[j].V, pr[j].V)
		}
		//S2 and ts derivatives
		if pf[j].D[2] != pr[j].D[1] || pf[j].D[3] != pr[j].D[2] {
			Te.Errorf("tf=0 derivatives differ from the reduced set at w=%v", testOmegas[j])
		}
	}
}

func TestFixedDiffusionSlots(Te *testing.T) {
	kind := diffusion.Ellipsoid
	F, _ := NewForm(kind, Original, []Param{S2, pTe})
	//Rex-like foreign slot at 0, te fixed.
	if err := F.Bind(3, nil, []int{2, -1}); err != nil {
		Te.Fatal(err)
	}
	G := diffusion.NewGeometry(kind)
	G.Compute(testTensors[kind], [3]float64{0, 0.6, 0.8})
	p := NewPoints(1, 3)
	F.Eval(p, []float64{1}, G, []float64{0.8, 0.05})
	if p[0].D[0] != 0 || p[0].D[1] != 0 || p[0].D[2] == 0 {
		Te.Errorf("Wrong slots filled: %v", p[0].D)
	}
	if err := F.Bind(3, nil, []int{2, 2}); err == nil {
		Te.Error("Bind accepted a repeated slot")
	}
}

func TestInvalidSets(Te *testing.T) {
	bad := []struct {
		eq  Equation
		set []Param
	}{
		{Original, []Param{pTe}},
		{Original, []Param{S2, S2}},
		{Original, []Param{S2, Ts}},
		{Extended, []Param{S2f, S2}},
		{Extended, []Param{S2f, S2s, Ts}},
		{Extended, []Param{Tf, S2, Ts}},
		{Extended2, []Param{S2f, S2, Ts}},
	}
	for _, b := range bad {
		_, err := NewForm(diffusion.Sphere, b.eq, b.set)
		if !errors.Is(err, ErrInvalidParamSet) {
			Te.Errorf("%s %v: expected an invalid set error, got %v", b.eq, b.set, err)
		}
	}
	if _, err := NewForm(diffusion.Kind(7), Original, nil); !errors.Is(err, ErrUnsupported) {
		Te.Errorf("Unknown kind gave %v", err)
	}
	if _, err := NewForm(diffusion.Sphere, Original, []Param{Param(42)}); !errors.Is(err, ErrInvalidParamType) {
		Te.Errorf("Unknown parameter gave %v", err)
	}
	if _, err := ParseEquation("mf_ext3"); !errors.Is(err, ErrInvalidParamType) {
		Te.Errorf("Unknown equation gave %v", err)
	}
}
