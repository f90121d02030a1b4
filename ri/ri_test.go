/*
 * ri_test.go, part of gorelax.
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

package ri

import (
	"fmt"
	"math"
	"testing"

	"github.com/rmera/gorelax/diffusion"
	"github.com/rmera/gorelax/jw"
	"gonum.org/v1/gonum/diff/fd"
)

var nitrogen = Constants{H: 6.62606876e-34, Mu0: 4 * math.Pi * 1e-7, GH: 26.7522212e7, GX: -2.7126e7}

const frq = 600e6

//Slots: 0 S2 (scaled by 1), 1 te (ps), 2 r (1e-10 m), 3 CSA (ppm), 4 Rex (scaled by 1/w^2).
var scale = []float64{1, 1e-12, 1e-10, 1e-6, 1 / ((2 * math.Pi * frq) * (2 * math.Pi * frq))}

//rates evaluates R1, R2 and the NOE at the scaled point x.
func rates(x []float64) (r1, r2, noe *Rate) {
	p := make([]float64, len(x))
	for i := range x {
		p[i] = x[i] * scale[i]
	}
	G := diffusion.NewGeometry(diffusion.Sphere)
	G.Compute([]float64{8e-9}, [3]float64{})
	F, err := jw.NewForm(diffusion.Sphere, jw.Original, []jw.Param{jw.S2, jw.Te})
	if err != nil {
		panic(err)
	}
	if err := F.Bind(5, nil, []int{0, 1}); err != nil {
		panic(err)
	}
	w := jw.Frequencies(nil, frq, nitrogen.Ratio())
	J := jw.NewPoints(5, 5)
	F.Eval(J, w, G, p[:2])
	in := &Interaction{RSlot: 2, CSASlot: 3}
	in.D, in.Dr, in.Drr = nitrogen.Dipolar(p[2])
	in.C, in.Cc, in.Ccc = CSA(w[2], p[3])
	sigma := NewRate(5)
	r1, r2, noe = NewRate(5), NewRate(5), NewRate(5)
	Combine(r1, J, &R1Dip, &R1CSA, in)
	Combine(r2, J, &R2Dip, &R2CSA, in)
	AddRex(r2, p[4], frq, 4)
	Combine(sigma, J, &NOEDip, &NOECSA, in)
	NOE(noe, sigma, r1, nitrogen.NOEFactor())
	//back to the scaled parameters
	for _, r := range []*Rate{r1, r2, noe} {
		for a := range r.D {
			r.D[a] *= scale[a]
			for b := range r.D2[a] {
				r.D2[a][b] *= scale[a] * scale[b]
			}
		}
	}
	return
}

func TestRatesDerivatives(Te *testing.T) {
	x := []float64{0.8, 50, 1.02, -172, 2}
	r1, r2, noe := rates(x)
	fmt.Println("R1", r1.V, "R2", r2.V, "NOE", noe.V)
	if r1.V < 0.5 || r1.V > 5 || r2.V < 5 || r2.V > 30 || noe.V < 0 || noe.V > 1 {
		Te.Errorf("Rates out of the plausible range: %v %v %v", r1.V, r2.V, noe.V)
	}
	pick := []func(x []float64) *Rate{
		func(x []float64) *Rate { r, _, _ := rates(x); return r },
		func(x []float64) *Rate { _, r, _ := rates(x); return r },
		func(x []float64) *Rate { _, _, r := rates(x); return r },
	}
	names := []string{"R1", "R2", "NOE"}
	settings := &fd.Settings{Formula: fd.Central, Step: 1e-6}
	for i, get := range pick {
		R := get(x)
		num := fd.Gradient(nil, func(y []float64) float64 { return get(y).V }, x, settings)
		for a := range num {
			if math.Abs(num[a]-R.D[a]) > 1e-6*(math.Abs(num[a])+1e-3*math.Abs(R.V)) {
				Te.Errorf("%s: d/dx%d analytic %v numeric %v", names[i], a, R.D[a], num[a])
			}
		}
		for a := range num {
			row := fd.Gradient(nil, func(y []float64) float64 { return get(y).D[a] }, x, settings)
			for b := range row {
				if R.D2[a][b] != R.D2[b][a] {
					Te.Errorf("%s: Hessian not symmetric", names[i])
				}
				if math.Abs(row[b]-R.D2[a][b]) > 1e-5*(math.Abs(row[b])+1e-3*math.Abs(R.V)) {
					Te.Errorf("%s: d2/dx%ddx%d analytic %v numeric %v", names[i], a, b, R.D2[a][b], row[b])
				}
			}
		}
	}
	//Rex is linear and only in R2
	if r1.D[4] != 0 || noe.D[4] != 0 || r2.D2[4][4] != 0 || r2.D2[4][2] != 0 || r2.D2[4][3] != 0 {
		Te.Error("Rex enters where it shouldn't")
	}
}

func TestDipolar(Te *testing.T) {
	d, _, _ := nitrogen.Dipolar(1.02e-10)
	//(mu0/4pi hbar gH gN / r^3)^2 / 4, about 1.3e9 for an amide bond.
	fmt.Println("Dipolar constant", d)
	if d < 1.2e9 || d > 1.4e9 {
		Te.Errorf("Dipolar constant %v out of range", d)
	}
}

func TestCombineScratch(Te *testing.T) {
	G := diffusion.NewGeometry(diffusion.Sphere)
	G.Compute([]float64{8e-9}, [3]float64{})
	F, err := jw.NewForm(diffusion.Sphere, jw.Original, []jw.Param{jw.S2, jw.Te})
	if err != nil {
		Te.Fatal(err)
	}
	if err := F.Bind(5, nil, []int{0, 1}); err != nil {
		Te.Fatal(err)
	}
	w := jw.Frequencies(nil, frq, nitrogen.Ratio())
	J := jw.NewPoints(5, 5)
	F.Eval(J, w, G, []float64{0.8, 50e-12})
	in := NewInteraction(5)
	in.RSlot, in.CSASlot = 2, 3
	in.D, in.Dr, in.Drr = nitrogen.Dipolar(1.02e-10)
	in.C, in.Cc, in.Ccc = CSA(w[2], -172e-6)
	fresh := &Interaction{RSlot: 2, CSASlot: 3, D: in.D, Dr: in.Dr, Drr: in.Drr, C: in.C, Cc: in.Cc, Ccc: in.Ccc}
	r, r0 := NewRate(5), NewRate(5)
	Combine(r0, J, &R2Dip, &R2CSA, fresh)
	allocs := testing.AllocsPerRun(20, func() {
		Combine(r, J, &R2Dip, &R2CSA, &in)
	})
	fmt.Println("allocations per Combine:", allocs)
	if allocs != 0 {
		Te.Errorf("Combine allocates %v times with preallocated scratch", allocs)
	}
	//repeated calls must not accumulate in the scratch
	if r.V != r0.V {
		Te.Errorf("Value: %v, expected %v", r.V, r0.V)
	}
	for a := range r.D {
		if r.D[a] != r0.D[a] {
			Te.Errorf("d/dx%d: %v, expected %v", a, r.D[a], r0.D[a])
		}
		for b := range r.D2[a] {
			if r.D2[a][b] != r0.D2[a][b] {
				Te.Errorf("d2/dx%ddx%d: %v, expected %v", a, b, r.D2[a][b], r0.D2[a][b])
			}
		}
	}
}
