/*
 * rates.go, part of gorelax.
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
	"math"

	"github.com/rmera/gorelax/jw"
)

//Coefficients of J at 0, wH-wX, wX, wH, wH+wX for each rate. The dipolar
//ones multiply the dipolar constant, the CSA ones the CSA constant.
var (
	R1Dip  = [5]float64{0, 1, 3, 0, 6}
	R1CSA  = [5]float64{0, 0, 1, 0, 0}
	R2Dip  = [5]float64{2, 0.5, 1.5, 3, 3}
	R2CSA  = [5]float64{4.0 / 6.0, 0, 0.5, 0, 0}
	NOEDip = [5]float64{0, -1, 0, 0, 6}
	NOECSA = [5]float64{}
)

//Rate is a relaxation rate with its gradient and Hessian over the derivative slots of a spin.
type Rate struct {
	V  float64
	D  []float64
	D2 [][]float64
}

//NewRate allocates a Rate over n slots.
func NewRate(n int) *Rate {
	r := &Rate{D: make([]float64, n), D2: make([][]float64, n)}
	for i := range r.D2 {
		r.D2[i] = make([]float64, n)
	}
	return r
}

func (R *Rate) zero() {
	R.V = 0
	for i := range R.D {
		R.D[i] = 0
		for j := range R.D2[i] {
			R.D2[i][j] = 0
		}
	}
}

//CopyFrom copies the contents of A into the receiver, which must have the same size.
func (R *Rate) CopyFrom(A *Rate) {
	R.V = A.V
	copy(R.D, A.D)
	for i := range R.D2 {
		copy(R.D2[i], A.D2[i])
	}
}

//Interaction is the dipolar constant and the CSA constant of a spin at one
//field, with their derivatives over the bond length and the CSA. A negative slot
//means the corresponding parameter is fixed.
type Interaction struct {
	D, Dr, Drr float64
	RSlot      int
	C, Cc, Ccc float64
	CSASlot    int
	sdD, scD   []float64 //scratch for Combine
}

//NewInteraction returns an Interaction with both parameters fixed and
//scratch space for n slots.
func NewInteraction(n int) Interaction {
	return Interaction{RSlot: -1, CSASlot: -1, sdD: make([]float64, n), scD: make([]float64, n)}
}

func (in *Interaction) scratch(n int) ([]float64, []float64) {
	if cap(in.sdD) < n || cap(in.scD) < n {
		in.sdD = make([]float64, n)
		in.scD = make([]float64, n)
	}
	sdD, scD := in.sdD[:n], in.scD[:n]
	for a := range sdD {
		sdD[a] = 0
		scD[a] = 0
	}
	return sdD, scD
}

//Combine puts in dst the rate d sum_f dip[f] J_f + c sum_f csa[f] J_f, with
//its derivatives, where J holds the spectral density at the five frequencies.
func Combine(dst *Rate, J []jw.Point, dip, csa *[5]float64, in *Interaction) {
	dst.zero()
	var sd, sc float64
	for f := 0; f < 5; f++ {
		sd += dip[f] * J[f].V
		sc += csa[f] * J[f].V
	}
	dst.V = in.D*sd + in.C*sc
	n := len(dst.D)
	sdD, scD := in.scratch(n)
	for a := 0; a < n; a++ {
		for f := 0; f < 5; f++ {
			sdD[a] += dip[f] * J[f].D[a]
			scD[a] += csa[f] * J[f].D[a]
		}
		dst.D[a] = in.D*sdD[a] + in.C*scD[a]
		for b := a; b < n; b++ {
			var v float64
			for f := 0; f < 5; f++ {
				v += (in.D*dip[f] + in.C*csa[f]) * J[f].D2[a][b]
			}
			dst.D2[a][b] = v
		}
	}
	if s := in.RSlot; s >= 0 {
		dst.D[s] += in.Dr * sd
		dst.D2[s][s] += in.Drr*sd + 2*in.Dr*sdD[s]
		for a := 0; a < n; a++ {
			if a != s {
				dst.D2[min(a, s)][max(a, s)] += in.Dr * sdD[a]
			}
		}
	}
	if s := in.CSASlot; s >= 0 {
		dst.D[s] += in.Cc * sc
		dst.D2[s][s] += in.Ccc*sc + 2*in.Cc*scD[s]
		for a := 0; a < n; a++ {
			if a != s {
				dst.D2[min(a, s)][max(a, s)] += in.Cc * scD[a]
			}
		}
	}
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			dst.D2[b][a] = dst.D2[a][b]
		}
	}
}

//AddRex adds the exchange contribution rex (2 pi frq)^2 to dst. The contribution is
//linear in rex, so only the gradient changes.
func AddRex(dst *Rate, rex, frq float64, slot int) {
	w := 2 * math.Pi * frq
	dst.V += rex * w * w
	if slot >= 0 {
		dst.D[slot] += w * w
	}
}

//NOE puts in dst the steady-state NOE, 1 + factor sigma/r1, with its
//derivatives, including the chain rule through r1. factor is gH/gX.
func NOE(dst, sigma, r1 *Rate, factor float64) {
	dst.zero()
	inv := 1 / r1.V
	inv2 := inv * inv
	inv3 := inv2 * inv
	s := sigma.V
	dst.V = 1 + factor*s*inv
	n := len(dst.D)
	for a := 0; a < n; a++ {
		dst.D[a] = factor * (sigma.D[a]*inv - s*r1.D[a]*inv2)
		for b := a; b < n; b++ {
			v := sigma.D2[a][b]*inv -
				(sigma.D[a]*r1.D[b]+sigma.D[b]*r1.D[a])*inv2 -
				s*r1.D2[a][b]*inv2 +
				2*s*r1.D[a]*r1.D[b]*inv3
			dst.D2[a][b] = factor * v
			dst.D2[b][a] = factor * v
		}
	}
}
