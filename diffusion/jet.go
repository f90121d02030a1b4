/*
 * jet.go, part of gorelax.
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

package diffusion

import "math"

//Jet is a value together with its gradient and Hessian over
//the parameters of a tensor kind.
type Jet struct {
	V  float64
	D  []float64
	D2 [][]float64
}

func newJet(n int) Jet {
	J := Jet{D: make([]float64, n), D2: make([][]float64, n)}
	for i := range J.D2 {
		J.D2[i] = make([]float64, n)
	}
	return J
}

func newJets(m, n int) []Jet {
	ret := make([]Jet, m)
	for i := range ret {
		ret[i] = newJet(n)
	}
	return ret
}

func (J *Jet) zero() {
	J.V = 0
	for i := range J.D {
		J.D[i] = 0
		for j := range J.D2[i] {
			J.D2[i][j] = 0
		}
	}
}

//invert puts in J the reciprocal of the rate s, and its derivatives.
//If s is negligible compared with ref, J gets the surrogate TauInf with
//zero derivatives, and invert returns true.
func (J *Jet) invert(s *Jet, ref float64) bool {
	J.zero()
	if math.IsNaN(s.V) || math.Abs(s.V) <= singularTol*ref {
		J.V = TauInf
		return true
	}
	inv := 1 / s.V
	inv2 := inv * inv
	J.V = inv
	for i := range s.D {
		J.D[i] = -s.D[i] * inv2
	}
	for i := range s.D {
		for j := i; j < len(s.D); j++ {
			v := 2*s.D[i]*s.D[j]*inv2*inv - s.D2[i][j]*inv2
			J.D2[i][j] = v
			J.D2[j][i] = v
		}
	}
	return false
}

//a rate below singularTol times its reference scale is taken as zero.
const singularTol = 1e-12

