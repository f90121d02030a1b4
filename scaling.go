/*
 * scaling.go, part of gorelax.
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

package relax

import (
	"math"

	"github.com/rmera/gorelax/diffusion"
)

//Default scaling factors, so the optimized parameters are of order 1.
const (
	timeScale = 1e-12 //ps
	daScale   = 1e7
	rScale    = 1e-10 //Angstrom
	csaScale  = 1e-6  //ppm
)

func tensorScaling(kind diffusion.Kind) []float64 {
	switch kind {
	case diffusion.Spheroid:
		return []float64{timeScale, daScale, 1, 1}
	case diffusion.Ellipsoid:
		return []float64{timeScale, daScale, 1, 1, 1, 1}
	}
	return []float64{timeScale}
}

//spinScaling returns the default factors for the parameters of the spin. Rex is scaled
//by 1/(2 pi frq)^2 for the first field of the spin, so the scaled value is the
//exchange rate at that field.
func spinScaling(S *Spin) []float64 {
	ret := make([]float64, len(S.Params))
	for i, p := range S.Params {
		switch p {
		case LocalTm, Te, Tf, Ts:
			ret[i] = timeScale
		case Rex:
			w := 2 * math.Pi * S.Frq[0]
			ret[i] = 1 / (w * w)
		case R:
			ret[i] = rScale
		case CSA:
			ret[i] = csaScale
		default:
			ret[i] = 1
		}
	}
	return ret
}

//DefaultScaling returns the default scaling factors for the parameter vector of setup.
//The setup must be valid.
func DefaultScaling(setup *Setup) []float64 {
	var ret []float64
	if setup.Mode.diffusionFree() {
		ret = append(ret, tensorScaling(setup.Tensor.Kind)...)
	}
	if setup.Mode.spinsFree() {
		for _, s := range setup.Spins {
			ret = append(ret, spinScaling(s)...)
		}
	}
	return ret
}
