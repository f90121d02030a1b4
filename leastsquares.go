/*
 * leastsquares.go, part of gorelax.
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

import "gonum.org/v1/gonum/mat"

var _ LeastSquares = (*Mf)(nil)

//Jacobian returns the derivatives of the predicted data (rows, in spin order and in
//the order of the Data of each spin) over the scaled parameters (columns) at x.
func (M *Mf) Jacobian(x []float64) *mat.Dense {
	if !M.cache.has(x, 1) {
		M.Grad(nil, x)
	}
	J := mat.NewDense(M.ndata, M.dim, nil)
	row := 0
	for _, S := range M.spins {
		for i := range S.pred {
			for a := 0; a < S.n; a++ {
				col := S.slots[a]
				J.Set(row, col, S.dri[a][i]*M.scale[col])
			}
			row++
		}
	}
	return J
}

//Residuals returns the weighted residuals (obs-pred)/err at the scaled point x,
//in the order of the rows of the Jacobian.
func (M *Mf) Residuals(x []float64) []float64 {
	M.Func(x)
	ret := make([]float64, 0, M.ndata)
	for _, S := range M.spins {
		for i, p := range S.pred {
			ret = append(ret, (S.obs[i]-p)/S.errs[i])
		}
	}
	return ret
}

//BackCalc returns the predicted relaxation data of each spin at the scaled point x,
//in the order of the Data of the spin.
func (M *Mf) BackCalc(x []float64) [][]float64 {
	M.Func(x)
	ret := make([][]float64, len(M.spins))
	for i, S := range M.spins {
		ret[i] = append([]float64(nil), S.pred...)
	}
	return ret
}

//Errors returns the experimental errors, in the order of the residuals.
func (M *Mf) Errors() []float64 {
	ret := make([]float64, 0, M.ndata)
	for _, S := range M.spins {
		ret = append(ret, S.errs...)
	}
	return ret
}

//SpinChi2 returns the contribution of each spin to the chi2 at the scaled point x.
func (M *Mf) SpinChi2(x []float64) []float64 {
	M.Func(x)
	ret := make([]float64, len(M.spins))
	for i, S := range M.spins {
		ret[i] = S.chi
	}
	return ret
}

//Spins returns the spins of the objective, in the order of the parameter vector.
func (M *Mf) Spins() []*Spin {
	ret := make([]*Spin, len(M.spins))
	for i, S := range M.spins {
		ret[i] = S.spin
	}
	return ret
}
