/*
 * chi2.go, part of gorelax.
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

//Package chi2 reduces predicted relaxation data and their derivatives to the chi-squared
//statistic, its gradient and its Hessian. The reduction doesn't depend on the model
//that produced the data.
package chi2

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//PanicMsg is a message used for panics, even though it does satisfy the error interface.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const ErrShape = PanicMsg("gorelax/chi2: Dimension mismatch")

func check(obs, pred, err []float64) {
	if len(obs) != len(pred) || len(obs) != len(err) {
		panic(ErrShape)
	}
}

//Chi2 returns sum_i ((obs_i - pred_i)/err_i)^2.
func Chi2(obs, pred, err []float64) float64 {
	check(obs, pred, err)
	var chi float64
	for i := range obs {
		r := (obs[i] - pred[i]) / err[i]
		chi += r * r
	}
	return chi
}

//Workspace holds the scratch space of the reductions over a fixed number of data,
//so repeated reductions don't allocate.
type Workspace struct {
	w   []float64
	inv []float64
	tmp []float64
}

//NewWorkspace returns a Workspace for ndata data.
func NewWorkspace(ndata int) *Workspace {
	return &Workspace{w: make([]float64, ndata), inv: make([]float64, ndata), tmp: make([]float64, ndata)}
}

//weighted puts (obs_i - pred_i)/err_i^2 in the workspace and returns it.
func (W *Workspace) weighted(obs, pred, err []float64) []float64 {
	if len(W.w) != len(obs) {
		panic(ErrShape)
	}
	floats.SubTo(W.w, obs, pred)
	for i := range W.w {
		W.w[i] /= err[i] * err[i]
	}
	return W.w
}

//Dchi2 puts in dst the gradient of chi2, -2 sum_i (obs_i - pred_i)/err_i^2 dri[j][i],
//where dri[j][i] is the derivative of the ith datum over the jth parameter.
//If dst is nil, a new slice is allocated.
func Dchi2(dst []float64, obs, pred []float64, dri [][]float64, err []float64) []float64 {
	return NewWorkspace(len(obs)).Dchi2(dst, obs, pred, dri, err)
}

//Dchi2 is like the package-level Dchi2, using the scratch space of W.
func (W *Workspace) Dchi2(dst []float64, obs, pred []float64, dri [][]float64, err []float64) []float64 {
	check(obs, pred, err)
	if dst == nil {
		dst = make([]float64, len(dri))
	}
	w := W.weighted(obs, pred, err)
	for j := range dri {
		dst[j] = -2 * floats.Dot(w, dri[j])
	}
	return dst
}

//D2chi2 puts in dst the Hessian of chi2,
//2 sum_i (dri[j][i] dri[k][i] - (obs_i - pred_i) d2ri[j][k][i]) / err_i^2.
//If dst is nil, a new matrix is allocated.
func D2chi2(dst *mat.SymDense, obs, pred []float64, dri [][]float64, d2ri [][][]float64, err []float64) *mat.SymDense {
	return NewWorkspace(len(obs)).D2chi2(dst, obs, pred, dri, d2ri, err)
}

//D2chi2 is like the package-level D2chi2, using the scratch space of W.
func (W *Workspace) D2chi2(dst *mat.SymDense, obs, pred []float64, dri [][]float64, d2ri [][][]float64, err []float64) *mat.SymDense {
	check(obs, pred, err)
	n := len(dri)
	if dst == nil {
		dst = mat.NewSymDense(max(n, 1), nil)
	}
	if n == 0 {
		return dst
	}
	w := W.weighted(obs, pred, err)
	for i, e := range err {
		W.inv[i] = 1 / (e * e)
	}
	for j := 0; j < n; j++ {
		floats.MulTo(W.tmp, W.inv, dri[j])
		for k := j; k < n; k++ {
			dst.SetSym(j, k, 2*(floats.Dot(W.tmp, dri[k])-floats.Dot(w, d2ri[j][k])))
		}
	}
	return dst
}
