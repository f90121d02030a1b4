/*
 * spinwork.go, part of gorelax.
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
	"github.com/rmera/gorelax/chi2"
	"github.com/rmera/gorelax/diffusion"
	"github.com/rmera/gorelax/jw"
	"github.com/rmera/gorelax/ri"
	v3 "github.com/rmera/gorelax/v3"
	"gonum.org/v1/gonum/mat"
)

//spinWork contains the working arrays of one spin. It is allocated at setup
//and overwritten at each evaluation. Only the goroutine evaluating the spin writes to it.
type spinWork struct {
	spin   *Spin
	form   *jw.Form
	geom   *diffusion.Geometry
	xh     [3]float64
	consts ri.Constants
	free   bool  //the parameters of the spin are optimized
	n      int   //number of derivative slots
	nd     int   //number of tensor slots, which come first
	start  int   //index of the first parameter of the spin in the global vector
	slots  []int //index in the global vector of each slot
	jwPos  []int //positions in Params of the parameters of the form
	tmPos  int
	rexPos int
	rPos   int
	csaPos int

	jwVals []float64
	freqs  [][]float64 //per field
	J      [][]jw.Point
	inter  []ri.Interaction
	r1     []*ri.Rate //R1 per field, for the NOE without a paired R1
	sigma  []*ri.Rate //per field
	rates  []*ri.Rate //per datum
	pairs  []int

	obs, errs, pred []float64
	dri             [][]float64   //[slot][datum]
	d2ri            [][][]float64 //[slot][slot][datum]
	chi             float64
	red             *chi2.Workspace
	grad            []float64
	hess            *mat.SymDense
	singular        bool
}

func newSpinWork(S *Spin, form *jw.Form, jwPos []int, kind diffusion.Kind, mode Mode, consts ri.Constants, start int) (*spinWork, error) {
	W := &spinWork{spin: S, form: form, consts: consts, jwPos: jwPos, start: start, free: mode.spinsFree()}
	W.tmPos, W.rexPos, W.rPos, W.csaPos = S.index(LocalTm), S.index(Rex), S.index(R), S.index(CSA)
	if mode.diffusionFree() {
		W.nd = kind.NParams()
	}
	W.n = W.nd
	if W.free {
		W.n += len(S.Params)
	}
	W.slots = make([]int, W.n)
	for s := range W.slots {
		if s < W.nd {
			W.slots[s] = s
		} else {
			W.slots[s] = start + s - W.nd
		}
	}
	var diffSlots []int
	if mode.diffusionFree() {
		diffSlots = make([]int, W.nd)
		for i := range diffSlots {
			diffSlots[i] = i
		}
	}
	geomKind := kind
	if mode == LocalTmMode {
		geomKind = diffusion.Sphere
		diffSlots = []int{W.slot(W.tmPos)}
	}
	internal := make([]int, len(jwPos))
	for i, p := range jwPos {
		internal[i] = W.slot(p)
	}
	if err := form.Bind(W.n, diffSlots, internal); err != nil {
		return nil, errDecorate(err, "newSpinWork: "+S.Name)
	}
	W.geom = diffusion.NewGeometry(geomKind)
	if S.XH != nil {
		u := v3.Zeros(1)
		if err := u.Unit(S.XH.VecView(0)); err != nil {
			return nil, setupError("newSpinWork", "Spin %s: %s", S.Name, err.Error())
		}
		W.xh = u.Vec(0)
	}
	W.jwVals = make([]float64, len(jwPos))
	nf := len(S.Frq)
	W.freqs = make([][]float64, nf)
	W.J = make([][]jw.Point, nf)
	W.inter = make([]ri.Interaction, nf)
	W.r1 = make([]*ri.Rate, nf)
	W.sigma = make([]*ri.Rate, nf)
	for f, frq := range S.Frq {
		W.freqs[f] = jw.Frequencies(nil, frq, consts.Ratio())
		W.J[f] = jw.NewPoints(5, W.n)
		W.r1[f] = ri.NewRate(W.n)
		W.sigma[f] = ri.NewRate(W.n)
		W.inter[f] = ri.NewInteraction(W.n)
	}
	ndata := len(S.Data)
	W.pairs = S.noePairs()
	W.rates = make([]*ri.Rate, ndata)
	W.obs = make([]float64, ndata)
	W.errs = make([]float64, ndata)
	W.pred = make([]float64, ndata)
	for i, d := range S.Data {
		W.rates[i] = ri.NewRate(W.n)
		W.obs[i] = d.Value
		W.errs[i] = d.Error
	}
	W.dri = make([][]float64, W.n)
	W.d2ri = make([][][]float64, W.n)
	for a := range W.dri {
		W.dri[a] = make([]float64, ndata)
		W.d2ri[a] = make([][]float64, W.n)
		for b := range W.d2ri[a] {
			W.d2ri[a][b] = make([]float64, ndata)
		}
	}
	W.red = chi2.NewWorkspace(ndata)
	W.grad = make([]float64, W.n)
	W.hess = mat.NewSymDense(max(W.n, 1), nil)
	return W, nil
}

//slot returns the derivative slot of the parameter at position p in Params,
//or -1 if the parameter is fixed or absent.
func (W *spinWork) slot(p int) int {
	if p < 0 || !W.free {
		return -1
	}
	return W.nd + p
}

//own returns the current values of the parameters of the spin, taken from the
//physical parameter vector if the spin is optimized.
func (W *spinWork) own(phys []float64) []float64 {
	if W.free {
		return phys[W.start : W.start+len(W.spin.Params)]
	}
	return W.spin.Values
}

//eval computes the predicted data and chi2 of the spin, and their derivatives up
//to the given order, for the tensor parameters diff and the spin parameters own.
func (W *spinWork) eval(diff, own []float64, order int) {
	S := W.spin
	for i, p := range W.jwPos {
		W.jwVals[i] = own[p]
	}
	r, csa, rex := S.R, S.CSA, 0.0
	if W.rPos >= 0 {
		r = own[W.rPos]
	}
	if W.csaPos >= 0 {
		csa = own[W.csaPos]
	}
	if W.rexPos >= 0 {
		rex = own[W.rexPos]
	}
	if W.tmPos >= 0 {
		W.geom.Compute(own[W.tmPos:W.tmPos+1], W.xh)
	} else {
		W.geom.Compute(diff, W.xh)
	}
	W.singular = W.geom.Singular
	for f := range W.freqs {
		W.form.EvalOrder(W.J[f], W.freqs[f], W.geom, W.jwVals, order)
		in := &W.inter[f]
		in.D, in.Dr, in.Drr = W.consts.Dipolar(r)
		in.RSlot = W.slot(W.rPos)
		in.C, in.Cc, in.Ccc = ri.CSA(W.freqs[f][2], csa)
		in.CSASlot = W.slot(W.csaPos)
	}
	for i, d := range S.Data {
		f := d.Frq
		switch d.Type {
		case R1:
			ri.Combine(W.rates[i], W.J[f], &ri.R1Dip, &ri.R1CSA, &W.inter[f])
		case R2:
			ri.Combine(W.rates[i], W.J[f], &ri.R2Dip, &ri.R2CSA, &W.inter[f])
			ri.AddRex(W.rates[i], rex, S.Frq[f], W.slot(W.rexPos))
		}
	}
	for i, d := range S.Data {
		if d.Type != NOE {
			continue
		}
		f := d.Frq
		r1 := W.r1[f]
		if W.pairs[i] >= 0 {
			r1 = W.rates[W.pairs[i]]
		} else {
			ri.Combine(r1, W.J[f], &ri.R1Dip, &ri.R1CSA, &W.inter[f])
		}
		ri.Combine(W.sigma[f], W.J[f], &ri.NOEDip, &ri.NOECSA, &W.inter[f])
		ri.NOE(W.rates[i], W.sigma[f], r1, W.consts.NOEFactor())
	}
	for i, rate := range W.rates {
		W.pred[i] = rate.V
		if order < 1 {
			continue
		}
		for a := 0; a < W.n; a++ {
			W.dri[a][i] = rate.D[a]
			if order < 2 {
				continue
			}
			for b := 0; b < W.n; b++ {
				W.d2ri[a][b][i] = rate.D2[a][b]
			}
		}
	}
	W.chi = chi2.Chi2(W.obs, W.pred, W.errs)
	if order >= 1 {
		W.red.Dchi2(W.grad, W.obs, W.pred, W.dri, W.errs)
	}
	if order >= 2 && W.n > 0 {
		W.red.D2chi2(W.hess, W.obs, W.pred, W.dri, W.d2ri, W.errs)
	}
}
