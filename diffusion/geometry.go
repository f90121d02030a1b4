/*
 * geometry.go, part of gorelax.
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

import (
	"math"
)

//Geometry contains the weights, correlation times and direction cosines of
//a tensor for one interaction vector, each with its gradient and Hessian over
//the parameters of the tensor kind. A Geometry is allocated once for a kind and
//then recomputed in place.
type Geometry struct {
	Kind     Kind
	C        []Jet //weights of the spectral components
	Tau      []Jet //correlation times of the spectral components
	Cosines  []Jet //direction cosines, none for the sphere
	Singular bool  //at least one correlation time was replaced by TauInf
	rate     Jet   //scratch
}

//NewGeometry allocates a Geometry for the tensor kind k.
func NewGeometry(k Kind) *Geometry {
	n := k.NParams()
	nc := k.NComponents()
	return &Geometry{
		Kind:    k,
		C:       newJets(nc, n),
		Tau:     newJets(nc, n),
		Cosines: newJets(k.NCosines(), n),
		rate:    newJet(n),
	}
}

//Compute fills the Geometry for the tensor parameters params and the
//unit interaction vector xh (ignored for the sphere).
//It panics if the number of parameters doesn't match the kind.
func (G *Geometry) Compute(params []float64, xh [3]float64) {
	if len(params) != G.Kind.NParams() {
		panic(ErrWrongParams)
	}
	G.Singular = false
	switch G.Kind {
	case Sphere:
		G.sphere(params)
	case Spheroid:
		G.spheroid(params, xh)
	case Ellipsoid:
		G.ellipsoid(params, xh)
	}
}

func (G *Geometry) sphere(params []float64) {
	tm := params[0]
	G.C[0].zero()
	G.C[0].V = 1
	t := &G.Tau[0]
	t.zero()
	if math.IsInf(tm, 0) || math.IsNaN(tm) || math.Abs(tm) >= TauInf {
		t.V = TauInf
		G.Singular = true
		return
	}
	t.V = tm
	t.D[0] = 1
}

//tmRate puts 1/tm and its derivatives over tm (parameter 0) in the scratch rate.
func (G *Geometry) tmRate(tm float64) {
	s := &G.rate
	s.zero()
	s.V = 1 / tm
	s.D[0] = -1 / (tm * tm)
	s.D2[0][0] = 2 / (tm * tm * tm)
}

var spheroidK = [3]float64{-2, -1, 2}

func (G *Geometry) spheroid(params []float64, xh [3]float64) {
	tm, da := params[0], params[1]
	delta := &G.Cosines[0]
	spheroidCosine(delta, params[2], params[3], 2, xh)
	d := delta.V
	d2 := d * d
	//weights as functions of the cosine: value, first and second derivatives.
	f := [3][3]float64{
		{0.25 * (3*d2 - 1) * (3*d2 - 1), 3 * d * (3*d2 - 1), 27*d2 - 3},
		{3 * d2 * (1 - d2), 6*d - 12*d2*d, 6 - 36*d2},
		{0.75 * (1 - d2) * (1 - d2), 3*d2*d - 3*d, 9*d2 - 3},
	}
	for i := range G.C {
		chainCosine(&G.C[i], delta, f[i][0], f[i][1], f[i][2])
	}
	for i, k := range spheroidK {
		G.tmRate(tm)
		G.rate.V += k * da
		G.rate.D[1] = k
		if G.Tau[i].invert(&G.rate, math.Abs(1/tm)+math.Abs(k*da)) {
			G.Singular = true
		}
	}
}

//chainCosine puts in c the composition f(delta), given f and its first
//and second derivatives at delta.V.
func chainCosine(c, delta *Jet, f, f1, f2 float64) {
	c.V = f
	for k := range c.D {
		c.D[k] = f1 * delta.D[k]
		for l := k; l < len(c.D2[k]); l++ {
			v := f2*delta.D[k]*delta.D[l] + f1*delta.D2[k][l]
			c.D2[k][l] = v
			c.D2[l][k] = v
		}
	}
}

func (G *Geometry) ellipsoid(params []float64, xh [3]float64) {
	tm, da, dr := params[0], params[1], params[2]
	eulerCosines(G.Cosines, params[3], params[4], params[5], 3, xh)
	x, y, z := G.Cosines[0].V, G.Cosines[1].V, G.Cosines[2].V
	w, gw, hw := ellipsoidWeights(x, y, z, dr)
	//derivatives of u = (dx, dy, dz, Dr) over the tensor parameters
	du := func(m, k int) float64 {
		if m < 3 {
			return G.Cosines[m].D[k]
		}
		if k == 2 {
			return 1
		}
		return 0
	}
	n := G.Kind.NParams()
	for i := range G.C {
		c := &G.C[i]
		c.zero()
		c.V = w[i]
		for k := 0; k < n; k++ {
			for m := 0; m < 4; m++ {
				c.D[k] += gw[i][m] * du(m, k)
			}
			for l := k; l < n; l++ {
				var v float64
				for m := 0; m < 4; m++ {
					dmk := du(m, k)
					if dmk != 0 {
						for q := 0; q < 4; q++ {
							v += hw[i][m][q] * dmk * du(q, l)
						}
					}
					if m < 3 {
						v += gw[i][m] * G.Cosines[m].D2[k][l]
					}
				}
				c.D2[k][l] = v
				c.D2[l][k] = v
			}
		}
	}
	R := math.Sqrt(1 + 3*dr*dr)
	R1 := 3 * dr / R
	R2 := 3 / (R * R * R)
	//the rates are 1/tm + f, f given by its value and derivatives
	//over Da and Dr: {f, f_Da, f_Dr, f_DaDr, f_DrDr}
	f := [5][5]float64{
		{-2 * da * R, -2 * R, -2 * da * R1, -2 * R1, -2 * da * R2},
		{-da * (1 + 3*dr), -(1 + 3*dr), -3 * da, -3, 0},
		{-da * (1 - 3*dr), -(1 - 3*dr), 3 * da, 3, 0},
		{2 * da, 2, 0, 0, 0},
		{2 * da * R, 2 * R, 2 * da * R1, 2 * R1, 2 * da * R2},
	}
	for i := range G.Tau {
		G.tmRate(tm)
		s := &G.rate
		s.V += f[i][0]
		s.D[1] = f[i][1]
		s.D[2] = f[i][2]
		s.D2[1][2] = f[i][3]
		s.D2[2][1] = f[i][3]
		s.D2[2][2] = f[i][4]
		if G.Tau[i].invert(s, math.Abs(1/tm)+math.Abs(f[i][0])) {
			G.Singular = true
		}
	}
}

//ellipsoidWeights returns the five weights of the ellipsoid as functions of
//u = (dx, dy, dz, Dr), with their gradients and Hessians over u.
func ellipsoidWeights(x, y, z, dr float64) (w [5]float64, g [5][4]float64, h [5][4][4]float64) {
	x2, y2, z2 := x*x, y*y, z*z
	//d = 3(x^4+y^4+z^4) - 1
	d := 3*(x2*x2+y2*y2+z2*z2) - 1
	gd := [4]float64{12 * x2 * x, 12 * y2 * y, 12 * z2 * z, 0}
	var hd [4][4]float64
	hd[0][0], hd[1][1], hd[2][2] = 36*x2, 36*y2, 36*z2

	//A = x^4 + 2y^2z^2, B = y^4 + 2x^2z^2, C = z^4 + 2x^2y^2
	A := x2*x2 + 2*y2*z2
	B := y2*y2 + 2*x2*z2
	C := z2*z2 + 2*x2*y2
	gA := [3]float64{4 * x2 * x, 4 * y * z2, 4 * y2 * z}
	gB := [3]float64{4 * x * z2, 4 * y2 * y, 4 * x2 * z}
	gC := [3]float64{4 * x * y2, 4 * x2 * y, 4 * z2 * z}
	var hA, hB, hC [3][3]float64
	hA[0][0], hA[1][1], hA[2][2] = 12*x2, 4*z2, 4*y2
	hA[1][2], hA[2][1] = 8*y*z, 8*y*z
	hB[0][0], hB[1][1], hB[2][2] = 4*z2, 12*y2, 4*x2
	hB[0][2], hB[2][0] = 8*x*z, 8*x*z
	hC[0][0], hC[1][1], hC[2][2] = 4*y2, 4*x2, 12*z2
	hC[0][1], hC[1][0] = 8*x*y, 8*x*y

	p, m := 1+3*dr, 1-3*dr
	//gg = pA + mB - 2C
	gg := p*A + m*B - 2*C
	var ggu [4]float64
	var hgg [4][4]float64
	for i := 0; i < 3; i++ {
		ggu[i] = p*gA[i] + m*gB[i] - 2*gC[i]
		for j := 0; j < 3; j++ {
			hgg[i][j] = p*hA[i][j] + m*hB[i][j] - 2*hC[i][j]
		}
		hgg[i][3] = 3 * (gA[i] - gB[i])
		hgg[3][i] = hgg[i][3]
	}
	ggu[3] = 3 * (A - B)

	//e = rho*gg, rho = 1/sqrt(1+3Dr^2)
	rho := 1 / math.Sqrt(1+3*dr*dr)
	rho3 := rho * rho * rho
	rho1 := -3 * dr * rho3
	rho2 := -3*rho3 + 27*dr*dr*rho3*rho*rho
	e := rho * gg
	var ge [4]float64
	var he [4][4]float64
	for i := 0; i < 4; i++ {
		ge[i] = rho * ggu[i]
		for j := 0; j < 4; j++ {
			he[i][j] = rho * hgg[i][j]
		}
	}
	ge[3] += rho1 * gg
	for i := 0; i < 3; i++ {
		he[i][3] += rho1 * ggu[i]
		he[3][i] = he[i][3]
	}
	he[3][3] = rho2*gg + 2*rho1*ggu[3]

	w[0] = (d - e) / 4
	w[4] = (d + e) / 4
	for i := 0; i < 4; i++ {
		g[0][i] = (gd[i] - ge[i]) / 4
		g[4][i] = (gd[i] + ge[i]) / 4
		for j := 0; j < 4; j++ {
			h[0][i][j] = (hd[i][j] - he[i][j]) / 4
			h[4][i][j] = (hd[i][j] + he[i][j]) / 4
		}
	}

	w[1] = 3 * y2 * z2
	g[1] = [4]float64{0, 6 * y * z2, 6 * y2 * z, 0}
	h[1][1][1], h[1][2][2] = 6*z2, 6*y2
	h[1][1][2], h[1][2][1] = 12*y*z, 12*y*z

	w[2] = 3 * x2 * z2
	g[2] = [4]float64{6 * x * z2, 0, 6 * x2 * z, 0}
	h[2][0][0], h[2][2][2] = 6*z2, 6*x2
	h[2][0][2], h[2][2][0] = 12*x*z, 12*x*z

	w[3] = 3 * x2 * y2
	g[3] = [4]float64{6 * x * y2, 6 * x2 * y, 0, 0}
	h[3][0][0], h[3][1][1] = 6*y2, 6*x2
	h[3][0][1], h[3][1][0] = 12*x*y, 12*x*y
	return
}
