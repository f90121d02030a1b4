/*
 * constants.go, part of gorelax.
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

import "math"

//Constants are the physical constants entering the relaxation rates, in SI units.
type Constants struct {
	H   float64 //Planck constant
	Mu0 float64 //vacuum permeability
	GH  float64 //gyromagnetic ratio of the proton
	GX  float64 //gyromagnetic ratio of the heteronucleus
}

//Hbar returns the reduced Planck constant
func (C Constants) Hbar() float64 {
	return C.H / (2 * math.Pi)
}

//Ratio returns |gX/gH|, the ratio between the Larmor frequencies of the heteronucleus and the proton.
func (C Constants) Ratio() float64 {
	return math.Abs(C.GX / C.GH)
}

//NOEFactor returns gH/gX.
func (C Constants) NOEFactor() float64 {
	return C.GH / C.GX
}

//Dipolar returns the dipolar constant 1/4 (mu0/4pi)^2 (hbar gH gX)^2 / r^6 for a
//bond length r, with its first and second derivatives over r.
func (C Constants) Dipolar(r float64) (d, dr, drr float64) {
	m := C.Mu0 / (4 * math.Pi)
	k := m * C.Hbar() * C.GH * C.GX
	r2 := r * r
	d = 0.25 * k * k / (r2 * r2 * r2)
	dr = -6 * d / r
	drr = 42 * d / r2
	return
}

//CSA returns the CSA constant (wx csa)^2/3 for the heteronucleus frequency wx (rad/s),
//with its first and second derivatives over csa.
func CSA(wx, csa float64) (c, dc, dcc float64) {
	w2 := wx * wx
	c = w2 * csa * csa / 3
	dc = 2 * w2 * csa / 3
	dcc = 2 * w2 / 3
	return
}
