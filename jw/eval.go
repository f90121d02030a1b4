/*
 * eval.go, part of gorelax.
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
	"math"

	"github.com/rmera/gorelax/diffusion"
)

//Point is the value of J at one frequency, with its gradient and Hessian
//over the derivative slots of the spin.
type Point struct {
	V  float64
	D  []float64
	D2 [][]float64
}

//NewPoints allocates m Points with n derivative slots each.
func NewPoints(m, n int) []Point {
	ret := make([]Point, m)
	for i := range ret {
		ret[i].D = make([]float64, n)
		ret[i].D2 = make([][]float64, n)
		for j := range ret[i].D2 {
			ret[i].D2[j] = make([]float64, n)
		}
	}
	return ret
}

func (P *Point) zero() {
	P.V = 0
	for i := range P.D {
		P.D[i] = 0
		for j := range P.D2[i] {
			P.D2[i][j] = 0
		}
	}
}

type scratch struct {
	A   []float64     //amplitude of each term
	Ad  [][]float64   //[term][var]
	Add [][][]float64 //[term][var][var]
	ca  []float64
	ta  []float64 //derivative of the global correlation time
	Ta  []float64 //derivative of the effective correlation time of the term
	Tab [][]float64
}

func newScratch(terms, vars int) scratch {
	mk := func() [][]float64 {
		r := make([][]float64, vars)
		for i := range r {
			r[i] = make([]float64, vars)
		}
		return r
	}
	s := scratch{
		A:   make([]float64, terms),
		Ad:  make([][]float64, terms),
		Add: make([][][]float64, terms),
		ca:  make([]float64, vars),
		ta:  make([]float64, vars),
		Ta:  make([]float64, vars),
		Tab: mk(),
	}
	for k := range s.Ad {
		s.Ad[k] = make([]float64, vars)
		s.Add[k] = mk()
	}
	return s
}

//lorentz returns L = T/(1+w^2T^2) and its first and second derivatives over T.
//The form with q = 1/(1+w^2T^2) stays finite for huge T.
func lorentz(w, T float64) (L, L1, L2 float64) {
	w2 := w * w
	q := 1 / (1 + w2*T*T)
	L = T * q
	L1 = (2*q - 1) * q
	L2 = 2 * w2 * T * q * q * (1 - 4*q)
	return
}

//effective returns the correlation time tau*t/(tau+t) of an internal motion with correlation
//time t, and its derivatives: T_tau, T_t, T_tautau, T_taut, T_tt.
func effective(tau, t float64) (T, Ttau, Tt, Ttautau, Ttaut, Ttt float64) {
	den := tau + t
	den2 := den * den
	den3 := den2 * den
	T = tau * t / den
	Ttau = t * t / den2
	Tt = tau * tau / den2
	Ttautau = -2 * t * t / den3
	Ttaut = 2 * tau * t / den3
	Ttt = -2 * tau * tau / den3
	return
}

//Eval puts in dst[j] the spectral density at the frequency w[j] (rad/s), with its
//derivatives. G must have been computed for the current tensor and interaction
//vector, and x holds the values of the parameters in the set of F, in order.
func (F *Form) Eval(dst []Point, w []float64, G *diffusion.Geometry, x []float64) {
	F.EvalOrder(dst, w, G, x, 2)
}

//EvalOrder is like Eval, but only computes derivatives up to the given order
//(0: values only, 1: gradients, 2: Hessians). The rest are left as zero.
func (F *Form) EvalOrder(dst []Point, w []float64, G *diffusion.Geometry, x []float64, order int) {
	if len(dst) != len(w) || len(x) != len(F.Set) {
		panic(ErrShape)
	}
	if G.Kind != F.Kind {
		panic(ErrUnbound)
	}
	for j := range dst {
		dst[j].zero()
	}
	s := &F.scratch
	vars := F.vars
	if order < 1 {
		vars = nil
	}
	for k, t := range F.terms {
		s.A[k] = t.amp.value(x)
		for a, va := range vars {
			s.Ad[k][a] = 0
			if va.param >= 0 {
				s.Ad[k][a] = t.amp.partial(x, va.param, -1)
			}
			for b, vb := range vars {
				if order < 2 {
					break
				}
				s.Add[k][a][b] = 0
				if va.param >= 0 && vb.param >= 0 {
					s.Add[k][a][b] = t.amp.partial(x, va.param, vb.param)
				}
			}
		}
	}
	for i := range G.C {
		c := &G.C[i]
		tau := &G.Tau[i]
		for a, va := range vars {
			s.ca[a], s.ta[a] = 0, 0
			if va.diff >= 0 {
				s.ca[a] = c.D[va.diff]
				s.ta[a] = tau.D[va.diff]
			}
		}
		for k, t := range F.terms {
			T, Ttau, Tt, Ttautau, Ttaut, Ttt := tau.V, 1.0, 0.0, 0.0, 0.0, 0.0
			if t.time >= 0 {
				T, Ttau, Tt, Ttautau, Ttaut, Ttt = effective(tau.V, x[t.time])
			}
			isTime := func(v variable) float64 {
				if t.time >= 0 && v.param == t.time {
					return 1
				}
				return 0
			}
			for a, va := range vars {
				s.Ta[a] = Ttau*s.ta[a] + Tt*isTime(va)
			}
			for a, va := range vars {
				if order < 2 {
					break
				}
				tia := isTime(va)
				for b := a; b < len(vars); b++ {
					vb := vars[b]
					tib := isTime(vb)
					v := Ttautau*s.ta[a]*s.ta[b] + Ttaut*(s.ta[a]*tib+tia*s.ta[b]) + Ttt*tia*tib
					if va.diff >= 0 && vb.diff >= 0 {
						v += Ttau * tau.D2[va.diff][vb.diff]
					}
					s.Tab[a][b] = v
				}
			}
			A := s.A[k]
			Ad := s.Ad[k]
			for j, om := range w {
				L, L1, L2 := lorentz(om, T)
				p := &dst[j]
				p.V += c.V * A * L
				for a, va := range vars {
					p.D[va.slot] += s.ca[a]*A*L + c.V*Ad[a]*L + c.V*A*L1*s.Ta[a]
				}
				if order < 2 {
					continue
				}
				for a, va := range vars {
					for b := a; b < len(vars); b++ {
						vb := vars[b]
						var cab float64
						if va.diff >= 0 && vb.diff >= 0 {
							cab = c.D2[va.diff][vb.diff]
						}
						h := cab*A*L +
							s.ca[a]*(Ad[b]*L+A*L1*s.Ta[b]) +
							s.ca[b]*(Ad[a]*L+A*L1*s.Ta[a]) +
							c.V*(s.Add[k][a][b]*L+Ad[a]*L1*s.Ta[b]+Ad[b]*L1*s.Ta[a]+
								A*(L2*s.Ta[a]*s.Ta[b]+L1*s.Tab[a][b]))
						p.D2[va.slot][vb.slot] += h
						if a != b {
							p.D2[vb.slot][va.slot] += h
						}
					}
				}
			}
		}
	}
	const twofifths = 0.4
	for j := range dst {
		p := &dst[j]
		p.V *= twofifths
		for a := range p.D {
			p.D[a] *= twofifths
			for b := range p.D2[a] {
				p.D2[a][b] *= twofifths
			}
		}
	}
}

//Frequencies puts in dst the five frequencies (rad/s) at which J is sampled for a
//proton Larmor frequency frq (Hz): 0, wH-wX, wX, wH, wH+wX. ratio is |gX/gH|.
func Frequencies(dst []float64, frq, ratio float64) []float64 {
	if len(dst) < 5 {
		dst = make([]float64, 5)
	}
	wh := 2 * math.Pi * frq
	wx := wh * math.Abs(ratio)
	dst[0] = 0
	dst[1] = wh - wx
	dst[2] = wx
	dst[3] = wh
	dst[4] = wh + wx
	return dst[:5]
}
