/*
 * rotation.go, part of gorelax.
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

	"gonum.org/v1/gonum/mat"
)

//rotatorAroundZ returns the operator that rotates the frame by a radians around the z axis,
//or its derivative of the given order (0, 1 or 2) with respect to a.
func rotatorAroundZ(a float64, order int) *mat.Dense {
	s := math.Sin(a)
	c := math.Cos(a)
	var operator []float64
	switch order {
	case 0:
		operator = []float64{c, s, 0,
			-s, c, 0,
			0, 0, 1}
	case 1:
		operator = []float64{-s, c, 0,
			-c, -s, 0,
			0, 0, 0}
	default:
		operator = []float64{-c, -s, 0,
			s, -c, 0,
			0, 0, 0}
	}
	return mat.NewDense(3, 3, operator)
}

//rotatorAroundY is the y-axis counterpart of rotatorAroundZ.
func rotatorAroundY(b float64, order int) *mat.Dense {
	s := math.Sin(b)
	c := math.Cos(b)
	var operator []float64
	switch order {
	case 0:
		operator = []float64{c, 0, -s,
			0, 1, 0,
			s, 0, c}
	case 1:
		operator = []float64{-s, 0, -c,
			0, 0, 0,
			c, 0, -s}
	default:
		operator = []float64{-c, 0, s,
			0, 0, 0,
			-s, 0, -c}
	}
	return mat.NewDense(3, 3, operator)
}

//eulerOrder returns Rz(gamma)Ry(beta)Rz(alpha), with each factor differentiated
//orders[i] times with respect to its angle (alpha, beta, gamma in that order).
func eulerOrder(alpha, beta, gamma float64, orders [3]int) *mat.Dense {
	var tmp, ret mat.Dense
	tmp.Mul(rotatorAroundY(beta, orders[1]), rotatorAroundZ(alpha, orders[0]))
	ret.Mul(rotatorAroundZ(gamma, orders[2]), &tmp)
	return &ret
}

//EulerRotation returns R = Rz(gamma) Ry(beta) Rz(alpha), with zyz Euler angles.
//The columns of R are the principal axes (x, y, z) of a tensor with those angles,
//in the lab frame, so the direction cosines of a vector v are given by R^T v.
func EulerRotation(alpha, beta, gamma float64) *mat.Dense {
	return eulerOrder(alpha, beta, gamma, [3]int{})
}

//cosines puts in dst the projection R^T v.
func cosines(dst []float64, R mat.Matrix, v [3]float64) {
	for j := 0; j < 3; j++ {
		dst[j] = R.At(0, j)*v[0] + R.At(1, j)*v[1] + R.At(2, j)*v[2]
	}
}

//eulerCosines fills the three direction cosines of v in the frame given by the
//angles, whose indexes in the parameter list start at first, with their derivatives.
func eulerCosines(delta []Jet, alpha, beta, gamma float64, first int, v [3]float64) {
	val := make([]float64, 3)
	cosines(val, EulerRotation(alpha, beta, gamma), v)
	for j := range delta {
		delta[j].zero()
		delta[j].V = val[j]
	}
	for a := 0; a < 3; a++ {
		var o [3]int
		o[a]++
		cosines(val, eulerOrder(alpha, beta, gamma, o), v)
		for j := range delta {
			delta[j].D[first+a] = val[j]
		}
		for b := a; b < 3; b++ {
			o2 := o
			o2[b]++
			cosines(val, eulerOrder(alpha, beta, gamma, o2), v)
			for j := range delta {
				delta[j].D2[first+a][first+b] = val[j]
				delta[j].D2[first+b][first+a] = val[j]
			}
		}
	}
}

//SpheroidAxis returns the unit vector along the unique axis of a spheroid
//with polar angle theta and azimuth phi.
func SpheroidAxis(theta, phi float64) [3]float64 {
	st, ct := math.Sincos(theta)
	sp, cp := math.Sincos(phi)
	return [3]float64{st * cp, st * sp, ct}
}

//spheroidCosine fills the cosine between v and the unique axis of the spheroid, with
//its derivatives over the angles, whose indexes in the parameter list are first and first+1.
func spheroidCosine(delta *Jet, theta, phi float64, first int, v [3]float64) {
	st, ct := math.Sincos(theta)
	sp, cp := math.Sincos(phi)
	dot := func(a [3]float64) float64 { return a[0]*v[0] + a[1]*v[1] + a[2]*v[2] }
	delta.zero()
	dpar := [3]float64{st * cp, st * sp, ct}
	delta.V = dot(dpar)
	t, p := first, first+1
	delta.D[t] = dot([3]float64{ct * cp, ct * sp, -st})
	delta.D[p] = dot([3]float64{-st * sp, st * cp, 0})
	delta.D2[t][t] = -delta.V
	tp := dot([3]float64{-ct * sp, ct * cp, 0})
	delta.D2[t][p] = tp
	delta.D2[p][t] = tp
	delta.D2[p][p] = dot([3]float64{-st * cp, -st * sp, 0})
}
