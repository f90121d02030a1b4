/*
 * v3_test.go, part of gorelax.
 *
 * Copyright 2013 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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

package v3

import (
	"fmt"
	"math"
	"testing"
)

func TestGeo(Te *testing.T) {
	a := []float64{1.0, 2.0, 3, 4, 5, 6, 7, 8, 9}
	A, err := NewMatrix(a)
	if err != nil {
		Te.Error(err)
	}
	View := A.VecView(1)
	View.Set(0, 0, 100)
	fmt.Println("View\n", A, "\n", View)
	if A.At(1, 0) != 100 {
		Te.Errorf("View changes not reflected in the parent matrix: %v", A.At(1, 0))
	}
	if _, err := NewMatrix([]float64{1, 2}); err == nil {
		Te.Error("NewMatrix accepted a slice not divisible by 3")
	}
}

func TestUnit(Te *testing.T) {
	row, _ := NewMatrix([]float64{2, 2, 3, 0, 0, 5})
	if err := row.Unit(row); err != nil {
		Te.Error(err)
	}
	fmt.Println("Unitarized", row)
	if !row.IsUnit(1e-14) {
		Te.Errorf("Unit did not normalize: %v", row)
	}
	zero := Zeros(1)
	if err := zero.Unit(zero); err == nil {
		Te.Error("Unit accepted a zero-length vector")
	}
	//in place on a view, and from a view into a new matrix
	M, _ := NewMatrix([]float64{1, 0, 0, 0, 0, 2})
	second := M.VecView(1)
	if err := second.Unit(second); err != nil {
		Te.Error(err)
	}
	if M.Vec(1) != [3]float64{0, 0, 1} {
		Te.Errorf("Unit on a view: %v", M)
	}
	M.Set(1, 2, 4)
	u := Zeros(1)
	if err := u.Unit(M.VecView(1)); err != nil {
		Te.Error(err)
	}
	if u.Vec(0) != [3]float64{0, 0, 1} || M.At(1, 2) != 4 {
		Te.Errorf("Unit from a view: %v, source %v", u, M)
	}
}

func TestEigen(Te *testing.T) {
	a := []float64{1, 2, 0, 2, 1, 0, 0, 0, 1}
	A, err := NewMatrix(a)
	if err != nil {
		Te.Error(err)
	}
	evecs, evals, err := EigenWrap(A, -1)
	if err != nil {
		Te.Fatal(err)
	}
	fmt.Println(evecs, "\n", evals)
	expected := []float64{-1, 1, 3}
	for i, v := range expected {
		if math.Abs(evals[i]-v) > 1e-10 {
			Te.Errorf("Eigenvalue %d is %v, expected %v", i, evals[i], v)
		}
	}
	if d := det(evecs); math.Abs(d-1) > 1e-10 {
		Te.Errorf("Eigenvector set not right-handed, det: %v", d)
	}
	//A v = lambda v for each row.
	for i := 0; i < 3; i++ {
		v := evecs.Vec(i)
		for r := 0; r < 3; r++ {
			av := A.At(r, 0)*v[0] + A.At(r, 1)*v[1] + A.At(r, 2)*v[2]
			if math.Abs(av-evals[i]*v[r]) > 1e-10 {
				Te.Errorf("Row %d is not an eigenvector: %v", i, evecs)
			}
		}
	}
}

func TestEigenHandedness(Te *testing.T) {
	//sorting the eigenvectors of these permutes the axes, which gives
	//left-handed sets for an odd permutation.
	cases := [][]float64{
		{1, 0, 0, 0, 3, 0, 0, 0, 2},
		{2, 0, 0, 0, 1, 0, 0, 0, 3},
		{3, 0, 0, 0, 2, 0, 0, 0, 1},
		{3, 0, 0, 0, 1, 0, 0, 0, 2},
		{-1, -2, 0, -2, -1, 0, 0, 0, -1},
		{4, 1, 0.5, 1, 2, 0.3, 0.5, 0.3, 1},
	}
	for c, a := range cases {
		A, err := NewMatrix(a)
		if err != nil {
			Te.Fatal(err)
		}
		evecs, evals, err := EigenWrap(A, -1)
		if err != nil {
			Te.Fatalf("Case %d: %v", c, err)
		}
		if d := det(evecs); math.Abs(d-1) > 1e-10 {
			Te.Errorf("Case %d: eigenvector set not right-handed, det: %v", c, d)
		}
		for i := 0; i < 3; i++ {
			v := evecs.Vec(i)
			for r := 0; r < 3; r++ {
				av := A.At(r, 0)*v[0] + A.At(r, 1)*v[1] + A.At(r, 2)*v[2]
				if math.Abs(av-evals[i]*v[r]) > 1e-10 {
					Te.Errorf("Case %d: row %d is not an eigenvector: %v", c, i, evecs)
				}
			}
		}
	}
}
