/*
 * tensor.go, part of gorelax.
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
	"fmt"
	"math"

	v3 "github.com/rmera/gorelax/v3"
	"gonum.org/v1/gonum/mat"
)

//Tensor is the state of a diffusion tensor: its kind and the current values of
//its geometric parameters, in the order given by Kind.ParamNames.
type Tensor struct {
	Kind   Kind
	Params []float64
}

//NewTensor returns a Tensor of the given kind with a copy of params.
func NewTensor(kind Kind, params ...float64) (*Tensor, error) {
	if !kind.Valid() {
		return nil, Error{fmt.Sprintf("Unknown diffusion tensor kind %d", int(kind)), []string{"NewTensor"}, true, ErrInvalidParamType}
	}
	if len(params) != kind.NParams() {
		return nil, Error{fmt.Sprintf("A %s tensor takes %d parameters, got %d", kind, kind.NParams(), len(params)), []string{"NewTensor"}, true, nil}
	}
	return &Tensor{Kind: kind, Params: append([]float64(nil), params...)}, nil
}

//Copy returns a deep copy of the tensor
func (T *Tensor) Copy() *Tensor {
	return &Tensor{Kind: T.Kind, Params: append([]float64(nil), T.Params...)}
}

//Diso returns the isotropic component of the tensor, 1/(6 tm).
func (T *Tensor) Diso() float64 {
	return 1 / (6 * T.Params[0])
}

//Eigenvalues returns the principal diffusion rates (Dx, Dy, Dz).
//For the spheroid, Dz is Dpar and Dx = Dy = Dper.
func (T *Tensor) Eigenvalues() [3]float64 {
	diso := T.Diso()
	switch T.Kind {
	case Spheroid:
		da := T.Params[1]
		return [3]float64{diso - da/3, diso - da/3, diso + 2*da/3}
	case Ellipsoid:
		da, dr := T.Params[1], T.Params[2]
		return [3]float64{diso - da/3*(1+3*dr), diso - da/3*(1-3*dr), diso + 2*da/3}
	}
	return [3]float64{diso, diso, diso}
}

//TmFromEigenvalues returns the global correlation time 1/(2(Dx+Dy+Dz)), or TauInf
//if the rates add up to (practically) zero.
func TmFromEigenvalues(ev [3]float64) float64 {
	sum := ev[0] + ev[1] + ev[2]
	ref := math.Abs(ev[0]) + math.Abs(ev[1]) + math.Abs(ev[2])
	if math.IsNaN(sum) || math.Abs(sum) <= singularTol*ref {
		return TauInf
	}
	return 1 / (2 * sum)
}

//rotation returns the matrix whose columns are the principal axes of the tensor.
func (T *Tensor) rotation() *mat.Dense {
	switch T.Kind {
	case Spheroid:
		return EulerRotation(0, T.Params[2], math.Pi-T.Params[3])
	case Ellipsoid:
		return EulerRotation(T.Params[3], T.Params[4], T.Params[5])
	}
	return EulerRotation(0, 0, 0)
}

//Axes returns the principal axes of the tensor as the rows (x, y, z) of a matrix.
//For the spheroid only the z axis (the unique one) is meaningful.
func (T *Tensor) Axes() *v3.Matrix {
	ret := v3.Zeros(3)
	ret.Copy(T.rotation().T())
	return ret
}

//Matrix returns the 3x3 diffusion tensor in the lab frame, R diag(Dx,Dy,Dz) R^T,
//where the columns of R are the principal axes.
func (T *Tensor) Matrix() *mat.SymDense {
	R := T.rotation()
	ev := T.Eigenvalues()
	ret := mat.NewSymDense(3, nil)
	for i := 0; i < 3; i++ {
		for j := i; j < 3; j++ {
			var v float64
			for k := 0; k < 3; k++ {
				v += R.At(i, k) * ev[k] * R.At(j, k)
			}
			ret.SetSym(i, j, v)
		}
	}
	return ret
}

//FromMatrix returns the ellipsoid tensor corresponding to the symmetric matrix D.
//The principal axes are ordered so that Dx <= Dy <= Dz (thus Da >= 0 and 0 <= Dr <= 1)
//and form a right-handed frame. The Euler angles are folded into their canonical domain.
func FromMatrix(D mat.Symmetric) (*Tensor, error) {
	if D.SymmetricDim() != 3 {
		return nil, Error{"The diffusion tensor must be 3x3", []string{"FromMatrix"}, true, nil}
	}
	in := v3.Zeros(3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			in.Set(i, j, D.At(i, j))
		}
	}
	evecs, evals, err := v3.EigenWrap(in, -1)
	if err != nil {
		return nil, Error{err.Error(), []string{"v3.EigenWrap", "FromMatrix"}, true, nil}
	}
	tm := TmFromEigenvalues([3]float64{evals[0], evals[1], evals[2]})
	da := evals[2] - (evals[0]+evals[1])/2
	var dr float64
	if math.Abs(da) > singularTol*(math.Abs(evals[0])+math.Abs(evals[1])+math.Abs(evals[2])) {
		dr = (evals[1] - evals[0]) / (2 * da)
	}
	//the rows of evecs are the axes, the columns of R.
	R := evecs.T()
	alpha, beta, gamma := eulerFromRotation(R)
	T := &Tensor{Kind: Ellipsoid, Params: []float64{tm, da, dr, alpha, beta, gamma}}
	T.FoldAngles()
	return T, nil
}

//eulerFromRotation returns the zyz angles of R = Rz(gamma) Ry(beta) Rz(alpha).
func eulerFromRotation(R mat.Matrix) (alpha, beta, gamma float64) {
	r22 := math.Max(-1, math.Min(1, R.At(2, 2)))
	beta = math.Acos(r22)
	if math.Sin(beta) > 1e-10 {
		alpha = math.Atan2(R.At(2, 1), R.At(2, 0))
		gamma = math.Atan2(R.At(1, 2), -R.At(0, 2))
		return
	}
	//gimbal lock, only alpha+gamma (or alpha-gamma) is defined.
	if r22 > 0 {
		return math.Atan2(R.At(0, 1), R.At(0, 0)), 0, 0
	}
	return math.Atan2(-R.At(0, 1), -R.At(0, 0)), math.Pi, 0
}

//wrap2Pi returns a in [0, 2pi).
func wrap2Pi(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	if a >= 2*math.Pi {
		a = 0
	}
	return a
}

//FoldAngles maps the orientation of the tensor into the canonical domain,
//without changing the tensor itself. For the spheroid, theta ends in [0, pi] and
//phi in [0, pi), as the unique axis has no sign. For the ellipsoid,
//alpha and gamma end in [0, pi) and beta in [0, pi], using the
//invariance of the tensor when two of its axes are inverted.
func (T *Tensor) FoldAngles() {
	p := T.Params
	switch T.Kind {
	case Spheroid:
		theta, phi := wrap2Pi(p[2]), wrap2Pi(p[3])
		if theta > math.Pi {
			//same axis
			theta = 2*math.Pi - theta
			phi = wrap2Pi(phi + math.Pi)
		}
		if phi >= math.Pi {
			//inverted axis
			phi -= math.Pi
			theta = math.Pi - theta
		}
		p[2], p[3] = theta, phi
	case Ellipsoid:
		alpha, beta, gamma := wrap2Pi(p[3]), wrap2Pi(p[4]), wrap2Pi(p[5])
		if beta > math.Pi {
			//x and y inverted
			beta = 2*math.Pi - beta
			gamma = wrap2Pi(gamma + math.Pi)
		}
		if gamma >= math.Pi {
			//y and z inverted
			gamma -= math.Pi
			beta = math.Pi - beta
			alpha = wrap2Pi(-alpha)
		}
		if alpha >= math.Pi {
			//x and y inverted
			alpha -= math.Pi
		}
		p[3], p[4], p[5] = alpha, beta, gamma
	}
}
