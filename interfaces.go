/*
 * interfaces.go, part of gorelax.
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

//Objective is a function with analytic gradient and Hessian.
type Objective interface {
	//Func returns the value of the function at x
	Func(x []float64) float64

	//Grad puts the gradient at x in dst, allocating it if nil, and returns it.
	Grad(dst, x []float64) []float64

	//Hess puts the Hessian at x in dst, allocating it if nil, and returns it.
	Hess(dst *mat.SymDense, x []float64) *mat.SymDense
}

//LeastSquares is an Objective which is a sum of squared weighted residuals.
type LeastSquares interface {
	Objective

	//Residuals returns the weighted residuals at x.
	Residuals(x []float64) []float64

	//Jacobian returns the derivatives of the modeled data (rows) over the parameters (columns) at x.
	Jacobian(x []float64) *mat.Dense

	//Errors returns the experimental error of each datum, in the order of the residuals.
	Errors() []float64
}

// ErrorDecorator is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
type ErrorDecorator interface {
	Error() string
	Decorate(string) []string
	Critical() bool
}
