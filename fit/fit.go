/*
 * fit.go, part of gorelax.
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

package fit

import (
	"math"

	relax "github.com/rmera/gorelax"
	"github.com/rmera/gorelax/diffusion"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat"
)

//Result is the outcome of a minimisation.
type Result struct {
	Method     Method
	Status     string
	X          []float64 //the scaled parameters
	Params     []float64 //the physical parameters
	Tensor     *diffusion.Tensor
	SpinValues [][]float64 //physical values of the parameters of each spin
	Chi2       float64
	//Chi2 over the degrees of freedom (data minus parameters), NaN if there are no degrees of freedom.
	ReducedChi2  float64
	Residuals    []float64 //weighted residuals
	ResidualMean float64
	ResidualSD   float64
	ResidualRMS  float64
	BackCalc     [][]float64
	Iterations   int
	FuncEvals    int
	GradEvals    int
	HessEvals    int
}

//problem returns the gonum problem for M. The Hessian is only given for the Newton method.
func problem(M *relax.Mf, method Method) optimize.Problem {
	p := optimize.Problem{
		Func: M.Func,
	}
	if method == NelderMead {
		return p
	}
	p.Grad = func(grad, x []float64) {
		M.Grad(grad, x)
	}
	if method == Newton {
		p.Hess = func(hess *mat.SymDense, x []float64) {
			M.Hess(hess, x)
		}
	}
	return p
}

//Minimise minimises the chi2 of M starting from the scaled point x0, or from M.X0() if x0 is nil.
//opts can be nil, in which case the default options are used. If the optimizer stops without
//converging, the result is returned along with a non-critical error caused by ErrNotConverged.
func Minimise(M *relax.Mf, x0 []float64, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if x0 == nil {
		x0 = M.X0()
	}
	if len(x0) != M.Dim() {
		return nil, Error{"Starting point doesn't match the dimension of the objective", []string{"Minimise"}, true, relax.ErrSetup}
	}
	method := opts.Method()
	ores, err := optimize.Minimize(problem(M, method), x0, opts.settings(), method.gonum())
	if ores == nil {
		return nil, errDecorate(err, "Minimise")
	}
	res := summary(M, ores.X)
	res.Method = method
	res.Status = ores.Status.String()
	res.Iterations = ores.MajorIterations
	res.FuncEvals = ores.FuncEvaluations
	res.GradEvals = ores.GradEvaluations
	res.HessEvals = ores.HessEvaluations
	if opts.Logger() != nil {
		opts.Logger().Printf("fit: %s finished with status %s after %d iterations, chi2 %g", method, res.Status, res.Iterations, res.Chi2)
	}
	if err == nil {
		err = ores.Status.Err()
	}
	if err != nil {
		return res, Error{err.Error(), []string{"Minimise"}, false, ErrNotConverged}
	}
	return res, nil
}

//summary evaluates M at the scaled point x and collects the statistics of the fit.
func summary(M *relax.Mf, x []float64) *Result {
	res := &Result{X: append([]float64(nil), x...)}
	res.Params = M.Unscale(nil, x)
	res.Tensor = M.Tensor(x)
	res.SpinValues = M.SpinValues(x)
	res.Chi2 = M.Func(x)
	res.BackCalc = M.BackCalc(x)
	res.Residuals = M.Residuals(x)
	n := len(res.Residuals)
	res.ReducedChi2 = math.NaN()
	if dof := n - M.Dim(); dof > 0 {
		res.ReducedChi2 = res.Chi2 / float64(dof)
	}
	if n > 0 {
		res.ResidualMean, res.ResidualSD = stat.MeanStdDev(res.Residuals, nil)
		res.ResidualRMS = floats.Norm(res.Residuals, 2) / math.Sqrt(float64(n))
	}
	return res
}
