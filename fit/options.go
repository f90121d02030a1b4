/*
 * options.go, part of gorelax.
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
	"fmt"
	"log"
	"strings"

	relax "github.com/rmera/gorelax"
	"gonum.org/v1/gonum/optimize"
)

//Method is an optimization method.
type Method int

const (
	Newton     Method = iota //uses the analytic Hessian
	BFGS                     //quasi-Newton
	LBFGS                    //limited memory BFGS
	NelderMead               //simplex, uses only the chi2
)

var methodNames = [...]string{"newton", "bfgs", "lbfgs", "simplex"}

func (M Method) String() string {
	if M >= 0 && int(M) < len(methodNames) {
		return methodNames[M]
	}
	return fmt.Sprintf("Method(%d)", int(M))
}

//ParseMethod returns the method named by s: newton, bfgs, lbfgs or simplex.
func ParseMethod(s string) (Method, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, v := range methodNames {
		if v == s {
			return Method(i), nil
		}
	}
	return -1, Error{fmt.Sprintf("Unknown optimization method %q", s), []string{"ParseMethod"}, true, relax.ErrInvalidParamType}
}

func (M Method) gonum() optimize.Method {
	switch M {
	case BFGS:
		return &optimize.BFGS{}
	case LBFGS:
		return &optimize.LBFGS{}
	case NelderMead:
		return &optimize.NelderMead{}
	}
	return &optimize.Newton{}
}

//Options contains the options for a minimisation.
type Options struct {
	method   Method
	gradTol  float64
	funcTol  float64
	maxIter  int
	maxEvals int
	logger   *log.Logger
}

//DefaultOptions returns the default options: the Newton method, stopping when the
//gradient norm drops below 1e-6 or after 500 iterations, without tracing.
func DefaultOptions() *Options {
	return &Options{method: Newton, gradTol: 1e-6, funcTol: 1e-12, maxIter: 500}
}

//Method returns the optimization method, and sets it, if a valid one is given.
func (O *Options) Method(m ...Method) Method {
	ret := O.method
	if len(m) > 0 && m[0] >= 0 && int(m[0]) < len(methodNames) {
		O.method = m[0]
	}
	return ret
}

//GradientThreshold returns the norm of the (scaled) gradient below which the
//minimisation stops, and sets it, if a positive value is given.
func (O *Options) GradientThreshold(t ...float64) float64 {
	ret := O.gradTol
	if len(t) > 0 && t[0] > 0 {
		O.gradTol = t[0]
	}
	return ret
}

//FunctionTolerance returns the relative change of the chi2 below which the simplex
//method stops, and sets it, if a positive value is given.
func (O *Options) FunctionTolerance(t ...float64) float64 {
	ret := O.funcTol
	if len(t) > 0 && t[0] > 0 {
		O.funcTol = t[0]
	}
	return ret
}

//MaxIterations returns the maximum number of major iterations, and sets it, if a positive value is given.
func (O *Options) MaxIterations(n ...int) int {
	ret := O.maxIter
	if len(n) > 0 && n[0] > 0 {
		O.maxIter = n[0]
	}
	return ret
}

//MaxEvaluations returns the maximum number of chi2 evaluations (0 for no limit), and sets it, if given.
func (O *Options) MaxEvaluations(n ...int) int {
	ret := O.maxEvals
	if len(n) > 0 && n[0] >= 0 {
		O.maxEvals = n[0]
	}
	return ret
}

//Logger returns the logger that traces the iterations, and sets it, if given. nil means no tracing.
func (O *Options) Logger(l ...*log.Logger) *log.Logger {
	ret := O.logger
	if len(l) > 0 {
		O.logger = l[0]
	}
	return ret
}

func (O *Options) settings() *optimize.Settings {
	s := &optimize.Settings{
		GradientThreshold: O.gradTol,
		MajorIterations:   O.maxIter,
		FuncEvaluations:   O.maxEvals,
	}
	if O.method == NelderMead {
		s.Converger = &optimize.FunctionConverge{Relative: O.funcTol, Iterations: 50}
	}
	if O.logger != nil {
		s.Recorder = &tracer{log: O.logger}
	}
	return s
}
