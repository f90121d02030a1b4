/*
 * mf.go, part of gorelax.
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
	"log"
	"math"

	"github.com/rmera/gorelax/diffusion"
	"github.com/rmera/gorelax/ri"
	"gonum.org/v1/gonum/mat"
)

//Setup contains everything needed to build an Mf objective.
type Setup struct {
	Mode Mode
	//The diffusion tensor. Its parameters are the starting point in the modes where it
	//is optimized, and the fixed values otherwise. Ignored in the local tm mode.
	Tensor *diffusion.Tensor
	Spins  []*Spin
	//The heteronucleus, such as "15N" or "13C". "15N" if empty.
	Nucleus string
	//Overrides the constants derived from Nucleus, if not nil.
	Constants *ri.Constants
}

//Mf is the model-free objective function: the chi2 of a set of spins as a function of
//the diffusion tensor parameters and/or the model-free parameters of the spins,
//with its analytic gradient and Hessian.
//An Mf is not safe for concurrent use.
type Mf struct {
	mode   Mode
	kind   diffusion.Kind
	tensor []float64 //the tensor parameters, used when the tensor is fixed
	spins  []*spinWork
	consts ri.Constants
	dim    int
	ndata  int
	scale  []float64
	x0     []float64 //physical starting point
	cpus   int
	log    *log.Logger

	cache evalCache
	phys  []float64
	chi   float64
	grad  []float64
	hess  *mat.SymDense

	singularLogged bool
	passes         [3]int //evaluations of each order, for testing
}

//NewMf validates setup and returns an Mf objective for it. opts can be nil, in which
//case the default options are used. Every error is returned here, before any evaluation.
func NewMf(setup Setup, opts *Options) (*Mf, error) {
	name := "NewMf"
	if opts == nil {
		opts = DefaultOptions()
	}
	if _, ok := modeNames[setup.Mode]; !ok {
		return nil, Error{"Unknown optimization mode", []string{name}, true, ErrInvalidParamType}
	}
	if len(setup.Spins) == 0 {
		return nil, setupError(name, "No spins given")
	}
	if (setup.Mode == SingleSpin || setup.Mode == LocalTmMode) && len(setup.Spins) != 1 {
		return nil, setupError(name, "The %s mode takes exactly one spin, got %d", setup.Mode, len(setup.Spins))
	}
	M := &Mf{mode: setup.Mode, cpus: opts.Cpus(), log: opts.Logger()}
	M.kind = diffusion.Sphere
	if setup.Mode != LocalTmMode {
		T := setup.Tensor
		if T == nil {
			return nil, setupError(name, "The %s mode needs a diffusion tensor", setup.Mode)
		}
		if !T.Kind.Valid() {
			return nil, Error{"Unknown diffusion tensor kind", []string{name}, true, ErrInvalidParamType}
		}
		if len(T.Params) != T.Kind.NParams() {
			return nil, setupError(name, "A %s tensor needs %d parameters, got %d", T.Kind, T.Kind.NParams(), len(T.Params))
		}
		M.kind = T.Kind
		M.tensor = append([]float64(nil), T.Params...)
	}
	if setup.Constants != nil {
		M.consts = *setup.Constants
	} else {
		nucleus := setup.Nucleus
		if nucleus == "" {
			nucleus = "15N"
		}
		var err error
		M.consts, err = DefaultConstants(nucleus)
		if err != nil {
			return nil, errDecorate(err, name)
		}
	}
	if setup.Mode.diffusionFree() {
		M.x0 = append(M.x0, M.tensor...)
	}
	for _, S := range setup.Spins {
		if S == nil {
			return nil, setupError(name, "Nil spin given")
		}
		form, pos, err := S.validate(M.kind, M.mode)
		if err != nil {
			return nil, errDecorate(err, name)
		}
		W, err := newSpinWork(S, form, pos, M.kind, M.mode, M.consts, len(M.x0))
		if err != nil {
			return nil, errDecorate(err, name)
		}
		M.spins = append(M.spins, W)
		M.ndata += len(S.Data)
		if !M.mode.spinsFree() {
			continue
		}
		if S.Values != nil {
			M.x0 = append(M.x0, S.Values...)
		} else {
			for _, p := range S.Params {
				M.x0 = append(M.x0, p.DefaultValue())
			}
		}
	}
	M.dim = len(M.x0)
	if M.dim == 0 {
		return nil, setupError(name, "Nothing to optimize in the %s mode", M.mode)
	}
	switch s := opts.Scaling(); {
	case s != nil:
		if len(s) != M.dim {
			return nil, setupError(name, "%d scaling factors given for %d parameters", len(s), M.dim)
		}
		for i, v := range s {
			if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, setupError(name, "Invalid scaling factor %v for parameter %d", v, i)
			}
		}
		M.scale = append([]float64(nil), s...)
	case opts.DefaultScaling():
		M.scale = DefaultScaling(&setup)
	default:
		M.scale = make([]float64, M.dim)
		for i := range M.scale {
			M.scale[i] = 1
		}
	}
	M.phys = make([]float64, M.dim)
	M.grad = make([]float64, M.dim)
	M.hess = mat.NewSymDense(M.dim, nil)
	M.cache.reset()
	M.logf("gorelax: %s mode, %s tensor, %d spins, %d data, %d parameters, %d goroutines", M.mode, M.kind, len(M.spins), M.ndata, M.dim, M.cpus)
	return M, nil
}

func (M *Mf) logf(format string, a ...interface{}) {
	if M.log != nil {
		M.log.Printf(format, a...)
	}
}

//Mode returns the optimization mode of the objective.
func (M *Mf) Mode() Mode { return M.mode }

//Dim returns the number of optimized parameters.
func (M *Mf) Dim() int { return M.dim }

//NData returns the total number of relaxation data.
func (M *Mf) NData() int { return M.ndata }

//Scaling returns a copy of the scaling factors. The physical parameter i is the
//optimized parameter i times the factor i.
func (M *Mf) Scaling() []float64 {
	return append([]float64(nil), M.scale...)
}

//Unscale puts in dst the physical parameters for the scaled vector x, allocating dst if nil, and returns it.
func (M *Mf) Unscale(dst, x []float64) []float64 {
	if len(x) != M.dim {
		panic(ErrDimension)
	}
	if dst == nil {
		dst = make([]float64, M.dim)
	}
	for i, v := range x {
		dst[i] = v * M.scale[i]
	}
	return dst
}

//Scale puts in dst the scaled vector for the physical parameters p, allocating dst if nil, and returns it.
func (M *Mf) Scale(dst, p []float64) []float64 {
	if len(p) != M.dim {
		panic(ErrDimension)
	}
	if dst == nil {
		dst = make([]float64, M.dim)
	}
	for i, v := range p {
		dst[i] = v / M.scale[i]
	}
	return dst
}

//X0 returns the scaled starting point: the tensor parameters if they are optimized,
//followed by the values of each spin (or defaults, for a spin without values).
func (M *Mf) X0() []float64 {
	return M.Scale(nil, M.x0)
}

//Tensor returns the diffusion tensor for the scaled vector x. In the local tm
//mode, it returns nil.
func (M *Mf) Tensor(x []float64) *diffusion.Tensor {
	if M.mode == LocalTmMode {
		return nil
	}
	params := M.tensor
	if M.mode.diffusionFree() {
		params = M.Unscale(nil, x)[:M.kind.NParams()]
	}
	T, _ := diffusion.NewTensor(M.kind, params...)
	return T
}

//SpinValues returns the physical values of the parameters of each spin for the
//scaled vector x, in the order of their Params.
func (M *Mf) SpinValues(x []float64) [][]float64 {
	phys := M.Unscale(nil, x)
	ret := make([][]float64, len(M.spins))
	for i, S := range M.spins {
		ret[i] = append([]float64(nil), S.own(phys)...)
	}
	return ret
}
