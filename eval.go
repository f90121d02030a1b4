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

package relax

import (
	"sync"

	"github.com/rmera/gorelax/diffusion"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//evalCache remembers the last evaluated point and the highest derivative
//order computed there (0: chi2, 1: gradient, 2: Hessian).
type evalCache struct {
	x     []float64
	order int
}

func (c *evalCache) reset() {
	c.x = nil
	c.order = -1
}

//has returns true if the cache holds at least the given order at x.
func (c *evalCache) has(x []float64, order int) bool {
	return c.x != nil && c.order >= order && floats.Equal(c.x, x)
}

func (c *evalCache) set(x []float64, order int) {
	if len(c.x) != len(x) {
		c.x = make([]float64, len(x))
	}
	copy(c.x, x)
	c.order = order
}

//forSpins calls f on every spin, on up to M.cpus goroutines.
func (M *Mf) forSpins(f func(S *spinWork)) {
	if M.cpus <= 1 || len(M.spins) == 1 {
		for _, S := range M.spins {
			f(S)
		}
		return
	}
	sem := make(chan struct{}, M.cpus)
	var wg sync.WaitGroup
	for _, S := range M.spins {
		wg.Add(1)
		sem <- struct{}{}
		go func(S *spinWork) {
			defer wg.Done()
			f(S)
			<-sem
		}(S)
	}
	wg.Wait()
}

//compute evaluates every spin at the scaled point x up to the given order, and
//reduces the results, in spin order, into the chi2, gradient and Hessian of M (unscaled).
func (M *Mf) compute(x []float64, order int) {
	if len(x) != M.dim {
		panic(ErrDimension)
	}
	M.passes[order]++
	M.Unscale(M.phys, x)
	diff := M.tensor
	if M.mode.diffusionFree() {
		diff = M.phys[:M.kind.NParams()]
	}
	M.forSpins(func(S *spinWork) {
		S.eval(diff, S.own(M.phys), order)
	})
	M.chi = 0
	singular := false
	for _, S := range M.spins {
		M.chi += S.chi
		singular = singular || S.singular
	}
	if singular && !M.singularLogged {
		M.logf("gorelax: vanishing diffusion rate, correlation time replaced by %g s", diffusion.TauInf)
		M.singularLogged = true
	}
	if order >= 1 {
		for i := range M.grad {
			M.grad[i] = 0
		}
		for _, S := range M.spins {
			for a, g := range S.grad {
				M.grad[S.slots[a]] += g
			}
		}
	}
	if order >= 2 {
		M.hess.Zero()
		for _, S := range M.spins {
			for a := 0; a < S.n; a++ {
				ga := S.slots[a]
				for b := a; b < S.n; b++ {
					gb := S.slots[b]
					M.hess.SetSym(ga, gb, M.hess.At(ga, gb)+S.hess.At(a, b))
				}
			}
		}
	}
	M.cache.set(x, order)
}

//Func returns the chi2 at the scaled point x.
func (M *Mf) Func(x []float64) float64 {
	if !M.cache.has(x, 0) {
		M.compute(x, 0)
	}
	return M.chi
}

//Grad puts in dst the gradient of the chi2 over the scaled parameters at x,
//allocating dst if nil, and returns it.
func (M *Mf) Grad(dst, x []float64) []float64 {
	if !M.cache.has(x, 0) {
		M.Func(x)
	}
	if !M.cache.has(x, 1) {
		M.compute(x, 1)
	}
	if dst == nil {
		dst = make([]float64, M.dim)
	}
	if len(dst) != M.dim {
		panic(ErrDimension)
	}
	floats.MulTo(dst, M.grad, M.scale)
	return dst
}

//Hess puts in dst the Hessian of the chi2 over the scaled parameters at x,
//allocating dst if nil, and returns it. An empty dst is resized.
func (M *Mf) Hess(dst *mat.SymDense, x []float64) *mat.SymDense {
	if !M.cache.has(x, 1) {
		M.Grad(nil, x)
	}
	if !M.cache.has(x, 2) {
		M.compute(x, 2)
	}
	if dst == nil {
		dst = mat.NewSymDense(M.dim, nil)
	}
	if dst.IsEmpty() {
		dst.ReuseAsSym(M.dim)
	}
	if dst.SymmetricDim() != M.dim {
		panic(ErrDimension)
	}
	for i := 0; i < M.dim; i++ {
		for j := i; j < M.dim; j++ {
			dst.SetSym(i, j, M.hess.At(i, j)*M.scale[i]*M.scale[j])
		}
	}
	return dst
}
