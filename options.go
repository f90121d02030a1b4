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

package relax

import (
	"log"
	"runtime"
)

//Options contains the options for an Mf objective.
type Options struct {
	cpus           int
	logger         *log.Logger
	scaling        []float64
	defaultScaling bool
}

//DefaultOptions returns an Options with the default options: as many goroutines
//as logical CPUs, no logging, and the default parameter scaling.
func DefaultOptions() *Options {
	ret := new(Options)
	ret.cpus = runtime.NumCPU()
	ret.defaultScaling = true
	return ret
}

//Cpus returns the current value of the Cpus option (the maximum number of goroutines to
//use when evaluating the spins concurrently) and sets it, if
//a valid value is given. 1 means a sequential evaluation.
func (O *Options) Cpus(cpus ...int) int {
	ret := O.cpus
	if len(cpus) > 0 && cpus[0] > 0 {
		O.cpus = cpus[0]
	}
	return ret
}

//Logger returns the logger used to report the setup and the diffusion tensors
//with vanishing rates, and sets it, if given. A nil logger means no logging.
func (O *Options) Logger(l ...*log.Logger) *log.Logger {
	ret := O.logger
	if len(l) > 0 {
		O.logger = l[0]
	}
	return ret
}

//DefaultScaling returns whether the parameters are scaled with the default factors
//when no explicit scaling is given, and sets it, if a value is given.
func (O *Options) DefaultScaling(def ...bool) bool {
	ret := O.defaultScaling
	if len(def) > 0 {
		O.defaultScaling = def[0]
	}
	return ret
}

//Scaling returns the explicit scaling factors, if any, and sets them, if given.
//The physical parameters are the optimized ones times the factors. A nil slice
//removes the explicit scaling.
func (O *Options) Scaling(s ...[]float64) []float64 {
	ret := O.scaling
	if len(s) > 0 {
		O.scaling = append([]float64(nil), s[0]...)
		if s[0] == nil {
			O.scaling = nil
		}
	}
	return ret
}
