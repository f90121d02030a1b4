/*
 * trace.go, part of gorelax.
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
	"log"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"
)

//tracer is an optimize.Recorder that logs each major iteration.
type tracer struct {
	log  *log.Logger
	iter int
}

func (T *tracer) Init() error {
	T.iter = 0
	return nil
}

func (T *tracer) Record(loc *optimize.Location, op optimize.Operation, stats *optimize.Stats) error {
	if op != optimize.MajorIteration {
		return nil
	}
	T.iter++
	if loc.Gradient != nil {
		T.log.Printf("fit: iteration %d chi2 %g |grad| %g evaluations %d", T.iter, loc.F, floats.Norm(loc.Gradient, 2), stats.FuncEvaluations)
		return nil
	}
	T.log.Printf("fit: iteration %d chi2 %g evaluations %d", T.iter, loc.F, stats.FuncEvaluations)
	return nil
}
