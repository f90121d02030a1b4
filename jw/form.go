/*
 * form.go, part of gorelax.
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

package jw

import (
	"fmt"

	"github.com/rmera/gorelax/diffusion"
)

//monomial is coef times the product of the parameters at the given
//positions of the parameter set. No parameter appears twice.
type monomial struct {
	coef float64
	vars []int
}

//amplitude is the polynomial multiplying one Lorentzian term.
type amplitude []monomial

func (a amplitude) value(x []float64) float64 {
	var r float64
	for _, m := range a {
		v := m.coef
		for _, i := range m.vars {
			v *= x[i]
		}
		r += v
	}
	return r
}

//partial returns the derivative of a over the parameters at p (and at q, if q >= 0).
//The polynomials are multilinear, so the second derivative is zero when p == q.
func (a amplitude) partial(x []float64, p, q int) float64 {
	if p == q {
		return 0
	}
	var r float64
	for _, m := range a {
		v := m.coef
		found := 0
		for _, i := range m.vars {
			if i == p || i == q {
				found++
				continue
			}
			v *= x[i]
		}
		if (q < 0 && found == 1) || found == 2 {
			r += v
		}
	}
	return r
}

//term is a Lorentzian weighted by its amplitude. time is the position in the
//parameter set of the internal correlation time, or -1 if the term uses
//only the global correlation times.
type term struct {
	amp  amplitude
	time int
}

type paramMask uint

func maskOf(set []Param) paramMask {
	var m paramMask
	for _, p := range set {
		m |= 1 << uint(p)
	}
	return m
}

func mask(p ...Param) paramMask { return maskOf(p) }

type formKey struct {
	eq  Equation
	set paramMask
}

//builders return the terms of J(w) for an equation and set of parameters,
//given the position of each parameter in the set.
var forms = map[formKey]func(ix func(Param) int) []term{
	{Original, mask()}: func(ix func(Param) int) []term {
		return []term{{amplitude{{1, nil}}, -1}}
	},
	{Original, mask(S2)}: func(ix func(Param) int) []term {
		return []term{{amplitude{{1, []int{ix(S2)}}}, -1}}
	},
	{Original, mask(S2, Te)}: func(ix func(Param) int) []term {
		s2 := ix(S2)
		return []term{
			{amplitude{{1, []int{s2}}}, -1},
			{amplitude{{1, nil}, {-1, []int{s2}}}, ix(Te)},
		}
	},
	{Extended, mask(S2f, S2, Ts)}: func(ix func(Param) int) []term {
		return extended(ix, false)
	},
	{Extended, mask(S2f, Tf, S2, Ts)}: func(ix func(Param) int) []term {
		return extended(ix, true)
	},
	{Extended2, mask(S2f, S2s, Ts)}: func(ix func(Param) int) []term {
		return extended2(ix, false)
	},
	{Extended2, mask(S2f, Tf, S2s, Ts)}: func(ix func(Param) int) []term {
		return extended2(ix, true)
	},
}

//S2 tau, (S2f-S2) ts, (1-S2f) tf
func extended(ix func(Param) int, fast bool) []term {
	s2, s2f := ix(S2), ix(S2f)
	ret := []term{
		{amplitude{{1, []int{s2}}}, -1},
		{amplitude{{1, []int{s2f}}, {-1, []int{s2}}}, ix(Ts)},
	}
	if fast {
		ret = append(ret, term{amplitude{{1, nil}, {-1, []int{s2f}}}, ix(Tf)})
	}
	return ret
}

//S2f S2s tau, S2f(1-S2s) ts, (1-S2f) tf
func extended2(ix func(Param) int, fast bool) []term {
	s2s, s2f := ix(S2s), ix(S2f)
	ret := []term{
		{amplitude{{1, []int{s2f, s2s}}}, -1},
		{amplitude{{1, []int{s2f}}, {-1, []int{s2f, s2s}}}, ix(Ts)},
	}
	if fast {
		ret = append(ret, term{amplitude{{1, nil}, {-1, []int{s2f}}}, ix(Tf)})
	}
	return ret
}

//variable is a parameter with a derivative slot. Exactly one of diff
//(index among the tensor parameters) and param (position in the set) is not -1.
type variable struct {
	slot  int
	diff  int
	param int
}

//Form is the spectral density for one combination of tensor kind, equation and
//parameters, bound to the derivative slots of one spin.
//A Form keeps scratch space, so it is not safe for concurrent use.
type Form struct {
	Kind     diffusion.Kind
	Equation Equation
	Set      []Param
	terms    []term
	n        int
	vars     []variable
	scratch  scratch
}

//NewForm returns the Form for the tensor kind, the equation and the internal parameters
//set, given in the order their values will be supplied to Eval. Illegal
//combinations of parameters return an error with ErrInvalidParamSet as its cause, and
//combinations that have no formula one with ErrUnsupported.
//The returned Form is bound to derivatives over the internal parameters only, in the order of set.
func NewForm(kind diffusion.Kind, eq Equation, set []Param) (*Form, error) {
	if !kind.Valid() {
		return nil, Error{fmt.Sprintf("No spectral density for tensor kind %s", kind), []string{"NewForm"}, true, ErrUnsupported}
	}
	if _, ok := equationNames[eq]; !ok {
		return nil, Error{fmt.Sprintf("No spectral density for equation %s", eq), []string{"NewForm"}, true, ErrUnsupported}
	}
	pos := make(map[Param]int, len(set))
	for i, p := range set {
		if p < 0 || p >= nParams {
			return nil, Error{fmt.Sprintf("Unknown spectral density parameter %s", p), []string{"NewForm"}, true, ErrInvalidParamType}
		}
		if _, ok := pos[p]; ok {
			return nil, Error{fmt.Sprintf("Parameter %s given twice", p), []string{"NewForm"}, true, ErrInvalidParamSet}
		}
		pos[p] = i
	}
	build, ok := forms[formKey{eq, maskOf(set)}]
	if !ok {
		return nil, Error{fmt.Sprintf("The parameters %v are not a legal set for the %s equation", set, eq), []string{"NewForm"}, true, ErrInvalidParamSet}
	}
	F := &Form{
		Kind:     kind,
		Equation: eq,
		Set:      append([]Param(nil), set...),
		terms:    build(func(p Param) int { return pos[p] }),
	}
	internal := make([]int, len(set))
	for i := range internal {
		internal[i] = i
	}
	if err := F.Bind(len(set), nil, internal); err != nil {
		return nil, errDecorate(err, "NewForm")
	}
	return F, nil
}

//Bind sets the derivative layout of the Form: n slots in total, diff[i] is the slot for the
//ith tensor parameter and internal[i] the one of the ith parameter of the set. A negative slot
//means the parameter is fixed. A nil diff means all the tensor parameters are fixed.
func (F *Form) Bind(n int, diff []int, internal []int) error {
	if diff != nil && len(diff) != F.Kind.NParams() {
		return Error{fmt.Sprintf("%d tensor slots given for a %s tensor", len(diff), F.Kind), []string{"Bind"}, true, nil}
	}
	if len(internal) != len(F.Set) {
		return Error{fmt.Sprintf("%d internal slots given for %d parameters", len(internal), len(F.Set)), []string{"Bind"}, true, nil}
	}
	used := make(map[int]bool)
	var vars []variable
	add := func(slot, d, p int) error {
		if slot < 0 {
			return nil
		}
		if slot >= n || used[slot] {
			return Error{fmt.Sprintf("Slot %d out of range or repeated", slot), []string{"Bind"}, true, nil}
		}
		used[slot] = true
		vars = append(vars, variable{slot, d, p})
		return nil
	}
	for i, s := range diff {
		if err := add(s, i, -1); err != nil {
			return err
		}
	}
	for i, s := range internal {
		if err := add(s, -1, i); err != nil {
			return err
		}
	}
	F.n = n
	F.vars = vars
	F.scratch = newScratch(len(F.terms), len(vars))
	return nil
}

//NSlots returns the length of the derivative vectors produced by the Form.
func (F *Form) NSlots() int {
	return F.n
}

//NTerms returns the number of Lorentzian terms per spectral component.
func (F *Form) NTerms() int {
	return len(F.terms)
}

//errDecorate is a helper function that asserts that the error is
//implements jw.Error and decorates the error with the caller's name before returning it.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	err2, ok := err.(Error)
	if !ok {
		return err
	}
	err2.deco = err2.Decorate(caller)
	return err2
}
