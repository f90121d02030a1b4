/*
 * equation.go, part of gorelax.
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
	"strings"
)

//Equation is a variant of the model-free spectral density.
type Equation int

const (
	Original  Equation = iota //S2, te
	Extended                  //S2f, tf, S2, ts
	Extended2                 //S2f, tf, S2s, ts
)

var equationNames = map[Equation]string{Original: "mf_orig", Extended: "mf_ext", Extended2: "mf_ext2"}

func (E Equation) String() string {
	if s, ok := equationNames[E]; ok {
		return s
	}
	return fmt.Sprintf("Equation(%d)", int(E))
}

//ParseEquation returns the Equation named by s.
func ParseEquation(s string) (Equation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mf_orig", "original", "orig":
		return Original, nil
	case "mf_ext", "extended", "ext":
		return Extended, nil
	case "mf_ext2", "extended2", "ext2":
		return Extended2, nil
	}
	return -1, Error{fmt.Sprintf("Unknown model-free equation %q", s), []string{"ParseEquation"}, true, ErrInvalidParamType}
}

//Param is an internal-motion parameter entering the spectral density.
type Param int

const (
	S2 Param = iota
	S2f
	S2s
	Te
	Tf
	Ts
	nParams
)

var paramNames = [nParams]string{"S2", "S2f", "S2s", "te", "tf", "ts"}

func (P Param) String() string {
	if P >= 0 && P < nParams {
		return paramNames[P]
	}
	return fmt.Sprintf("Param(%d)", int(P))
}

//IsTime returns true for the internal correlation times.
func (P Param) IsTime() bool {
	return P == Te || P == Tf || P == Ts
}
