/*
 * kind.go, part of gorelax.
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
	"strings"
)

//Kind is the shape of a diffusion tensor.
type Kind int

const (
	Sphere    Kind = iota //isotropic
	Spheroid              //axially symmetric
	Ellipsoid             //fully anisotropic
)

//TauInf is the correlation time used in place of the infinite one
//of a tensor with a vanishing diffusion rate.
const TauInf = 1e99

var kindNames = map[Kind]string{Sphere: "sphere", Spheroid: "spheroid", Ellipsoid: "ellipsoid"}

var paramNames = map[Kind][]string{
	Sphere:    {"tm"},
	Spheroid:  {"tm", "Da", "theta", "phi"},
	Ellipsoid: {"tm", "Da", "Dr", "alpha", "beta", "gamma"},
}

func (K Kind) String() string {
	if s, ok := kindNames[K]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(K))
}

//NParams returns the number of geometric parameters of the tensor kind.
func (K Kind) NParams() int {
	return len(paramNames[K])
}

//NComponents returns the number of spectral components (weighted Lorentzians)
//the tensor kind gives rise to.
func (K Kind) NComponents() int {
	switch K {
	case Sphere:
		return 1
	case Spheroid:
		return 3
	case Ellipsoid:
		return 5
	}
	return 0
}

//NCosines returns the number of direction cosines needed by the kind.
func (K Kind) NCosines() int {
	switch K {
	case Spheroid:
		return 1
	case Ellipsoid:
		return 3
	}
	return 0
}

//ParamNames returns the names of the parameters of the kind, in order.
func (K Kind) ParamNames() []string {
	return append([]string(nil), paramNames[K]...)
}

//Valid returns true if K is one of the known kinds.
func (K Kind) Valid() bool {
	_, ok := kindNames[K]
	return ok
}

//ParseKind returns the Kind named by s. Besides the canonical names,
//the usual synonyms (iso, axial, aniso...) are accepted.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sphere", "iso", "isotropic":
		return Sphere, nil
	case "spheroid", "axial", "axially symmetric":
		return Spheroid, nil
	case "ellipsoid", "aniso", "anisotropic", "rhombic":
		return Ellipsoid, nil
	}
	return -1, Error{fmt.Sprintf("Unknown diffusion tensor kind %q", s), []string{"ParseKind"}, true, ErrInvalidParamType}
}
