/*
 * params.go, part of gorelax.
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
	"fmt"
	"strings"

	"github.com/rmera/gorelax/jw"
)

//ParamKind is a model-free parameter of a spin.
type ParamKind int

const (
	LocalTm ParamKind = iota //local correlation time
	S2                       //order parameter
	S2f                      //order parameter of the fast motion
	S2s                      //order parameter of the slow motion
	Te                       //internal correlation time
	Tf                       //correlation time of the fast motion
	Ts                       //correlation time of the slow motion
	Rex                      //chemical exchange, scaled by the squared proton frequency
	R                        //bond length
	CSA                      //chemical shift anisotropy
	nParamKinds
)

var paramKindNames = [nParamKinds]string{"local_tm", "s2", "s2f", "s2s", "te", "tf", "ts", "rex", "r", "csa"}

func (P ParamKind) String() string {
	if P.Valid() {
		return paramKindNames[P]
	}
	return fmt.Sprintf("ParamKind(%d)", int(P))
}

//Valid returns true if P is a known parameter.
func (P ParamKind) Valid() bool {
	return P >= 0 && P < nParamKinds
}

//DefaultValue returns a usual starting value for the parameter, in SI units.
func (P ParamKind) DefaultValue() float64 {
	switch P {
	case LocalTm:
		return 10 * Ns2S
	case S2, S2f, S2s:
		return 0.8
	case Te:
		return 100 * Ps2S
	case Tf:
		return 10 * Ps2S
	case Ts:
		return 1000 * Ps2S
	case R:
		return NHBond
	case CSA:
		return CSA15N
	}
	return 0
}

//jwParam returns the spectral density parameter corresponding to P, if any.
func (P ParamKind) jwParam() (jw.Param, bool) {
	switch P {
	case S2:
		return jw.S2, true
	case S2f:
		return jw.S2f, true
	case S2s:
		return jw.S2s, true
	case Te:
		return jw.Te, true
	case Tf:
		return jw.Tf, true
	case Ts:
		return jw.Ts, true
	}
	return 0, false
}

//ParseParamKind returns the parameter named by s (case insensitive).
func ParseParamKind(s string) (ParamKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "tm" {
		return LocalTm, nil
	}
	for i, v := range paramKindNames {
		if v == s {
			return ParamKind(i), nil
		}
	}
	return -1, Error{fmt.Sprintf("Unknown model-free parameter %q", s), []string{"ParseParamKind"}, true, ErrInvalidParamType}
}

//DataType is the kind of a relaxation datum.
type DataType int

const (
	R1 DataType = iota
	R2
	NOE
)

func (D DataType) String() string {
	switch D {
	case R1:
		return "R1"
	case R2:
		return "R2"
	case NOE:
		return "NOE"
	}
	return fmt.Sprintf("DataType(%d)", int(D))
}

//ParseDataType returns the data type named by s.
func ParseDataType(s string) (DataType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "R1":
		return R1, nil
	case "R2":
		return R2, nil
	case "NOE":
		return NOE, nil
	}
	return -1, Error{fmt.Sprintf("Unknown relaxation data type %q", s), []string{"ParseDataType"}, true, ErrInvalidParamType}
}

//Mode is the optimization mode of an Mf objective.
type Mode int

const (
	SingleSpin    Mode = iota //one spin, fixed diffusion tensor
	LocalTmMode               //one spin with its own local correlation time
	DiffusionOnly             //the diffusion tensor, over all spins with fixed parameters
	Joint                     //the diffusion tensor and all the spins
)

var modeNames = map[Mode]string{SingleSpin: "mf", LocalTmMode: "local_tm", DiffusionOnly: "diff", Joint: "all"}

func (M Mode) String() string {
	if s, ok := modeNames[M]; ok {
		return s
	}
	return fmt.Sprintf("Mode(%d)", int(M))
}

//diffusionFree returns true if the tensor parameters are optimized in the mode.
func (M Mode) diffusionFree() bool {
	return M == DiffusionOnly || M == Joint
}

//spinsFree returns true if the spin parameters are optimized in the mode.
func (M Mode) spinsFree() bool {
	return M != DiffusionOnly
}

//ParseMode returns the mode named by s: mf, local_tm, diff or all.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, v := range modeNames {
		if v == s {
			return k, nil
		}
	}
	return -1, Error{fmt.Sprintf("Unknown optimization mode %q", s), []string{"ParseMode"}, true, ErrInvalidParamType}
}
