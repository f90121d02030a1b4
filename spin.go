/*
 * spin.go, part of gorelax.
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
	"math"

	"github.com/rmera/gorelax/diffusion"
	"github.com/rmera/gorelax/jw"
	v3 "github.com/rmera/gorelax/v3"
)

//Datum is one relaxation measurement.
type Datum struct {
	Type  DataType
	Frq   int     //index of the field in the Frq slice of the spin
	Value float64 //R1 and R2 in s^-1, the NOE is dimensionless
	Error float64
}

//Spin contains the model and the data of one spin.
type Spin struct {
	Name     string
	Equation jw.Equation
	Params   []ParamKind
	//Values of the parameters, in the order of Params. Used as the fixed values when the
	//spin is not optimized, and as the starting point otherwise.
	Values []float64
	R      float64    //bond length, used when R is not among the parameters
	CSA    float64    //used when CSA is not among the parameters
	XH     *v3.Matrix //the XH unit vector, needed by the spheroid and the ellipsoid
	Frq    []float64  //proton Larmor frequencies (Hz)
	Data   []Datum
}

//NewSpin returns a spin with the given model, with the amide 15N bond length and CSA, and no data.
func NewSpin(name string, eq jw.Equation, params ...ParamKind) *Spin {
	return &Spin{Name: name, Equation: eq, Params: params, R: NHBond, CSA: CSA15N}
}

//AddField adds a field (proton frequency, Hz) and returns its index.
func (S *Spin) AddField(frq float64) int {
	for i, v := range S.Frq {
		if v == frq {
			return i
		}
	}
	S.Frq = append(S.Frq, frq)
	return len(S.Frq) - 1
}

//AddDatum adds a relaxation datum measured at the proton frequency frq.
func (S *Spin) AddDatum(t DataType, frq, value, err float64) {
	S.Data = append(S.Data, Datum{Type: t, Frq: S.AddField(frq), Value: value, Error: err})
}

//index returns the position of p among the parameters of the spin, or -1.
func (S *Spin) index(p ParamKind) int {
	for i, v := range S.Params {
		if v == p {
			return i
		}
	}
	return -1
}

//noePairs returns, for each datum, the index of the R1 datum measured at the same
//field if the datum is an NOE and such R1 exists, and -1 otherwise.
func (S *Spin) noePairs() []int {
	ret := make([]int, len(S.Data))
	for i, d := range S.Data {
		ret[i] = -1
		if d.Type != NOE {
			continue
		}
		for j, d2 := range S.Data {
			if d2.Type == R1 && d2.Frq == d.Frq {
				ret[i] = j
				break
			}
		}
	}
	return ret
}

//validate checks the spin for the tensor kind and mode, and returns the spectral density form
//for it, along with the positions, in Params, of the parameters of the form.
func (S *Spin) validate(kind diffusion.Kind, mode Mode) (*jw.Form, []int, error) {
	name := "validate: " + S.Name
	seen := make(map[ParamKind]bool)
	var set []jw.Param
	var pos []int
	for i, p := range S.Params {
		if !p.Valid() {
			return nil, nil, Error{"Unknown parameter " + p.String() + " in spin " + S.Name, []string{name}, true, ErrInvalidParamType}
		}
		if seen[p] {
			return nil, nil, Error{"Parameter " + p.String() + " repeated in spin " + S.Name, []string{name}, true, ErrInvalidParamSet}
		}
		seen[p] = true
		if jp, ok := p.jwParam(); ok {
			set = append(set, jp)
			pos = append(pos, i)
		}
	}
	if seen[LocalTm] != (mode == LocalTmMode) {
		return nil, nil, Error{"The local tm parameter must be present in, and only in, the local tm mode (spin " + S.Name + ")", []string{name}, true, ErrInvalidParamSet}
	}
	if mode == LocalTmMode {
		kind = diffusion.Sphere
	}
	form, err := jw.NewForm(kind, S.Equation, set)
	if err != nil {
		return nil, nil, errDecorate(err, name)
	}
	if S.Values != nil && len(S.Values) != len(S.Params) {
		return nil, nil, setupError(name, "Spin %s has %d values for %d parameters", S.Name, len(S.Values), len(S.Params))
	}
	if !mode.spinsFree() && len(S.Values) != len(S.Params) {
		return nil, nil, setupError(name, "Spin %s needs the values of its parameters in the %s mode", S.Name, mode)
	}
	if !seen[R] && !(S.R > 0) {
		return nil, nil, setupError(name, "Spin %s has a fixed bond length of %v", S.Name, S.R)
	}
	if kind != diffusion.Sphere {
		if S.XH == nil || S.XH.NVecs() != 1 {
			return nil, nil, setupError(name, "Spin %s needs one XH vector for a %s tensor", S.Name, kind)
		}
		if n := S.XH.Norm(2); math.IsNaN(n) || n == 0 {
			return nil, nil, setupError(name, "Spin %s has a zero XH vector", S.Name)
		}
	}
	if len(S.Frq) == 0 || len(S.Data) == 0 {
		return nil, nil, setupError(name, "Spin %s has no data", S.Name)
	}
	for _, f := range S.Frq {
		if !(f > 0) {
			return nil, nil, setupError(name, "Spin %s has a non-positive frequency %v", S.Name, f)
		}
	}
	for i, d := range S.Data {
		if d.Type < R1 || d.Type > NOE {
			return nil, nil, Error{"Unknown data type in spin " + S.Name, []string{name}, true, ErrInvalidParamType}
		}
		if d.Frq < 0 || d.Frq >= len(S.Frq) {
			return nil, nil, setupError(name, "Datum %d of spin %s has field index %d out of range", i, S.Name, d.Frq)
		}
		if !(d.Error > 0) {
			return nil, nil, setupError(name, "Datum %d of spin %s has a non-positive error %v", i, S.Name, d.Error)
		}
	}
	return form, pos, nil
}
