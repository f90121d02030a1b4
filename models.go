/*
 * models.go, part of gorelax.
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

type model struct {
	eq     jw.Equation
	params []ParamKind
}

//The usual model-free models. The tm-prefixed ones add a local correlation time.
var models = map[string]model{
	"m0": {jw.Original, []ParamKind{}},
	"m1": {jw.Original, []ParamKind{S2}},
	"m2": {jw.Original, []ParamKind{S2, Te}},
	"m3": {jw.Original, []ParamKind{S2, Rex}},
	"m4": {jw.Original, []ParamKind{S2, Te, Rex}},
	"m5": {jw.Extended, []ParamKind{S2f, S2, Ts}},
	"m6": {jw.Extended, []ParamKind{S2f, Tf, S2, Ts}},
	"m7": {jw.Extended, []ParamKind{S2f, S2, Ts, Rex}},
	"m8": {jw.Extended, []ParamKind{S2f, Tf, S2, Ts, Rex}},
	"m9": {jw.Original, []ParamKind{Rex}},
}

//Model returns the equation and parameters of the model-free model called name:
//m0 to m9, or tm0 to tm9 for the same models with a local correlation time.
func Model(name string) (jw.Equation, []ParamKind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	var local bool
	if strings.HasPrefix(name, "tm") {
		local = true
		name = "m" + strings.TrimPrefix(name, "tm")
	}
	m, ok := models[name]
	if !ok {
		return 0, nil, Error{fmt.Sprintf("Unknown model-free model %q", name), []string{"Model"}, true, ErrInvalidParamType}
	}
	params := make([]ParamKind, 0, len(m.params)+1)
	if local {
		params = append(params, LocalTm)
	}
	params = append(params, m.params...)
	return m.eq, params, nil
}
