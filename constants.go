/*
 * constants.go, part of gorelax.
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
	"math"

	"github.com/rmera/gorelax/ri"
)

//This provides useful conversion factors and physical constants

//Conversions
const (
	Deg2Rad = math.Pi / 180
	Rad2Deg = 180 / math.Pi
	PPM     = 1e-6
	Ps2S    = 1e-12 //picoseconds to seconds
	Ns2S    = 1e-9
)

//Physical constants, SI units.
const (
	Planck = 6.62606876e-34
	Mu0    = 4 * math.Pi * 1e-7
	NHBond = 1.02e-10 //N-H bond length
	CSA15N = -172e-6  //CSA of the backbone amide nitrogen
)

//A map for assigning gyromagnetic ratios (rad s^-1 T^-1) to nuclei.
//Note that just the usual heteronuclei are present
var nucleusGyro = map[string]float64{
	"1H":  26.7522212e7,
	"13C": 6.728e7,
	"15N": -2.7126e7,
	"19F": 25.18148e7,
	"31P": 10.8394e7,
}

//Gyromagnetic returns the gyromagnetic ratio of the nucleus, given as "15N", "13C", etc.
func Gyromagnetic(nucleus string) (float64, error) {
	g, ok := nucleusGyro[nucleus]
	if !ok {
		return 0, Error{fmt.Sprintf("Unknown nucleus %q", nucleus), []string{"Gyromagnetic"}, true, ErrInvalidParamType}
	}
	return g, nil
}

//DefaultConstants returns the physical constants for the relaxation of the given
//heteronucleus by its attached proton.
func DefaultConstants(nucleus string) (ri.Constants, error) {
	gx, err := Gyromagnetic(nucleus)
	if err != nil {
		return ri.Constants{}, errDecorate(err, "DefaultConstants")
	}
	return ri.Constants{H: Planck, Mu0: Mu0, GH: nucleusGyro["1H"], GX: gx}, nil
}
