/*
 * errors.go, part of gorelax.
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
	"errors"
	"fmt"
)

//ErrInvalidParamType is the cause of the errors produced when a name doesn't
//correspond to any known tensor kind or parameter.
var ErrInvalidParamType = errors.New("gorelax/diffusion: invalid parameter type")

//Error is the error type for the diffusion package
type Error struct {
	message  string
	deco     []string
	critical bool
	cause    error
}

//Error returns a string with an error message.
func (err Error) Error() string {
	return fmt.Sprintf("%s", err.message)
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

//Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

//Unwrap returns the sentinel error err belongs to, if any.
func (err Error) Unwrap() error { return err.cause }

//PanicMsg is a message used for panics, even though it does satisfy the error interface.
//for errors use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrWrongParams = PanicMsg("gorelax/diffusion: Wrong number of parameters for the tensor kind")
	ErrNoVector    = PanicMsg("gorelax/diffusion: The tensor kind requires an interaction vector")
)
