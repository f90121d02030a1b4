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

package relax

import (
	"errors"
	"fmt"

	"github.com/rmera/gorelax/diffusion"
	"github.com/rmera/gorelax/jw"
)

//Causes of the errors returned at setup. Use errors.Is to check for them.
var (
	//ErrInvalidParamSet: a parameter combination which is illegal for the equation or the mode.
	ErrInvalidParamSet = jw.ErrInvalidParamSet
	//ErrInvalidParamType: a name that doesn't correspond to any parameter, kind, equation or data type.
	ErrInvalidParamType = diffusion.ErrInvalidParamType
	//ErrUnsupported: a combination of tensor kind, equation and parameters with no spectral density.
	ErrUnsupported = jw.ErrUnsupported
	//ErrSetup: inconsistent data, vectors or options.
	ErrSetup = errors.New("gorelax: invalid setup")
)

//Error is the error type for the relax package
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

//Unwrap returns the cause of the error, so errors.Is works.
func (err Error) Unwrap() error { return err.cause }

//setupError returns a critical Error caused by ErrSetup.
func setupError(caller, format string, a ...interface{}) Error {
	return Error{fmt.Sprintf(format, a...), []string{caller}, true, ErrSetup}
}

//errDecorate is a helper function that decorates an error from any gorelax package with
//the caller's name before returning it. Other errors are wrapped in an Error.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	if err2, ok := err.(Error); ok {
		err2.deco = err2.Decorate(caller)
		return err2
	}
	var deco []string
	if err2, ok := err.(ErrorDecorator); ok {
		deco = err2.Decorate("")
	}
	return Error{err.Error(), append(deco, caller), true, err}
}

//PanicMsg is a message used for panics, even though it does satisfy the error interface.
//for errors use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrDimension = PanicMsg("gorelax: Parameter vector doesn't match the problem dimension")
)
