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

package fit

import (
	"errors"
	"fmt"

	relax "github.com/rmera/gorelax"
)

//ErrNotConverged is the cause of the non-critical errors returned when the optimizer stops
//before converging. The returned Result is still usable.
var ErrNotConverged = errors.New("fit: the optimization didn't converge")

//Error is the error type for the fit package
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

//Unwrap returns the cause of the error.
func (err Error) Unwrap() error { return err.cause }

//errDecorate is a helper function that decorates an error with the caller's name.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	if err2, ok := err.(Error); ok {
		err2.deco = err2.Decorate(caller)
		return err2
	}
	var deco []string
	critical := true
	if err2, ok := err.(relax.ErrorDecorator); ok {
		deco = err2.Decorate("")
		critical = err2.Critical()
	}
	return Error{err.Error(), append(deco, caller), critical, err}
}
