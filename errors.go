/*
 * errors.go, part of gowet.
 *
 * Copyright 2026 Raul Mera <rmera{at}usachDOTcl>
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

package wet

// CError is the concrete error type of the wet package. It fullfills wet.Error.
type CError struct {
	msg  string
	deco []string
}

func (err CError) Error() string { return err.msg }

// Decorate Adds new information to the error
func (err CError) Decorate(deco string) []string {
	//Even though this method does not use a pointer as a receiver, and tries to alter the receiver,
	//it should work, since err.deco is a slice, and hence a pointer itself.
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//errDecorate asserts that err fullfills wet.Error and decorates it with the
//caller's name before returning it. Using it on any other error type will panic.
func errDecorate(err error, caller string) error {
	err2 := err.(Error)
	err2.Decorate(caller)
	return err2
}

//The error conditions this library can signal on its own. Anything else
//comes from the underlying table store or file system and is passed along as-is.
const (
	ErrDimensionMismatch = "Loading vector length doesn't match the kept feature count"
	ErrIndexOutOfRange   = "Assignment row outside the allocated field"
	ErrUnknownPolicy     = "Unknown aggregation policy"
	ErrNilTable          = "Given nil assignment table"
	ErrNilLoading        = "Given nil loading matrix"
	ErrCancelled         = "Computation cancelled"
)
