/*
 * interfaces.go, part of gowet.
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

// Assignment is one row of an assignment table: on a given frame, the
// solvent atom with local index Solvent sits on the shell Shell around the
// solute site Solute. Solvent is an index into the solvent-index map, not
// a global atom index.
type Assignment struct {
	Frame   int
	Solvent int
	Solute  int
	Shell   int
}

// Table is the interface for any assignment-table store. The table is
// read-only and may be far too large to hold in memory next to the field,
// so access goes through bounded range reads.
type Table interface {

	//Read returns the rows in the half-open range [start,end).
	//Requesting past the last row truncates the result; a start at or
	//beyond Len returns an empty slice and no error.
	Read(start, end int) ([]Assignment, error)

	//Returns the number of rows in the table.
	Len() int
}

//Errors

// Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else. Each Decorate call appends the caller's name (plus, optionally,
// extra information in the format "FunctionName: Extra info") and returns the resulting slice. An empty string only returns the current slice.
type Error interface {
	Error() string
	Decorate(string) []string
}
