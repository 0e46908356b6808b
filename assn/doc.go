/*
 * doc.go, part of gowet.
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

//Package assn stores assignment tables: one record per (frame, solvent,
//solute, shell) event of a trajectory analysis. It provides an in-memory
//table and two on-disk formats, both fullfilling wet.Table (the compressed
//one after decoding).

/******************** Format Specification   ***************************************************

The binary format ("was", for Water ASsignmeNts) is meant for random
access, so the chunked field computation can range-read any part of a
table that doesn't fit in memory:

A was file starts with a 16-byte header: the 4 ASCII bytes "WASN", the
format version as a little-endian int32 (currently 1), and the number of
records as a little-endian int64. The header is followed by exactly that
many records. A record is 4 little-endian int32s: frame, solvent local
index, solute index, shell index, in that order. Nothing else may appear
in the file. Record i therefore always lives at offset 16 + 16*i, which is
what makes range reads a single seek.

The compressed format ("stz") is meant for interchange and archival, not
random access. It is a zstd-compressed ASCII stream, in the spirit of
goChem's stf trajectory format:

The stream starts with a header of key=value lines, one pair per line,
terminated by a line starting with "**" followed by one or more spaces and
the number of records. After that, one line per record, with the record's
4 indexes as space-separated decimal integers: frame, solvent local index,
solute index, shell index. The "**" sequence may only appear as the header
terminator. Keys are free-form; readers must ignore keys they don't know.

z-standard compression levels are implementation-dependent; this
implementation writes with the library's default level and does not
currently expose an option for it.

***************************************************************************************************/

package assn
