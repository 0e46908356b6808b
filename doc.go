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

/*Package wet maps solvent-shell loadings back onto physical atoms.

An upstream analysis assigns, for every frame of a molecular dynamics
trajectory, each solvent atom to a distance shell around a solute site.
Those assignments, together with a 1-dimensional "loading" vector obtained
from a dimensionality reduction (tICA, PCA) over the pruned
(solute, shell) feature space, are all this package needs to produce a
dense per-frame, per-atom scalar field.

	**gowet Capabilities**

    Translates between the pruned 1-dimensional feature space and the
	dense (solute, shell) space, in the same row-major order used when
	the features were pruned.

    Expands a 1-dimensional loading vector into a dense
	(solute x shell) matrix, with zeros on the pruned entries.

    Streams an arbitrarily large assignment table in bounded-size
	chunks, accumulating each loading into a dense (frame x atom)
	field under a sum, max or average policy. The scan can run
	sequentially or split over several CPUs.

    Reads and writes assignment tables in a seekable binary format and
	in a zstd-compressed text format (package assn).

    Writes the field as a text file plus a TCL script that loads it
	into VMD's per-atom "user" attribute (package vmd).

The field and the loading matrix are gonum mat.Dense matrices, so they can
be fed directly to other gonum-based analyses.
*/
package wet
