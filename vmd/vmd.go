/*
 * vmd.go, part of gowet.
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

//Package vmd writes a per-atom field into files VMD understands: a plain
//text data file with one line per frame, and a TCL script that loads the
//data into the "user" attribute of every atom, frame by frame, and sets up
//a pair of representations to look at it.
package vmd

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Script is the TCL the companion script is generated from. The
// placeholders {traj_fn}, {top_fn}, {step} and {dat_fn} are substituted
// verbatim; everything else, VMD gets as-is.
const Script = `
# Load in molecule
set mol [mol new {traj_fn} step {step} waitfor all]
mol addfile {top_fn} waitfor all

# Open data file
set sel [atomselect $mol all]
set nf [molinfo $mol get numframes]
set fp [open {dat_fn} r]
set line ""

# Each line of the data file corresponds to a frame
for {set i 0} {$i < $nf} {incr i} {
  gets $fp line
  $sel frame $i
  $sel set user $line
}

close $fp
$sel delete

# For convenience, set up representations as well

mol delrep 0 top

mol representation NewCartoon 0.3 10.0 4.1 0
mol color ColorID 4
mol selection {protein}
mol addrep top
mol smoothrep top 0 5


mol representation CPK 1.0 0.2 10.0 10.0
mol color User
mol selection {user > 1}
mol addrep top
mol selupdate 1 top 1
mol colupdate 1 top 1
`

// WriteDat writes the field to outBase.dat, one line per frame, the values
// space-separated in the runtime's shortest lossless decimal form. With a
// stride larger than 1 only every stride-th frame is written, starting at
// frame 0, for a total of nframes/stride lines (the same stride must then
// be given to WriteScript, so VMD skips the same frames when loading the
// trajectory).
func WriteDat(field *mat.Dense, outBase string, stride int) error {
	if field == nil {
		return fmt.Errorf("vmd.WriteDat: Given nil field")
	}
	if stride < 1 {
		return fmt.Errorf("vmd.WriteDat: Nonsensical stride %d", stride)
	}
	f, err := os.Create(outBase + ".dat")
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	nframes, _ := field.Dims()
	howmany := nframes / stride
	for i := 0; i < howmany; i++ {
		for _, v := range field.RawRowView(i * stride) {
			if _, err := w.WriteString(strconv.FormatFloat(v, 'g', -1, 64) + " "); err != nil {
				return err
			}
		}
		if _, err := w.WriteString("\n"); err != nil {
			return err
		}
		if i%10 == 0 {
			log.Printf("Done %d / %d", i, howmany)
		}
	}
	return w.Flush()
}

// WriteScript writes outBase.tcl, a script that loads trajFn/topFn into
// VMD with the given stride and feeds outBase.dat to the per-atom user
// attribute. The data file is referenced by its base name, so the pair can
// move between directories together.
func WriteScript(outBase, trajFn, topFn string, stride int) error {
	f, err := os.Create(outBase + ".tcl")
	if err != nil {
		return err
	}
	defer f.Close()
	r := strings.NewReplacer(
		"{traj_fn}", trajFn,
		"{top_fn}", topFn,
		"{step}", strconv.Itoa(stride),
		"{dat_fn}", filepath.Base(outBase+".dat"),
	)
	if _, err := r.WriteString(f, Script); err != nil {
		return err
	}
	return nil
}

// Write writes the data file and, if both trajFn and topFn are given, the
// companion script.
func Write(field *mat.Dense, outBase, trajFn, topFn string, stride int) error {
	if err := WriteDat(field, outBase, stride); err != nil {
		return err
	}
	if trajFn != "" && topFn != "" {
		return WriteScript(outBase, trajFn, topFn, stride)
	}
	return nil
}
