/*
 * main.go, part of gowet.
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

//gowet maps the loadings of a dimensionality reduction over solvent-shell
//features back onto atoms, and writes the result as a VMD user-attribute
//data file plus the TCL script that loads it.
package main

import (
	"flag"
	"log"
	"strings"

	"gonum.org/v1/gonum/mat"

	wet "github.com/rmera/gowet"
	"github.com/rmera/gowet/assn"
	"github.com/rmera/gowet/vmd"
)

func main() {
	assnFn := flag.String("assn", "assign.was", "Assignment table, binary (.was) or zstd-compressed text (.stz)")
	solventFn := flag.String("solvent", "solvent_indices.dat", "Text file with the global atom index of each solvent atom")
	loadingFn := flag.String("loading", "loading.dat", "Text file with the 1-dimensional loading vector")
	prunedFn := flag.String("pruned", "", "Text file with the absolute indexes of the pruned features, if any")
	nFrames := flag.Int("nframes", 0, "Number of frames in the trajectory")
	nAtoms := flag.Int("natoms", 0, "Total number of atoms, solvent included")
	nSolute := flag.Int("nsolute", 0, "Number of solute sites")
	nShells := flag.Int("nshells", 0, "Number of shells per solute site")
	which := flag.String("which", "sum", "Aggregation policy: sum, max or avg")
	chunk := flag.Int("chunk", 1000000, "Assignment rows read per chunk")
	cpus := flag.Int("cpus", 1, "CPUs for the aggregation (1 means a strictly sequential scan)")
	maxfloor := flag.Float64("maxfloor", 0, "Floor value for the max policy (-Inf makes it a true maximum)")
	stride := flag.Int("stride", 1, "Write only every stride-th frame")
	trajFn := flag.String("traj", "", "Trajectory file name, for the TCL script")
	topFn := flag.String("top", "", "Topology file name, for the TCL script")
	outBase := flag.String("o", "field", "Base name for the output files")
	plotit := flag.Bool("plot", false, "Also plot the per-frame mean of the field")
	flag.Parse()

	if *nFrames <= 0 || *nAtoms <= 0 || *nSolute <= 0 || *nShells <= 0 {
		log.Fatalf("The flags -nframes, -natoms, -nsolute and -nshells are all required and must be positive")
	}
	pol, err := wet.PolicyFromString(*which)
	if err != nil {
		log.Fatalf("Bad -which: %v", err)
	}
	solventInd, err := wet.ReadIndices(*solventFn)
	if err != nil {
		log.Fatalf("Can't read the solvent indexes: %v", err)
	}
	loading, err := wet.ReadLoading(*loadingFn)
	if err != nil {
		log.Fatalf("Can't read the loading vector: %v", err)
	}
	var pruned []int
	if *prunedFn != "" {
		pruned, err = wet.ReadIndices(*prunedFn)
		if err != nil {
			log.Fatalf("Can't read the pruned indexes: %v", err)
		}
	}
	table, closer, err := openTable(*assnFn)
	if err != nil {
		log.Fatalf("Can't open the assignment table: %v", err)
	}
	defer closer()

	trans := wet.NewTranslator(*nSolute, *nShells, pruned)
	loading2d, err := trans.ExpandLoading(loading)
	if err != nil {
		log.Fatalf("Can't expand the loading vector: %v", err)
	}
	o := wet.DefaultOptions()
	o.ChunkSize(*chunk)
	o.Cpus(*cpus)
	o.MaxFloor(*maxfloor)
	var result *mat.Dense
	if *cpus > 1 {
		result, err = wet.ConcCompute(table, loading2d, solventInd, *nFrames, *nAtoms, pol, o)
	} else {
		result, err = wet.Compute(table, loading2d, solventInd, *nFrames, *nAtoms, pol, o)
	}
	if err != nil {
		log.Fatalf("The field computation failed: %v", err)
	}
	if err := vmd.Write(result, *outBase, *trajFn, *topFn, *stride); err != nil {
		log.Fatalf("Can't write the VMD files: %v", err)
	}
	if *plotit {
		if err := wet.PlotFrameMeans(result, "Per-frame mean loading", *outBase); err != nil {
			log.Fatalf("Can't plot the field: %v", err)
		}
	}
}

//openTable opens the table by extension. Compressed tables can't be
//range-read, so they get decoded into memory, with a head-up.
func openTable(name string) (wet.Table, func(), error) {
	if strings.HasSuffix(name, ".stz") {
		log.Printf("Compressed table %s will be fully loaded into memory. Convert it to .was for bounded-memory scans.", name)
		r, _, err := assn.ZOpen(name)
		if err != nil {
			return nil, nil, err
		}
		defer r.Close()
		m, err := r.DecodeAll()
		if err != nil {
			return nil, nil, err
		}
		return m, func() {}, nil
	}
	r, err := assn.Open(name)
	if err != nil {
		return nil, nil, err
	}
	return r, r.Close, nil
}
