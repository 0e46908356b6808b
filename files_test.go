/*
 * files_test.go, part of gowet.
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

import (
	"fmt"
	"testing"
)

func TestReadIndices(Te *testing.T) {
	fmt.Println("Index file test!")
	ind, err := ReadIndices("test/solvent_indices.dat")
	if err != nil {
		Te.Fatal(err)
	}
	if len(ind) != 2 || ind[0] != 2 || ind[1] != 0 {
		Te.Errorf("Got %v, want [2 0]", ind)
	}
	pruned, err := ReadIndices("test/pruned.dat")
	if err != nil {
		Te.Fatal(err)
	}
	if len(pruned) != 1 || pruned[0] != 1 {
		Te.Errorf("Got %v, want [1]", pruned)
	}
}

func TestReadLoading(Te *testing.T) {
	loading, err := ReadLoading("test/loading.dat")
	if err != nil {
		Te.Fatal(err)
	}
	if len(loading) != 2 || loading[0] != 5.0 || loading[1] != 7.0 {
		Te.Errorf("Got %v, want [5 7]", loading)
	}
}

//the whole pipeline on the fixture files, ending in the exact field the
//boundary scenario predicts.
func TestPipeline(Te *testing.T) {
	fmt.Println("End to end test!")
	solventInd, err := ReadIndices("test/solvent_indices.dat")
	if err != nil {
		Te.Fatal(err)
	}
	loading, err := ReadLoading("test/loading.dat")
	if err != nil {
		Te.Fatal(err)
	}
	tr := NewTranslator(2, 1, nil)
	loading2d, err := tr.ExpandLoading(loading)
	if err != nil {
		Te.Fatal(err)
	}
	table := sliceTable{
		{Frame: 0, Solvent: 0, Solute: 0, Shell: 0},
		{Frame: 0, Solvent: 0, Solute: 0, Shell: 0},
		{Frame: 1, Solvent: 1, Solute: 1, Shell: 0},
	}
	field, err := Compute(table, loading2d, solventInd, 2, 3, Sum)
	if err != nil {
		Te.Fatal(err)
	}
	want := []float64{0, 0, 10, 7, 0, 0}
	for i, v := range want {
		if field.At(i/3, i%3) != v {
			Te.Errorf("Cell (%d,%d): got %f, want %f", i/3, i%3, field.At(i/3, i%3), v)
		}
	}
}
