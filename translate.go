/*
 * translate.go, part of gowet.
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

	"gonum.org/v1/gonum/mat"
)

// Sentinel is the value Translator.Pruned returns for a feature that was
// removed upstream.
const Sentinel = -1

// AbsIndex returns the absolute 1-dimensional index of the (solute, shell)
// pair, enumerating pairs in row-major order: solute-major, shell-minor.
// This is the order in which the upstream pruning walked the feature space,
// so every index in a pruned-index set, and the order of the loading vector
// itself, follow it. Getting this order wrong doesn't produce any error,
// just silently wrong loadings, hence this function instead of an inlined
// multiplication.
func AbsIndex(solute, shell, nShells int) int {
	return solute*nShells + shell
}

// Translator maps between the pruned 1-dimensional feature space and the
// dense (solute, shell) space. It is built once per pruned-index set and
// read-only afterwards.
type Translator struct {
	nSolute  int
	nShells  int
	toDense  [][2]int //pruned index (dense in 0..kept-1) -> (solute,shell)
	toPruned []int    //absolute index -> pruned index, or Sentinel
}

// NewTranslator builds the translation for nSolute solute sites and nShells
// shells per site, where pruned contains the absolute indexes (see AbsIndex)
// of the features removed upstream. pruned may be empty, or cover the whole
// feature space. Panics if the dimensions are not positive, as there is
// nothing sensible to do in that case.
func NewTranslator(nSolute, nShells int, pruned []int) *Translator {
	if nSolute <= 0 || nShells <= 0 {
		panic(fmt.Sprintf("gowet/NewTranslator: Nonsensical dimensions %d solutes, %d shells", nSolute, nShells))
	}
	del := make(map[int]bool, len(pruned))
	for _, v := range pruned {
		del[v] = true
	}
	t := new(Translator)
	t.nSolute = nSolute
	t.nShells = nShells
	t.toDense = make([][2]int, 0, nSolute*nShells-len(del))
	t.toPruned = make([]int, nSolute*nShells)
	pruni := 0
	for ute := 0; ute < nSolute; ute++ {
		for sh := 0; sh < nShells; sh++ {
			absi := AbsIndex(ute, sh, nShells)
			if del[absi] {
				t.toPruned[absi] = Sentinel
				continue
			}
			t.toDense = append(t.toDense, [2]int{ute, sh})
			t.toPruned[absi] = pruni
			pruni++
		}
	}
	return t
}

// Kept returns the number of features that survived the pruning, i.e. the
// length the corresponding loading vector must have.
func (t *Translator) Kept() int {
	return len(t.toDense)
}

// NSolute returns the number of solute sites.
func (t *Translator) NSolute() int {
	return t.nSolute
}

// NShells returns the number of shells per solute site.
func (t *Translator) NShells() int {
	return t.nShells
}

// Dense returns the (solute, shell) pair for the given pruned index, or
// ok==false if pruni is not in [0,Kept()).
func (t *Translator) Dense(pruni int) (solute, shell int, ok bool) {
	if pruni < 0 || pruni >= len(t.toDense) {
		return 0, 0, false
	}
	d := t.toDense[pruni]
	return d[0], d[1], true
}

// Pruned returns the pruned index for the given (solute, shell) pair, or
// Sentinel if the feature was removed upstream. Panics if the pair is
// outside the feature space, as that means the caller built the Translator
// with the wrong dimensions.
func (t *Translator) Pruned(solute, shell int) int {
	if solute < 0 || solute >= t.nSolute || shell < 0 || shell >= t.nShells {
		panic(fmt.Sprintf("gowet/Translator.Pruned: Pair (%d,%d) outside the %dx%d feature space", solute, shell, t.nSolute, t.nShells))
	}
	return t.toPruned[AbsIndex(solute, shell, t.nShells)]
}

// ExpandLoading expands the 1-dimensional loading vector into a dense
// (nSolute x nShells) matrix, with zeros wherever the feature was pruned.
// The vector must have exactly Kept() elements.
func (t *Translator) ExpandLoading(loading []float64) (*mat.Dense, error) {
	if len(loading) != t.Kept() {
		return nil, CError{fmt.Sprintf("%s: got %d, want %d", ErrDimensionMismatch, len(loading), t.Kept()), []string{"ExpandLoading"}}
	}
	loading2d := mat.NewDense(t.nSolute, t.nShells, nil)
	for ute := 0; ute < t.nSolute; ute++ {
		for sh := 0; sh < t.nShells; sh++ {
			if pruni := t.toPruned[AbsIndex(ute, sh, t.nShells)]; pruni != Sentinel {
				loading2d.Set(ute, sh, loading[pruni])
			}
		}
	}
	return loading2d, nil
}

// CompactLoading is the inverse of ExpandLoading: it gathers the non-pruned
// entries of a dense (nSolute x nShells) matrix back into a 1-dimensional
// vector of Kept() elements. Pruned entries are dropped regardless of their
// value in the matrix.
func (t *Translator) CompactLoading(loading2d *mat.Dense) ([]float64, error) {
	r, c := loading2d.Dims()
	if r != t.nSolute || c != t.nShells {
		return nil, CError{fmt.Sprintf("%s: got a %dx%d matrix, want %dx%d", ErrDimensionMismatch, r, c, t.nSolute, t.nShells), []string{"CompactLoading"}}
	}
	loading := make([]float64, t.Kept())
	for i, d := range t.toDense {
		loading[i] = loading2d.At(d[0], d[1])
	}
	return loading, nil
}
