/*
 * files.go, part of gowet.
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
	"bufio"
	"fmt"
	"os"
	"strconv"
)

//The small text-file collaborators of a computation: the solvent-index
//map, the pruned-index set and the loading vector. All three are plain
//whitespace-separated numbers, any line layout accepted.

// ReadIndices reads a whitespace-separated list of integers from fname.
// It is used for the solvent-index map (the i-th number is the global atom
// index of the solvent atom with local index i) and for pruned-index sets.
func ReadIndices(fname string) ([]int, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ret := make([]int, 0, 100)
	scanner := bufio.NewScanner(f)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		n, err := strconv.Atoi(scanner.Text())
		if err != nil {
			return nil, CError{fmt.Sprintf("Can't parse index %q in %s: %s", scanner.Text(), fname, err.Error()), []string{"ReadIndices"}}
		}
		ret = append(ret, n)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ret, nil
}

// ReadLoading reads a whitespace-separated list of floats from fname: the
// 1-dimensional loading vector, in pruned-index order.
func ReadLoading(fname string) ([]float64, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ret := make([]float64, 0, 100)
	scanner := bufio.NewScanner(f)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		v, err := strconv.ParseFloat(scanner.Text(), 64)
		if err != nil {
			return nil, CError{fmt.Sprintf("Can't parse loading %q in %s: %s", scanner.Text(), fname, err.Error()), []string{"ReadLoading"}}
		}
		ret = append(ret, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ret, nil
}
