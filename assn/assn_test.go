/*
 * assn_test.go, part of gowet.
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

package assn

import (
	"fmt"
	"os"
	"strings"
	"testing"

	wet "github.com/rmera/gowet"
)

var rootdirtest string = "../test"

func testRows(n int) []wet.Assignment {
	rows := make([]wet.Assignment, n)
	for i := range rows {
		rows[i] = wet.Assignment{Frame: i / 10, Solvent: i % 10, Solute: i % 3, Shell: i % 4}
	}
	return rows
}

func TestMemTable(Te *testing.T) {
	rows := testRows(25)
	m := MemTable(rows)
	if m.Len() != 25 {
		Te.Errorf("Len: got %d, want 25", m.Len())
	}
	got, err := m.Read(20, 30)
	if err != nil {
		Te.Error(err)
	}
	if len(got) != 5 {
		Te.Errorf("Read past the end should truncate: got %d rows, want 5", len(got))
	}
	got, err = m.Read(25, 30)
	if err != nil || len(got) != 0 {
		Te.Errorf("Read starting at Len should be empty: got %d rows, %v", len(got), err)
	}
}

func TestBinaryRoundtrip(Te *testing.T) {
	fmt.Println("Binary table write/read test!")
	fname := rootdirtest + "/test_assn.was"
	rows := testRows(107)
	W, err := NewWriter(fname)
	if err != nil {
		Te.Fatal(err)
	}
	//write in uneven batches, as a converter would
	if err := W.WNext(rows[:50]); err != nil {
		Te.Error(err)
	}
	if err := W.WNext(rows[50:]); err != nil {
		Te.Error(err)
	}
	if err := W.Close(); err != nil {
		Te.Fatal(err)
	}
	R, err := Open(fname)
	if err != nil {
		Te.Fatal(err)
	}
	defer R.Close()
	if R.Len() != 107 {
		Te.Errorf("Len: got %d, want 107", R.Len())
	}
	//range reads in any order
	for _, rg := range [][2]int{{0, 10}, {100, 200}, {30, 31}, {0, 107}} {
		got, err := R.Read(rg[0], rg[1])
		if err != nil {
			Te.Fatal(err)
		}
		end := rg[1]
		if end > 107 {
			end = 107
		}
		if len(got) != end-rg[0] {
			Te.Errorf("Read(%d,%d): got %d rows, want %d", rg[0], rg[1], len(got), end-rg[0])
		}
		for i, v := range got {
			if v != rows[rg[0]+i] {
				Te.Errorf("Read(%d,%d): row %d is %v, want %v", rg[0], rg[1], i, v, rows[rg[0]+i])
			}
		}
	}
}

func TestCompressedRoundtrip(Te *testing.T) {
	fmt.Println("Compressed table write/read test!")
	fname := rootdirtest + "/test_assn.stz"
	rows := testRows(64)
	W, err := NewZWriter(fname, len(rows), map[string]string{"traj": "somewhere.xtc"})
	if err != nil {
		Te.Fatal(err)
	}
	if err := W.WNext(rows); err != nil {
		Te.Error(err)
	}
	if err := W.Close(); err != nil {
		Te.Fatal(err)
	}
	R, m, err := ZOpen(fname)
	if err != nil {
		Te.Fatal(err)
	}
	defer R.Close()
	if m["traj"] != "somewhere.xtc" {
		Te.Errorf("Header metadata lost: %v", m)
	}
	got, err := R.DecodeAll()
	if err != nil {
		Te.Fatal(err)
	}
	if got.Len() != len(rows) {
		Te.Fatalf("DecodeAll: got %d rows, want %d", got.Len(), len(rows))
	}
	for i, v := range got {
		if v != rows[i] {
			Te.Errorf("Row %d is %v, want %v", i, v, rows[i])
		}
	}
}

func TestToBinary(Te *testing.T) {
	fmt.Println("Compressed to binary conversion test!")
	src := rootdirtest + "/test_conv.stz"
	dst := rootdirtest + "/test_conv.was"
	rows := testRows(33)
	W, err := NewZWriter(src, len(rows), nil)
	if err != nil {
		Te.Fatal(err)
	}
	if err := W.WNext(rows); err != nil {
		Te.Error(err)
	}
	if err := W.Close(); err != nil {
		Te.Fatal(err)
	}
	n, err := ToBinary(src, dst, 10)
	if err != nil {
		Te.Fatal(err)
	}
	if n != len(rows) {
		Te.Errorf("Converted %d records, want %d", n, len(rows))
	}
	R, err := Open(dst)
	if err != nil {
		Te.Fatal(err)
	}
	defer R.Close()
	got, err := R.Read(0, R.Len())
	if err != nil {
		Te.Fatal(err)
	}
	for i, v := range got {
		if v != rows[i] {
			Te.Errorf("Row %d is %v, want %v", i, v, rows[i])
		}
	}
}

func TestOpenBadHeader(Te *testing.T) {
	fmt.Println("Bad header test!")
	//not a was file at all: wrong magic, and short besides. Open must
	//fail cleanly (and close the file on its way out, so the name can
	//be reused at once).
	fname := rootdirtest + "/test_bad.was"
	if err := os.WriteFile(fname, []byte("NOPE"), 0644); err != nil {
		Te.Fatal(err)
	}
	_, err := Open(fname)
	if err == nil {
		Te.Fatal("Opening a garbage file should be an error")
	}
	if !strings.Contains(err.Error(), WrongMagic) {
		Te.Errorf("Got %v, want a wrong-magic error", err)
	}
	if err := os.WriteFile(fname, []byte("WASN"), 0644); err != nil {
		Te.Fatal(err)
	}
	_, err = Open(fname)
	if err == nil {
		Te.Error("Opening a truncated header should be an error")
	}
}

func TestZWriterCountEnforced(Te *testing.T) {
	fname := rootdirtest + "/test_short.stz"
	W, err := NewZWriter(fname, 10, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if err := W.WNext(testRows(5)); err != nil {
		Te.Error(err)
	}
	if err := W.Close(); err == nil {
		Te.Error("Closing with 5 of 10 declared records written should be an error")
	}
	W, err = NewZWriter(fname, 3, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if err := W.WNext(testRows(5)); err == nil {
		Te.Error("Writing 5 records into a 3-record table should be an error")
	}
	W.Close()
}
