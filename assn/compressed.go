/*
 * compressed.go, part of gowet.
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
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	wet "github.com/rmera/gowet"
)

//The compressed (stz) format is sequential-only: zstd streams can't be
//seeked into, so this reader doesn't fullfill wet.Table by itself. Decode
//to a MemTable, or convert to the binary format with ToBinary, to get
//range reads.

//Write!

// ZWriter writes a zstd-compressed text assignment table. The row count
// must be known up-front, as it goes in the header.
type ZWriter struct {
	f         *os.File
	h         io.WriteCloser
	nrows     int
	written   int
	filename  string
	writeable bool
}

// NewZWriter creates the named file and writes the header. Only the first
// header map, if any, is written; its pairs go one per line before the
// count terminator.
func NewZWriter(name string, nrows int, header map[string]string) (*ZWriter, error) {
	W := new(ZWriter)
	W.filename = name
	W.nrows = nrows
	var err error
	W.f, err = os.Create(name)
	if err != nil {
		return nil, err
	}
	W.h, err = zstd.NewWriter(W.f)
	if err != nil {
		W.f.Close()
		return nil, Error{"Can't write header: " + err.Error(), W.filename, []string{"NewZWriter"}, true}
	}
	for k, v := range header {
		if _, err := W.h.Write([]byte(fmt.Sprintf("%s=%v\n", k, v))); err != nil {
			W.h.Close()
			W.f.Close()
			return nil, Error{"Can't write header: " + err.Error(), W.filename, []string{"NewZWriter"}, true}
		}
	}
	if _, err := W.h.Write([]byte(fmt.Sprintf("** %d\n", nrows))); err != nil {
		W.h.Close()
		W.f.Close()
		return nil, Error{"Can't write header: " + err.Error(), W.filename, []string{"NewZWriter"}, true}
	}
	W.writeable = true
	return W, nil
}

// WNext appends a batch of rows. Writing more rows than the count declared
// at creation is an error.
func (W *ZWriter) WNext(rows []wet.Assignment) error {
	if !W.writeable {
		return Error{TableUnIniWrite, W.filename, []string{"WNext"}, true}
	}
	if W.written+len(rows) > W.nrows {
		return Error{fmt.Sprintf("%d records given, but only %d of %d left to write", len(rows), W.nrows-W.written, W.nrows), W.filename, []string{"WNext"}, true}
	}
	for _, v := range rows {
		if _, err := W.h.Write([]byte(fmt.Sprintf("%d %d %d %d\n", v.Frame, v.Solvent, v.Solute, v.Shell))); err != nil {
			return Error{err.Error(), W.filename, []string{"WNext"}, true}
		}
	}
	W.written += len(rows)
	return nil
}

// Close flushes the compressor and closes the file. Closing before the
// declared row count has been written is an error, but the file is closed
// regardless.
func (W *ZWriter) Close() error {
	if !W.writeable {
		return nil
	}
	W.writeable = false
	err1 := W.h.Close()
	err2 := W.f.Close()
	if err1 != nil {
		return err1
	}
	if err2 != nil {
		return err2
	}
	if W.written != W.nrows {
		return Error{fmt.Sprintf("Declared %d records but wrote %d", W.nrows, W.written), W.filename, []string{"Close"}, true}
	}
	return nil
}

//Read!

//zstd.Decoder doesn't implement io.ReadCloser (Close returns nothing),
//so we wrap it. This will cause additional indirections, but each call
//takes enough time to make those delays irrelevant.
type zql struct {
	closeql func()
	*zstd.Decoder
}

//Close closes the decoder. It can not be used after this call.
func (z zql) Close() error {
	z.closeql()
	return nil
}

// ZReader reads a zstd-compressed text assignment table, sequentially.
type ZReader struct {
	f        *os.File
	z        io.ReadCloser
	h        *bufio.Reader
	nrows    int
	read     int
	filename string
	readable bool
}

// ZOpen opens a compressed table for reading. It returns the handle, a map
// with the header metadata (or nil if there is none) and error or nil.
func ZOpen(name string) (*ZReader, map[string]string, error) {
	R := new(ZReader)
	R.filename = name
	R.nrows = -1 //just so we know if things don't work
	var err error
	R.f, err = os.Open(name)
	if err != nil {
		return nil, nil, err
	}
	d, err := zstd.NewReader(bufio.NewReader(R.f))
	if err != nil {
		R.f.Close()
		return nil, nil, Error{"Can't read header: " + err.Error(), R.filename, []string{"ZOpen"}, true}
	}
	R.z = zql{d.Close, d}
	R.h = bufio.NewReader(R.z)
	//closes the handles an about-to-fail ZOpen would otherwise leak
	drop := func() {
		R.z.Close()
		R.f.Close()
	}
	var m map[string]string
	for {
		str, err := R.h.ReadString('\n')
		if err != nil {
			drop()
			return nil, nil, Error{"Can't read header: " + err.Error(), R.filename, []string{"ZOpen"}, true}
		}
		str = strings.TrimSuffix(str, "\n")
		if strings.HasPrefix(str, "**") {
			fields := strings.Fields(str)
			if len(fields) < 2 {
				drop()
				return nil, nil, Error{fmt.Sprintf("Can't read record count from %q", str), R.filename, []string{"ZOpen"}, true}
			}
			R.nrows, err = strconv.Atoi(fields[1])
			if err != nil {
				drop()
				return nil, nil, Error{fmt.Sprintf("Can't read record count from %q: %s", fields[1], err.Error()), R.filename, []string{"ZOpen"}, true}
			}
			break
		}
		kv := strings.SplitN(str, "=", 2)
		if len(kv) != 2 {
			drop()
			return nil, nil, Error{WrongFormat + ": header line " + str, R.filename, []string{"ZOpen"}, true}
		}
		if m == nil {
			m = make(map[string]string)
		}
		m[kv[0]] = kv[1]
	}
	R.readable = true
	return R, m, nil
}

// Len returns the number of rows declared in the header.
func (R *ZReader) Len() int {
	return R.nrows
}

// Readable returns true if the handle can still be read from.
func (R *ZReader) Readable() bool {
	return R.readable
}

// Next returns the next n rows of the stream, or fewer if fewer are left.
// After the last row has been read it returns an empty slice and no error.
func (R *ZReader) Next(n int) ([]wet.Assignment, error) {
	if !R.readable {
		return nil, Error{TableUnIniRead, R.filename, []string{"Next"}, true}
	}
	if left := R.nrows - R.read; n > left {
		n = left
	}
	rows := make([]wet.Assignment, 0, n)
	for i := 0; i < n; i++ {
		str, err := R.h.ReadString('\n')
		if err != nil {
			return nil, Error{ReadError + ": " + err.Error(), R.filename, []string{"Next"}, true}
		}
		row, err := rowDecode(strings.TrimSuffix(str, "\n"))
		if err != nil {
			return nil, Error{err.Error(), R.filename, []string{"Next"}, true}
		}
		rows = append(rows, row)
		R.read++
	}
	return rows, nil
}

func rowDecode(str string) (wet.Assignment, error) {
	var row wet.Assignment
	s := strings.Fields(str)
	if len(s) != 4 {
		return row, fmt.Errorf("%s: %d fields in record line %q", WrongFormat, len(s), str)
	}
	dst := []*int{&row.Frame, &row.Solvent, &row.Solute, &row.Shell}
	for i, v := range s {
		n, err := strconv.Atoi(v)
		if err != nil {
			return row, fmt.Errorf("Can't parse field %d (%s): %s", i, v, err.Error())
		}
		*dst[i] = n
	}
	return row, nil
}

// DecodeAll reads the whole stream into a MemTable.
func (R *ZReader) DecodeAll() (MemTable, error) {
	rows := make([]wet.Assignment, 0, R.nrows)
	for R.read < R.nrows {
		chunk, err := R.Next(10000)
		if err != nil {
			return nil, errDecorate(err, "DecodeAll")
		}
		rows = append(rows, chunk...)
	}
	return MemTable(rows), nil
}

// Close closes the handle and marks it unreadable.
func (R *ZReader) Close() {
	if !R.readable {
		return
	}
	R.z.Close()
	R.f.Close()
	R.readable = false
}

// ToBinary converts a compressed table into a binary one, streaming chunk
// rows at a time so the table never needs to fit in memory. It returns the
// number of records converted.
func ToBinary(src, dst string, chunk int) (int, error) {
	if chunk <= 0 {
		chunk = 10000
	}
	R, _, err := ZOpen(src)
	if err != nil {
		return 0, err
	}
	defer R.Close()
	W, err := NewWriter(dst)
	if err != nil {
		return 0, err
	}
	total := 0
	for total < R.Len() {
		rows, err := R.Next(chunk)
		if err != nil {
			W.Close()
			return total, errDecorate(err, "ToBinary")
		}
		if err := W.WNext(rows); err != nil {
			W.Close()
			return total, errDecorate(err, "ToBinary")
		}
		total += len(rows)
	}
	return total, W.Close()
}
