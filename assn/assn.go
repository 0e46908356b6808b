/*
 * assn.go, part of gowet.
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
	"encoding/binary"
	"fmt"
	"os"

	wet "github.com/rmera/gowet"
)

const magic = "WASN"
const version int32 = 1
const headerSize = 16 //magic + version + record count
const recordSize = 16 //4 little-endian int32s

// MemTable is an assignment table held fully in memory. It is the natural
// backing for tests and for tables decoded from the compressed format.
type MemTable []wet.Assignment

// Read returns the rows in [start,end), truncated to the table.
func (M MemTable) Read(start, end int) ([]wet.Assignment, error) {
	if start < 0 || end < start {
		return nil, Error{fmt.Sprintf("Nonsensical range [%d,%d)", start, end), "", []string{"Read"}, true}
	}
	if start >= len(M) {
		return []wet.Assignment{}, nil
	}
	if end > len(M) {
		end = len(M)
	}
	return M[start:end], nil
}

// Len returns the number of rows in the table.
func (M MemTable) Len() int {
	return len(M)
}

//Read!

// Reader is a random-access handle on a binary (was) assignment table.
// It fullfills wet.Table.
type Reader struct {
	f        *os.File
	nrows    int
	filename string
	readable bool
}

// Open opens a binary assignment table for reading and checks its header.
func Open(name string) (*Reader, error) {
	R := new(Reader)
	R.filename = name
	var err error
	R.f, err = os.Open(name)
	if err != nil {
		return nil, err
	}
	m := make([]byte, 4, 4)
	if err := binary.Read(R.f, binary.LittleEndian, m); err != nil {
		R.f.Close()
		return nil, Error{"Can't read header: " + err.Error(), R.filename, []string{"Open"}, true}
	}
	if string(m) != magic {
		R.f.Close()
		return nil, Error{WrongMagic, R.filename, []string{"Open"}, true}
	}
	var ver int32
	if err := binary.Read(R.f, binary.LittleEndian, &ver); err != nil {
		R.f.Close()
		return nil, Error{"Can't read header: " + err.Error(), R.filename, []string{"Open"}, true}
	}
	if ver != version {
		R.f.Close()
		return nil, Error{fmt.Sprintf("%s: %d", WrongVersion, ver), R.filename, []string{"Open"}, true}
	}
	var nrows int64
	if err := binary.Read(R.f, binary.LittleEndian, &nrows); err != nil {
		R.f.Close()
		return nil, Error{"Can't read header: " + err.Error(), R.filename, []string{"Open"}, true}
	}
	if nrows < 0 {
		R.f.Close()
		return nil, Error{fmt.Sprintf("Negative record count %d", nrows), R.filename, []string{"Open"}, true}
	}
	R.nrows = int(nrows)
	R.readable = true
	return R, nil
}

// Len returns the number of rows in the table.
func (R *Reader) Len() int {
	return R.nrows
}

// Readable returns true if the handle can still be read from.
func (R *Reader) Readable() bool {
	return R.readable
}

// Read returns the rows in [start,end), truncated to the table. Each call
// is a single seek plus a single sequential read, so chunked scans and
// arbitrary range reads cost the same.
func (R *Reader) Read(start, end int) ([]wet.Assignment, error) {
	if !R.readable {
		return nil, Error{TableUnIniRead, R.filename, []string{"Read"}, true}
	}
	if start < 0 || end < start {
		return nil, Error{fmt.Sprintf("Nonsensical range [%d,%d)", start, end), R.filename, []string{"Read"}, true}
	}
	if start >= R.nrows {
		return []wet.Assignment{}, nil
	}
	if end > R.nrows {
		end = R.nrows
	}
	if _, err := R.f.Seek(int64(headerSize)+int64(start)*recordSize, 0); err != nil {
		return nil, Error{err.Error(), R.filename, []string{"Read"}, true}
	}
	buf := make([]int32, 4*(end-start))
	if err := binary.Read(R.f, binary.LittleEndian, buf); err != nil {
		return nil, Error{ReadError + ": " + err.Error(), R.filename, []string{"Read"}, true}
	}
	rows := make([]wet.Assignment, end-start)
	for i := range rows {
		rows[i].Frame = int(buf[4*i])
		rows[i].Solvent = int(buf[4*i+1])
		rows[i].Solute = int(buf[4*i+2])
		rows[i].Shell = int(buf[4*i+3])
	}
	return rows, nil
}

// Close closes the handle and marks it unreadable.
func (R *Reader) Close() {
	if !R.readable {
		return
	}
	R.f.Close()
	R.readable = false
}

//Write!

// Writer writes a binary (was) assignment table. Records are appended with
// WNext; the record count in the header is patched on Close, so a Writer
// that is never Closed leaves an unreadable file behind.
type Writer struct {
	f         *os.File
	nrows     int64
	filename  string
	writeable bool
}

// NewWriter creates the named file and writes a provisional header.
func NewWriter(name string) (*Writer, error) {
	W := new(Writer)
	W.filename = name
	var err error
	W.f, err = os.Create(name)
	if err != nil {
		return nil, err
	}
	if err := binary.Write(W.f, binary.LittleEndian, []byte(magic)); err != nil {
		W.f.Close()
		return nil, Error{err.Error(), W.filename, []string{"NewWriter"}, true}
	}
	if err := binary.Write(W.f, binary.LittleEndian, version); err != nil {
		W.f.Close()
		return nil, Error{err.Error(), W.filename, []string{"NewWriter"}, true}
	}
	if err := binary.Write(W.f, binary.LittleEndian, int64(0)); err != nil {
		W.f.Close()
		return nil, Error{err.Error(), W.filename, []string{"NewWriter"}, true}
	}
	W.writeable = true
	return W, nil
}

// WNext appends a batch of rows to the table.
func (W *Writer) WNext(rows []wet.Assignment) error {
	if !W.writeable {
		return Error{TableUnIniWrite, W.filename, []string{"WNext"}, true}
	}
	buf := make([]int32, 4*len(rows))
	for i, v := range rows {
		buf[4*i] = int32(v.Frame)
		buf[4*i+1] = int32(v.Solvent)
		buf[4*i+2] = int32(v.Solute)
		buf[4*i+3] = int32(v.Shell)
	}
	if err := binary.Write(W.f, binary.LittleEndian, buf); err != nil {
		return Error{err.Error(), W.filename, []string{"WNext"}, true}
	}
	W.nrows += int64(len(rows))
	return nil
}

// Close patches the record count into the header and closes the file.
func (W *Writer) Close() error {
	if !W.writeable {
		return nil
	}
	W.writeable = false
	if _, err := W.f.Seek(8, 0); err != nil {
		W.f.Close()
		return Error{err.Error(), W.filename, []string{"Close"}, true}
	}
	if err := binary.Write(W.f, binary.LittleEndian, W.nrows); err != nil {
		W.f.Close()
		return Error{err.Error(), W.filename, []string{"Close"}, true}
	}
	return W.f.Close()
}

//Errors

//errDecorate is a helper function that asserts that the error
//implements wet.Error and decorates the error with the caller's name before returning it.
//if used with a non-wet.Error error, it will cause a panic.
func errDecorate(err error, caller string) error {
	err2 := err.(wet.Error)
	err2.Decorate(caller)
	return err2
}

// Error is the general structure for assignment-table errors. It fullfills wet.Error.
type Error struct {
	message  string
	filename string //the table file that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("assn table %s error: %s", err.filename, err.message)
}

//Decorate Adds new information to the error
func (E Error) Decorate(deco string) []string {
	//Even though this method does not use a pointer as a receiver, and tries to alter the receiver,
	//it should work, since E.deco is a slice, and hence a pointer itself.
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

//FileName returns the file to which the failing table was associated
func (err Error) FileName() string { return err.filename }

//Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

const (
	TableUnIniRead  = "Table object uninitialized to read"
	TableUnIniWrite = "Table object uninitialized to write"
	ReadError       = "Error reading records"
	WrongMagic      = "Wrong magic number"
	WrongVersion    = "Unsupported format version"
	WrongFormat     = "Wrong format in the compressed table"
)
