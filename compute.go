/*
 * compute.go, part of gowet.
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
	"runtime"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Policy is the rule used to combine several loadings landing on the same
// (frame, atom) cell of the field.
type Policy int

const (
	//Sum adds every contribution.
	Sum Policy = iota
	//Max keeps the largest contribution, with a configurable floor
	//(see Options.MaxFloor).
	Max
	//Avg takes the arithmetic mean of the contributions. Cells with no
	//contribution stay at 0.
	Avg
)

// String returns the name of the policy, in the form the command line takes it.
func (p Policy) String() string {
	switch p {
	case Sum:
		return "sum"
	case Max:
		return "max"
	case Avg:
		return "avg"
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

// PolicyFromString returns the Policy named by s. The accepted names are
// "sum", "max" and "avg"; anything else is an error.
func PolicyFromString(s string) (Policy, error) {
	switch s {
	case "sum":
		return Sum, nil
	case "max":
		return Max, nil
	case "avg":
		return Avg, nil
	}
	return 0, CError{fmt.Sprintf("%s: %q", ErrUnknownPolicy, s), []string{"PolicyFromString"}}
}

//Options contain the options for the field computation, with getters/setters.
type Options struct {
	chunk    int
	cpus     int
	maxfloor float64
	done     <-chan struct{}
}

// DefaultOptions returns an Options with the default options: 1e6-row
// chunks, as many CPUs as the machine has (only ConcCompute uses them) and
// a Max floor of 0.
func DefaultOptions() *Options {
	ret := new(Options)
	ret.chunk = 1000000
	ret.cpus = runtime.NumCPU()
	ret.maxfloor = 0
	return ret
}

// Returns the number of assignment rows read per chunk
// and sets the value to the one given, if any valid value is given.
func (o *Options) ChunkSize(chunk ...int) int {
	ret := o.chunk
	if len(chunk) > 0 && chunk[0] > 0 {
		o.chunk = chunk[0]
	}
	return ret
}

// Returns the current value of the Cpus option (the number of goroutines
// ConcCompute uses) and sets it, if a valid value is given.
func (o *Options) Cpus(cpus ...int) int {
	ret := o.cpus
	if len(cpus) > 0 && cpus[0] > 0 {
		o.cpus = cpus[0]
	}
	return ret
}

// Returns the floor value for the Max policy and sets it, if a value is
// given. The floor is the starting value of every cell, so cells no
// assignment row touches keep it. The default of 0 reproduces the
// historical behavior of clamping negative loadings to 0; pass
// math.Inf(-1) to make Max an actual maximum over the contributions.
func (o *Options) MaxFloor(floor ...float64) float64 {
	ret := o.maxfloor
	if len(floor) > 0 {
		o.maxfloor = floor[0]
	}
	return ret
}

// Returns the cancellation channel, and sets it, if one is given.
// A computation checks the channel between chunks and aborts once it is
// closed, so a long run can be abandoned without killing the process.
func (o *Options) Done(done ...<-chan struct{}) <-chan struct{} {
	ret := o.done
	if len(done) > 0 {
		o.done = done[0]
	}
	return ret
}

//cancelled returns true if the cancellation channel, if any, has been closed.
func (o *Options) cancelled() bool {
	if o.done == nil {
		return false
	}
	select {
	case <-o.done:
		return true
	default:
		return false
	}
}

// Compute streams the assignment table in chunks and accumulates the
// loading of each row's (solute, shell) feature onto the row's (frame,
// global atom) cell of the returned (nFrames x nAtoms) field, under the
// given policy. solventInd maps the table's local solvent indexes to global
// atom indexes. loading2d is the dense loading matrix, as returned by
// Translator.ExpandLoading.
//
// The table is read in sequential row ranges of ChunkSize rows (the last
// chunk may be shorter), so peak memory stays bounded by the chunk size
// plus the field itself, no matter how large the table is. Any row whose
// frame or translated atom falls outside the field aborts the computation
// with an error: clipping it silently would corrupt the visualization
// downstream with no signal at all.
func Compute(assn Table, loading2d *mat.Dense, solventInd []int, nFrames, nAtoms int, pol Policy, options ...*Options) (*mat.Dense, error) {
	var o *Options
	if len(options) > 0 {
		o = options[0]
	} else {
		o = DefaultOptions()
	}
	field, count, err := prepare(assn, loading2d, nFrames, nAtoms, pol, o)
	if err != nil {
		return nil, errDecorate(err, "Compute")
	}
	M := assn.Len()
	for start := 0; start < M; start += o.chunk {
		if o.cancelled() {
			return nil, CError{ErrCancelled, []string{"Compute"}}
		}
		rows, err := assn.Read(start, start+o.chunk)
		if err != nil {
			return nil, err
		}
		if err := computeChunk(rows, solventInd, loading2d, field, count, pol, o.maxfloor); err != nil {
			return nil, errDecorate(err, "Compute")
		}
	}
	if pol == Avg {
		averageInPlace(field, count)
	}
	return field, nil
}

// ConcCompute is the concurrent version of Compute. Chunks are handed out
// to Cpus worker goroutines, each accumulating its own partial field, and
// the partials are merged with the same per-policy combine rule once all
// chunks are consumed. All three policies are commutative and associative
// (for Avg, both the running sum and the count are), so the result matches
// the sequential scan up to floating-point reordering of the sums.
func ConcCompute(assn Table, loading2d *mat.Dense, solventInd []int, nFrames, nAtoms int, pol Policy, options ...*Options) (*mat.Dense, error) {
	var o *Options
	if len(options) > 0 {
		o = options[0]
	} else {
		o = DefaultOptions()
	}
	//the validation is per-computation, not per-worker, so it runs here.
	field, count, err := prepare(assn, loading2d, nFrames, nAtoms, pol, o)
	if err != nil {
		return nil, errDecorate(err, "ConcCompute")
	}
	M := assn.Len()
	chunks := make(chan int)
	results := make([]chan *partialField, o.cpus)
	for i := range results {
		results[i] = make(chan *partialField)
		go concUnit(assn, chunks, results[i], solventInd, loading2d, nFrames, nAtoms, pol, o)
	}
	cancel := false
	go func() {
		for start := 0; start < M; start += o.chunk {
			if o.cancelled() {
				cancel = true
				break
			}
			chunks <- start
		}
		close(chunks)
	}()
	//The first partial becomes the result, the rest merge into it.
	for _, k := range results {
		part := <-k
		if part.err != nil {
			err = part.err //workers drain the chunk channel on their own, so we can keep collecting.
			continue
		}
		mergePartial(field, count, part, pol)
	}
	if err != nil {
		//a worker's error may come from the table's Read, which can be any
		//error type. Those pass along as-is, like in the sequential scan.
		if err2, ok := err.(Error); ok {
			err2.Decorate("ConcCompute")
			return nil, err2
		}
		return nil, err
	}
	if cancel {
		return nil, CError{ErrCancelled, []string{"ConcCompute"}}
	}
	if pol == Avg {
		averageInPlace(field, count)
	}
	return field, nil
}

//The worker function for the concurrent computation. It consumes chunk
//offsets until the channel closes and sends back its partial accumulation.
func concUnit(assn Table, chunks <-chan int, result chan<- *partialField, solventInd []int, loading2d *mat.Dense, nFrames, nAtoms int, pol Policy, o *Options) {
	part := new(partialField)
	part.field = newField(nFrames, nAtoms, pol, o.maxfloor)
	if pol == Avg {
		part.count = mat.NewDense(nFrames, nAtoms, nil)
	}
	for start := range chunks {
		if part.err != nil {
			continue //keep draining so the feeder never blocks
		}
		rows, err := assn.Read(start, start+o.chunk)
		if err != nil {
			part.err = err
			continue
		}
		part.err = computeChunk(rows, solventInd, loading2d, part.field, part.count, pol, o.maxfloor)
	}
	result <- part
}

//a worker's share of the field, plus its error, if any.
type partialField struct {
	field *mat.Dense
	count *mat.Dense
	err   error
}

//mergePartial folds a worker's partial accumulation into the final field
//with the same combine rule used within chunks.
func mergePartial(field, count *mat.Dense, part *partialField, pol Policy) {
	r, _ := field.Dims()
	for i := 0; i < r; i++ {
		dst := field.RawRowView(i)
		src := part.field.RawRowView(i)
		switch pol {
		case Max:
			for j, v := range src {
				if v > dst[j] {
					dst[j] = v
				}
			}
		default: //Sum and the Avg running sum merge the same way
			floats.Add(dst, src)
		}
		if count != nil {
			floats.Add(count.RawRowView(i), part.count.RawRowView(i))
		}
	}
}

//prepare validates the inputs common to both entry points and allocates
//the field (and, for Avg, the count matrix).
func prepare(assn Table, loading2d *mat.Dense, nFrames, nAtoms int, pol Policy, o *Options) (*mat.Dense, *mat.Dense, error) {
	if pol != Sum && pol != Max && pol != Avg {
		return nil, nil, CError{fmt.Sprintf("%s: %d", ErrUnknownPolicy, int(pol)), []string{"prepare"}}
	}
	if assn == nil {
		return nil, nil, CError{ErrNilTable, []string{"prepare"}}
	}
	if loading2d == nil {
		return nil, nil, CError{ErrNilLoading, []string{"prepare"}}
	}
	if nFrames <= 0 || nAtoms <= 0 {
		return nil, nil, CError{fmt.Sprintf("Nonsensical field dimensions %dx%d", nFrames, nAtoms), []string{"prepare"}}
	}
	//a zero-value Options skipped the setters' validation, so the scan
	//loops would never advance (or ConcCompute would start no workers).
	if o.chunk <= 0 {
		o.chunk = 1000000
	}
	if o.cpus <= 0 {
		o.cpus = runtime.NumCPU()
	}
	field := newField(nFrames, nAtoms, pol, o.maxfloor)
	var count *mat.Dense
	if pol == Avg {
		count = mat.NewDense(nFrames, nAtoms, nil)
	}
	return field, count, nil
}

//newField allocates the output. For Max every cell starts at the floor, so
//untouched cells keep it.
func newField(nFrames, nAtoms int, pol Policy, floor float64) *mat.Dense {
	field := mat.NewDense(nFrames, nAtoms, nil)
	if pol == Max && floor != 0 {
		for i := 0; i < nFrames; i++ {
			row := field.RawRowView(i)
			for j := range row {
				row[j] = floor
			}
		}
	}
	return field
}

//computeChunk folds one chunk of assignment rows into the field. count may
//be nil for the Sum and Max policies.
func computeChunk(rows []Assignment, solventInd []int, loading2d *mat.Dense, field, count *mat.Dense, pol Policy, floor float64) error {
	nFrames, nAtoms := field.Dims()
	nSolute, nShells := loading2d.Dims()
	for _, row := range rows {
		if row.Solvent < 0 || row.Solvent >= len(solventInd) {
			return CError{fmt.Sprintf("%s: solvent local index %d, map has %d entries", ErrIndexOutOfRange, row.Solvent, len(solventInd)), []string{"computeChunk"}}
		}
		atom := solventInd[row.Solvent]
		if row.Frame < 0 || row.Frame >= nFrames || atom < 0 || atom >= nAtoms {
			return CError{fmt.Sprintf("%s: frame %d, atom %d, field is %dx%d", ErrIndexOutOfRange, row.Frame, atom, nFrames, nAtoms), []string{"computeChunk"}}
		}
		if row.Solute < 0 || row.Solute >= nSolute || row.Shell < 0 || row.Shell >= nShells {
			return CError{fmt.Sprintf("%s: solute %d, shell %d, loading matrix is %dx%d", ErrIndexOutOfRange, row.Solute, row.Shell, nSolute, nShells), []string{"computeChunk"}}
		}
		v := loading2d.At(row.Solute, row.Shell)
		switch pol {
		case Max:
			if v > field.At(row.Frame, atom) {
				field.Set(row.Frame, atom, v)
			}
		default:
			field.Set(row.Frame, atom, field.At(row.Frame, atom)+v)
			if count != nil {
				count.Set(row.Frame, atom, count.At(row.Frame, atom)+1)
			}
		}
	}
	return nil
}

//averageInPlace divides every cell by its count, leaving cells with no
//contributions at 0.
func averageInPlace(field, count *mat.Dense) {
	r, _ := field.Dims()
	for i := 0; i < r; i++ {
		f := field.RawRowView(i)
		c := count.RawRowView(i)
		for j, n := range c {
			if n > 0 {
				f[j] /= n
			}
		}
	}
}
