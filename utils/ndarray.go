package utils

import (
	"fmt"

	"github.com/notargets/goreactor/types"
)

// NDArray is a dense row-major (C order) array, the in-memory form of an archive dataset
type NDArray struct {
	Shape []int
	Data  []float64
}

func NewNDArray(shape []int, dataO ...[]float64) (A NDArray) {
	var (
		size = shapeSize(shape)
	)
	A.Shape = append([]int{}, shape...)
	if len(dataO) != 0 {
		if len(dataO[0]) != size {
			panic(fmt.Errorf("mismatch in allocation: NewNDArray shape = %v, len(data[0]) = %v", shape, len(dataO[0])))
		}
		A.Data = dataO[0]
	} else {
		A.Data = make([]float64, size)
	}
	return
}

func shapeSize(shape []int) (size int) {
	size = 1
	for _, n := range shape {
		size *= n
	}
	return
}

// Reshape reinterprets the data with a new shape of the same size
func (A NDArray) Reshape(shape []int) (R NDArray, err error) {
	if shapeSize(shape) != len(A.Data) {
		err = fmt.Errorf("cannot reshape %d values into %v: %w", len(A.Data), shape, types.ErrDimensionMismatch)
		return
	}
	R = NDArray{Shape: append([]int{}, shape...), Data: A.Data}
	return
}

func (A NDArray) Rank() int { return len(A.Shape) }
func (A NDArray) Size() int { return len(A.Data) }

func (A NDArray) Strides() (strides []int) {
	strides = make([]int, len(A.Shape))
	stride := 1
	for d := len(A.Shape) - 1; d >= 0; d-- {
		strides[d] = stride
		stride *= A.Shape[d]
	}
	return
}

func (A NDArray) At(idx ...int) float64 {
	var (
		strides = A.Strides()
		offset  int
	)
	if len(idx) != len(A.Shape) {
		panic(fmt.Errorf("At called with %d indices on a rank %d array", len(idx), len(A.Shape)))
	}
	for d, i := range idx {
		offset += i * strides[d]
	}
	return A.Data[offset]
}

/*
Select applies one selection per axis and returns the sub-array together with the positions of
the axes that survive (scalar selections drop their axis). The number of selections must equal
the rank.
*/
func (A NDArray) Select(sels []Selection) (R NDArray, kept []int, err error) {
	var (
		rank    = A.Rank()
		strides = A.Strides()
		picks   = make([]Index, rank)
		shape   []int
	)
	if len(sels) != rank {
		err = fmt.Errorf("%d selections for a rank %d array: %w", len(sels), rank, types.ErrDimensionMismatch)
		return
	}
	for d, sel := range sels {
		if picks[d], err = sel.Resolve(A.Shape[d]); err != nil {
			err = fmt.Errorf("axis %d: %w", d, err)
			return
		}
		if !sel.IsScalar() {
			shape = append(shape, len(picks[d]))
			kept = append(kept, d)
		}
	}
	R = NewNDArray(shape)
	if rank == 0 {
		copy(R.Data, A.Data)
		return
	}
	// Odometer over the picked indices, last axis fastest, matching the output order
	counter := make([]int, rank)
	for n := range R.Data {
		var offset int
		for d := 0; d < rank; d++ {
			offset += picks[d][counter[d]] * strides[d]
		}
		R.Data[n] = A.Data[offset]
		for d := rank - 1; d >= 0; d-- {
			counter[d]++
			if counter[d] < len(picks[d]) {
				break
			}
			counter[d] = 0
		}
	}
	return
}

// Matrix views a rank 1 (as a column) or rank 2 array as a Matrix sharing the same data
func (A NDArray) Matrix() (M Matrix, err error) {
	switch A.Rank() {
	case 0:
		M = NewMatrix(1, 1, A.Data)
	case 1:
		M = NewMatrix(A.Shape[0], 1, A.Data)
	case 2:
		M = NewMatrix(A.Shape[0], A.Shape[1], A.Data)
	default:
		err = fmt.Errorf("rank %d array has no matrix form: %w", A.Rank(), types.ErrDimensionMismatch)
	}
	return
}

// NDArrayFromMatrix copies a matrix into a rank 2 array
func NDArrayFromMatrix(M Matrix) (A NDArray) {
	var (
		nr, nc = M.Dims()
		data   = make([]float64, nr*nc)
	)
	for i := 0; i < nr; i++ {
		copy(data[i*nc:(i+1)*nc], M.M.RawRowView(i))
	}
	return NewNDArray([]int{nr, nc}, data)
}
