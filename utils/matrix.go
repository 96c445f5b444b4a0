package utils

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Matrix is a dense row-major table, used for integral time series and centroid lists
type Matrix struct {
	M     *mat.Dense
	DataP []float64
}

func NewMatrix(nr, nc int, dataO ...[]float64) (R Matrix) {
	var m *mat.Dense
	if len(dataO) != 0 {
		if len(dataO[0]) != nr*nc {
			err := fmt.Errorf("mismatch in allocation: NewMatrix nr,nc = %v,%v, len(data[0]) = %v", nr, nc, len(dataO[0]))
			panic(err)
		}
		m = mat.NewDense(nr, nc, dataO[0])
	} else {
		m = mat.NewDense(nr, nc, make([]float64, nr*nc))
	}
	return Matrix{
		M:     m,
		DataP: m.RawMatrix().Data,
	}
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m Matrix) Dims() (r, c int)    { return m.M.Dims() }
func (m Matrix) At(i, j int) float64 { return m.M.At(i, j) }
func (m Matrix) T() mat.Matrix       { return m.M.T() }

func (m Matrix) Set(i, j int, val float64) { m.M.Set(i, j, val) }

func (m Matrix) Col(j int) (col []float64) {
	var (
		nr, _ = m.M.Dims()
	)
	col = make([]float64, nr)
	mat.Col(col, j, m.M)
	return
}

// SubCols returns a new matrix holding the listed columns, in the listed order
func (m Matrix) SubCols(J Index) (R Matrix, err error) {
	var (
		nr, nc = m.Dims()
	)
	R = NewMatrix(nr, len(J))
	for jj, j := range J {
		if j < 0 || j > nc-1 {
			err = fmt.Errorf("column index %d out of bounds [0,%d)", j, nc)
			return
		}
		R.M.SetCol(jj, m.Col(j))
	}
	return
}

func (m Matrix) String() string {
	var (
		nr, nc = m.Dims()
		sb     strings.Builder
	)
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			if j != 0 {
				sb.WriteString(" ")
			}
			fmt.Fprintf(&sb, "%14.6e", m.M.At(i, j))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
