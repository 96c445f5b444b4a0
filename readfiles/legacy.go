package readfiles

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/notargets/goreactor/types"
	"github.com/notargets/goreactor/utils"
)

// fortranExponent maps the Fortran double precision exponent marker to the Go one
var fortranExponent = strings.NewReplacer("D", "E", "d", "e")

// ReadTable loads a whitespace delimited numeric table, skipping '#' comment lines
func ReadTable(filename string, verbose bool) (T utils.Matrix, err error) {
	file, err := openFile(filename, verbose)
	if err != nil {
		return
	}
	defer file.Close()
	if T, err = readTable(file); err != nil {
		err = fmt.Errorf("%s: %w", filename, err)
	}
	return
}

func readTable(r io.Reader) (T utils.Matrix, err error) {
	var (
		reader = bufio.NewReader(r)
		line   string
		data   []float64
		nr, nc int
	)
	for {
		if line, err = getLineNoComments(reader, "#"); err == io.EOF {
			err = nil
			break
		} else if err != nil {
			return
		}
		fields := strings.Fields(line)
		if nr == 0 {
			nc = len(fields)
		} else if len(fields) != nc {
			err = fmt.Errorf("row %d has %d columns, expected %d: %w", nr+1, len(fields), nc, types.ErrConfig)
			return
		}
		for _, field := range fields {
			var val float64
			if val, err = strconv.ParseFloat(fortranExponent.Replace(field), 64); err != nil {
				err = fmt.Errorf("row %d: bad number [%s]: %w", nr+1, field, types.ErrConfig)
				return
			}
			data = append(data, val)
		}
		nr++
	}
	if nr == 0 {
		err = fmt.Errorf("no numeric rows found: %w", types.ErrConfig)
		return
	}
	T = utils.NewMatrix(nr, nc, data)
	return
}

/*
ReadLegacy returns columns [0, column] of a legacy per-category output table: the time axis and
the requested quantity, as a N x 2 matrix.
*/
func ReadLegacy(filename string, column int, verbose bool) (TV utils.Matrix, err error) {
	var (
		T utils.Matrix
	)
	if T, err = ReadTable(filename, verbose); err != nil {
		return
	}
	_, nc := T.Dims()
	if column < 1 || column > nc-1 {
		err = fmt.Errorf("%s: column %d not in [1,%d]: %w", filename, column, nc-1, types.ErrDimensionMismatch)
		return
	}
	return T.SubCols(utils.Index{0, column})
}
