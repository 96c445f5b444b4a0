package coremap

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/notargets/goreactor/types"
)

/*
Layout is the raw lattice description: one assembly type code per position in alternate
numbering (Types[k-1] for position k, 0 for an empty position), and optional replacements that
move listed positions to another type before the map is built.
*/
type Layout struct {
	Shape   types.LatticeShape
	Rings   int
	Types   []int
	Replace map[int][]int // type code -> alternate positions
}

/*
ReadLayout parses a layout file:

	# comment
	hexagon 3
	1 1 1 2 2 2
	2 ...

The header names the lattice shape and the number of rings, the remaining fields are the type
codes in alternate order.
*/
func ReadLayout(r io.Reader) (lay Layout, err error) {
	var (
		scanner = bufio.NewScanner(r)
		header  bool
		lineNo  int
	)
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if !header {
			if len(fields) != 2 {
				err = fmt.Errorf("line %d: layout header must be \"<shape> <rings>\": %w", lineNo, types.ErrConfig)
				return
			}
			if lay.Shape, err = types.NewLatticeShape(fields[0]); err != nil {
				return
			}
			if lay.Rings, err = strconv.Atoi(fields[1]); err != nil || lay.Rings < 1 {
				err = fmt.Errorf("line %d: invalid ring count [%s]: %w", lineNo, fields[1], types.ErrConfig)
				return
			}
			header = true
			continue
		}
		for _, field := range fields {
			var code int
			if code, err = strconv.Atoi(field); err != nil || code < 0 {
				err = fmt.Errorf("line %d: invalid assembly type [%s]: %w", lineNo, field, types.ErrConfig)
				return
			}
			lay.Types = append(lay.Types, code)
		}
	}
	if err = scanner.Err(); err != nil {
		return
	}
	if !header {
		err = fmt.Errorf("layout has no header: %w", types.ErrConfig)
	}
	return
}

func ReadLayoutFile(filename string, verbose bool) (lay Layout, err error) {
	if verbose {
		fmt.Printf("Reading layout file named: %s\n", filename)
	}
	file, err := os.Open(filename)
	if err != nil {
		if os.IsNotExist(err) {
			err = fmt.Errorf("%s: %w", filename, types.ErrMissingFile)
		}
		return
	}
	defer file.Close()
	if lay, err = ReadLayout(file); err != nil {
		err = fmt.Errorf("%s: %w", filename, err)
	}
	return
}
