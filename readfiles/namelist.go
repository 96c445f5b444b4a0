package readfiles

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/notargets/goreactor/types"
)

/*
ReadNamelist reads NAME = value assignments from a Fortran style parameter file. Group headers
(&NAME) and '!' comments are skipped, names are upper cased, and reading stops at the first
line holding only "/".
*/
func ReadNamelist(filename string, verbose bool) (params map[string]string, err error) {
	file, err := openFile(filename, verbose)
	if err != nil {
		return
	}
	defer file.Close()
	if params, err = readNamelist(file); err != nil {
		err = fmt.Errorf("%s: %w", filename, err)
	}
	return
}

func readNamelist(r io.Reader) (params map[string]string, err error) {
	var (
		reader = bufio.NewReader(r)
		line   string
	)
	params = make(map[string]string)
	for {
		if line, err = getLineNoComments(reader, "!&"); err == io.EOF {
			err = nil
			return
		} else if err != nil {
			return
		}
		if line == "/" {
			return
		}
		if ind := strings.Index(line, "!"); ind >= 0 {
			line = line[:ind]
		}
		ind := strings.Index(line, "=")
		if ind < 0 {
			err = fmt.Errorf("badly formed input line [%s], should have an =: %w", line, types.ErrConfig)
			return
		}
		name := strings.ToUpper(strings.TrimSpace(line[:ind]))
		value := strings.TrimSpace(line[ind+1:])
		value = strings.TrimSpace(strings.TrimSuffix(value, ","))
		value = strings.Trim(value, `"'`)
		if name == "" {
			err = fmt.Errorf("missing name in line [%s]: %w", line, types.ErrConfig)
			return
		}
		params[name] = value
	}
}
