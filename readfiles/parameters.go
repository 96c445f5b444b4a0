package readfiles

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/notargets/goreactor/types"
)

/*
WriteParameters writes the two line legacy parameter file:

	% name1, name2, ...
	value1 value2 ...

An existing file is only replaced when overwrite is set.
*/
func WriteParameters(filename string, names, values []string, overwrite bool) (err error) {
	var (
		file *os.File
	)
	if len(names) != len(values) {
		err = fmt.Errorf("%d names for %d values: %w", len(names), len(values), types.ErrConfig)
		return
	}
	for i, name := range names {
		if strings.ContainsAny(name, ", \t") || name == "" {
			err = fmt.Errorf("parameter name [%s] is empty or holds a separator: %w", name, types.ErrConfig)
			return
		}
		if strings.ContainsAny(values[i], " \t\n") || values[i] == "" {
			err = fmt.Errorf("value [%s] for %s is empty or holds a blank: %w", values[i], name, types.ErrConfig)
			return
		}
	}
	if _, err = os.Stat(filename); err == nil && !overwrite {
		err = fmt.Errorf("%s exists and overwrite is not set: %w", filename, types.ErrConfig)
		return
	}
	if file, err = os.Create(filename); err != nil {
		return
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	w := bufio.NewWriter(file)
	fmt.Fprintf(w, "%% %s\n", strings.Join(names, ", "))
	fmt.Fprintf(w, "%s\n", strings.Join(values, " "))
	return w.Flush()
}

// ReadParameterList returns names and values in file order
func ReadParameterList(filename string) (names, values []string, err error) {
	var (
		file   *os.File
		reader *bufio.Reader
		header string
		line   string
	)
	if file, err = openFile(filename, false); err != nil {
		return
	}
	defer file.Close()
	reader = bufio.NewReader(file)
	if header, err = getLine(reader); err != nil {
		err = fmt.Errorf("%s: missing header line: %w", filename, types.ErrConfig)
		return
	}
	if line, err = getLine(reader); err != nil {
		err = fmt.Errorf("%s: missing value line: %w", filename, types.ErrConfig)
		return
	}
	header = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(header), "%"))
	if strings.Contains(header, ",") {
		for _, name := range strings.Split(header, ",") {
			names = append(names, strings.TrimSpace(name))
		}
	} else {
		names = strings.Fields(header)
	}
	values = strings.Fields(line)
	if len(names) != len(values) {
		err = fmt.Errorf("%s: %d names for %d values: %w", filename, len(names), len(values), types.ErrConfig)
	}
	return
}

func ReadParameters(filename string) (params map[string]string, err error) {
	names, values, err := ReadParameterList(filename)
	if err != nil {
		return
	}
	params = make(map[string]string, len(names))
	for i, name := range names {
		params[name] = values[i]
	}
	return
}
