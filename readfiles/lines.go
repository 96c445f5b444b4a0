package readfiles

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/notargets/goreactor/types"
)

// getLine returns the next line without its line ending, io.EOF is only returned once
// nothing is left to read
func getLine(reader *bufio.Reader) (line string, err error) {
	line, err = reader.ReadString('\n')
	if err == io.EOF && len(line) != 0 {
		err = nil
	}
	line = strings.TrimRight(line, "\r\n")
	return
}

// getLineNoComments skips blank lines and lines starting with any of the comment markers
func getLineNoComments(reader *bufio.Reader, markers string) (line string, err error) {
	for {
		if line, err = getLine(reader); err != nil {
			return
		}
		line = strings.TrimSpace(line)
		if len(line) == 0 || strings.ContainsRune(markers, rune(line[0])) {
			continue
		}
		return
	}
}

func openFile(filename string, verbose bool) (file *os.File, err error) {
	if verbose {
		fmt.Printf("Reading file named: %s\n", filename)
	}
	if file, err = os.Open(filename); err != nil {
		if os.IsNotExist(err) {
			err = fmt.Errorf("%s: %w", filename, types.ErrMissingFile)
		} else {
			err = fmt.Errorf("unable to open file %s: %v", filename, err)
		}
	}
	return
}
