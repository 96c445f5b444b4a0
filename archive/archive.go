package archive

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/notargets/goreactor/types"
	"github.com/notargets/goreactor/utils"
	"github.com/robert-malhotra/go-hdf5/hdf5"
)

// ShapeAttribute carries the logical shape of datasets stored flat
const ShapeAttribute = "shape"

// Source is the read side of an output archive
type Source interface {
	Dataset(path string) (utils.NDArray, error)
	Close() error
}

// ArchiveName is the file holding the output of one solver module
func ArchiveName(module types.Module) string {
	return "output_" + string(module) + ".h5"
}

// Path is the archive of a module under an output root directory
func Path(root string, module types.Module) string {
	return filepath.Join(root, ArchiveName(module))
}

type File struct {
	path string
	h5   *hdf5.File
}

// Open opens an archive read only, the file must exist
func Open(path string) (f *File, err error) {
	if _, err = os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			err = fmt.Errorf("%s: %w", path, types.ErrArchiveMissing)
		}
		return
	}
	f = &File{path: path}
	if f.h5, err = hdf5.Open(path); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return
}

// OpenSource is Open behind the Source interface
func OpenSource(path string) (Source, error) {
	f, err := Open(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) Close() error { return f.h5.Close() }

/*
Dataset reads a numeric dataset as float64. Datasets written flat with a shape attribute get
their logical shape back; all others keep the dataspace dimensions.
*/
func (f *File) Dataset(path string) (A utils.NDArray, err error) {
	var (
		ds    *hdf5.Dataset
		data  []float64
		shape []int
	)
	if ds, err = f.h5.OpenDataset(strings.TrimPrefix(path, "/")); err != nil {
		if errors.Is(err, hdf5.ErrNotFound) {
			err = fmt.Errorf("%s in %s: %w", path, f.path, types.ErrQuantityNotFound)
		} else {
			err = fmt.Errorf("%s in %s: %v", path, f.path, err)
		}
		return
	}
	if data, err = ds.ReadFloat64(); err != nil {
		err = fmt.Errorf("reading %s in %s: %v", path, f.path, err)
		return
	}
	if ds.HasAttr(ShapeAttribute) {
		var dims []int64
		if dims, err = ds.Attr(ShapeAttribute).ReadInt64(); err != nil {
			err = fmt.Errorf("reading shape of %s: %v", path, err)
			return
		}
		for _, d := range dims {
			shape = append(shape, int(d))
		}
	} else {
		for _, d := range ds.Shape() {
			shape = append(shape, int(d))
		}
	}
	A = utils.NDArray{Data: data}
	if A, err = A.Reshape(shape); err != nil {
		err = fmt.Errorf("dataset %s: %w", path, err)
	}
	return
}

// Writer builds a new archive; datasets are stored flat with their shape as an attribute
type Writer struct {
	path   string
	h5     *hdf5.File
	groups map[string]*hdf5.Group
}

func Create(path string) (w *Writer, err error) {
	w = &Writer{
		path:   path,
		groups: make(map[string]*hdf5.Group),
	}
	if w.h5, err = hdf5.Create(path); err != nil {
		return nil, fmt.Errorf("creating %s: %v", path, err)
	}
	w.groups[""] = w.h5.Root()
	return
}

// group returns the group at a slash separated path, creating missing levels once
func (w *Writer) group(path string) (g *hdf5.Group, err error) {
	var (
		ok bool
	)
	if g, ok = w.groups[path]; ok {
		return
	}
	parent, name := "", path
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		parent, name = path[:i], path[i+1:]
	}
	var pg *hdf5.Group
	if pg, err = w.group(parent); err != nil {
		return
	}
	if g, err = pg.CreateGroup(name); err != nil {
		return nil, fmt.Errorf("creating group %s in %s: %v", path, w.path, err)
	}
	w.groups[path] = g
	return
}

func (w *Writer) WriteDataset(path string, A utils.NDArray) (err error) {
	var (
		g     *hdf5.Group
		shape = make([]int64, len(A.Shape))
	)
	path = strings.Trim(path, "/")
	if len(path) == 0 || A.Size() == 0 {
		return fmt.Errorf("dataset [%s] needs a name and data: %w", path, types.ErrConfig)
	}
	for i, d := range A.Shape {
		shape[i] = int64(d)
	}
	parent, name := "", path
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		parent, name = path[:i], path[i+1:]
	}
	if g, err = w.group(parent); err != nil {
		return
	}
	if _, err = g.CreateDataset(name, A.Data, hdf5.WithAttribute(ShapeAttribute, shape)); err != nil {
		err = fmt.Errorf("writing %s to %s: %v", path, w.path, err)
	}
	return
}

func (w *Writer) Close() error { return w.h5.Close() }
