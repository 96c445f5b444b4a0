package extract

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/notargets/goreactor/archive"
	"github.com/notargets/goreactor/catalog"
	"github.com/notargets/goreactor/coremap"
	"github.com/notargets/goreactor/readfiles"
	"github.com/notargets/goreactor/types"
	"github.com/notargets/goreactor/utils"
)

type Filters map[types.Axis]utils.Selection

/*
Request names a quantity and how to slice it. Axes without a filter default to the first time
step (dropped from the result) and to every level of the other axes. Assembly filters use the
1-based numbering given by Convention.
*/
type Request struct {
	Quantity   string
	Filters    Filters
	Legacy     bool
	Convention types.Convention
}

// Profile is an extracted sub-array; Axes lists the axes left in Values, in order
type Profile struct {
	Entry  catalog.Entry
	Axes   []types.Axis
	Values utils.NDArray
}

func (p *Profile) Matrix() (utils.Matrix, error) { return p.Values.Matrix() }

type Extractor struct {
	Root    string
	Catalog *catalog.Catalog
	CoreMap *coremap.CoreMap // needed for native assembly filters only
	Open    func(path string) (archive.Source, error)
	Verbose bool
}

func NewExtractor(root string, cat *catalog.Catalog) *Extractor {
	return &Extractor{
		Root:    root,
		Catalog: cat,
		Open:    archive.OpenSource,
	}
}

// Get resolves a request through the catalog and reads the selection from the archive, or from
// the legacy text tables when the request asks for them
func (e *Extractor) Get(req Request) (p *Profile, err error) {
	var (
		entry catalog.Entry
	)
	if entry, err = e.Catalog.Classify(req.Quantity); err != nil {
		return
	}
	if err = checkFilters(entry, req.Filters); err != nil {
		return
	}
	switch {
	case req.Legacy && entry.Category == types.Distributed:
		err = fmt.Errorf("%s is distributed and has no legacy table: %w", entry.Name, types.ErrDimensionMismatch)
	case req.Legacy:
		p, err = e.getLegacy(entry, req)
	default:
		p, err = e.getArchive(entry, req)
	}
	return
}

func checkFilters(entry catalog.Entry, filters Filters) (err error) {
	var (
		declared = make(map[types.Axis]bool)
		axes     []int
	)
	for _, axis := range entry.Axes {
		declared[axis] = true
	}
	for axis := range filters {
		axes = append(axes, int(axis))
	}
	sort.Ints(axes)
	for _, a := range axes {
		if axis := types.Axis(a); !declared[axis] {
			return fmt.Errorf("%s has no %s axis, axes are %v: %w", entry.Name, axis, entry.Axes,
				types.ErrDimensionMismatch)
		}
	}
	return
}

func (e *Extractor) getLegacy(entry catalog.Entry, req Request) (p *Profile, err error) {
	var (
		T utils.Matrix
	)
	filename := filepath.Join(e.Root, entry.LegacyFile())
	if T, err = readfiles.ReadLegacy(filename, entry.Column, e.Verbose); err != nil {
		return
	}
	return e.timeRows(entry, utils.NDArrayFromMatrix(T), req.Filters)
}

func (e *Extractor) getArchive(entry catalog.Entry, req Request) (p *Profile, err error) {
	var (
		src  archive.Source
		A    utils.NDArray
		path = archive.Path(e.Root, entry.Module)
	)
	if src, err = e.Open(path); err != nil {
		return
	}
	defer src.Close()
	if e.Verbose {
		fmt.Printf("Reading %s from %s\n", entry.DatasetPath(), path)
	}
	if A, err = src.Dataset(entry.DatasetPath()); err != nil {
		return
	}
	if entry.Category == types.Integral {
		if A.Rank() != 2 || A.Shape[1] <= entry.Column {
			err = fmt.Errorf("table %s has shape %v, %s needs column %d: %w",
				entry.DatasetPath(), A.Shape, entry.Name, entry.Column, types.ErrDimensionMismatch)
			return
		}
		if A, _, err = A.Select([]utils.Selection{utils.All(), utils.List(0, entry.Column)}); err != nil {
			return
		}
		return e.timeRows(entry, A, req.Filters)
	}
	return e.distributed(entry, A, req)
}

// timeRows keeps the (time, value) table rows picked by the time filter, all rows by default
func (e *Extractor) timeRows(entry catalog.Entry, TV utils.NDArray, filters Filters) (p *Profile, err error) {
	var (
		rows = utils.All()
	)
	if sel, ok := filters[types.AxisTime]; ok {
		var I utils.Index
		if I, err = sel.Resolve(TV.Shape[0]); err != nil {
			err = fmt.Errorf("%s time filter %s: %w", entry.Name, sel, err)
			return
		}
		rows = utils.List(I...)
	}
	p = &Profile{Entry: entry, Axes: []types.Axis{types.AxisTime}}
	if p.Values, _, err = TV.Select([]utils.Selection{rows, utils.All()}); err != nil {
		return nil, err
	}
	return
}

func (e *Extractor) distributed(entry catalog.Entry, A utils.NDArray, req Request) (p *Profile, err error) {
	var (
		sels   = make([]utils.Selection, len(entry.Axes))
		counts = e.Catalog.Counts()
		kept   []int
	)
	if A.Rank() != len(entry.Axes) {
		err = fmt.Errorf("%s is stored with rank %d, expected axes %v: %w",
			entry.Name, A.Rank(), entry.Axes, types.ErrDimensionMismatch)
		return
	}
	for d, axis := range entry.Axes {
		// precursor axes count either delayed neutron or decay heat families, so only the
		// energy group axes are checked against the namelist
		size := counts.AxisSize(axis)
		if e.Catalog.Expanded() && axis != types.AxisPrecursor && size > 0 && size != A.Shape[d] {
			err = fmt.Errorf("%s %s axis has length %d, namelist gives %d: %w",
				entry.Name, axis, A.Shape[d], size, types.ErrDimensionMismatch)
			return
		}
		sel, ok := req.Filters[axis]
		switch {
		case !ok && axis == types.AxisTime:
			sel = utils.At(0)
		case !ok:
			sel = utils.All()
		case axis == types.AxisAssembly:
			if sel, err = e.assemblySelection(sel, req.Convention); err != nil {
				return
			}
		}
		sels[d] = sel
	}
	p = &Profile{Entry: entry}
	if p.Values, kept, err = A.Select(sels); err != nil {
		return nil, fmt.Errorf("%s: %w", entry.Name, err)
	}
	for _, d := range kept {
		p.Axes = append(p.Axes, entry.Axes[d])
	}
	return
}

// assemblySelection turns 1-based assembly labels into 0-based offsets along the stored
// assembly axis, which follows the alternate numbering
func (e *Extractor) assemblySelection(sel utils.Selection, conv types.Convention) (r utils.Selection, err error) {
	r = sel
	if conv == types.Native {
		if e.CoreMap == nil {
			err = fmt.Errorf("native assembly filter %s needs a core map: %w", sel, types.ErrConfig)
			return
		}
		if r, err = sel.Map(func(n int) (int, error) {
			return e.CoreMap.Translate(n, types.Native, types.Alternate)
		}); err != nil {
			return
		}
	}
	return r.Offset(-1), nil
}

/*
GetMany runs a batch of requests over parallelDegree goroutines. Results and errors are in
request order; each request opens its own archive handle.
*/
func (e *Extractor) GetMany(reqs []Request, parallelDegree int) (profiles []*Profile, errs []error) {
	var (
		pm = utils.NewPartitionMap(parallelDegree, len(reqs))
	)
	profiles = make([]*Profile, len(reqs))
	errs = make([]error, len(reqs))
	pm.Run(func(bn, kMin, kMax int) {
		for k := kMin; k < kMax; k++ {
			profiles[k], errs[k] = e.Get(reqs[k])
		}
	})
	return
}
