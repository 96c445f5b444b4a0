package catalog

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/notargets/goreactor/readfiles"
	"github.com/notargets/goreactor/types"
)

const (
	IntegralGroup      = "integralParameters"
	DistributionsGroup = "distributions"
	NamelistFile       = "macro.nml"
)

type TemplateKind uint8

const (
	NotTemplate TemplateKind = iota
	GroupTemplate
	PrecursorTemplate
)

// Entry describes where one quantity lives and how its dataset is laid out
type Entry struct {
	Name        string
	Category    types.Category
	Module      types.Module
	Group       string // integral table key, or DistributionsGroup
	Axes        []types.Axis
	Unit        string
	Description string
	Template    TemplateKind
	Column      int // integral only, column in the group table, 0 is time
}

// DatasetPath is the location of the entry inside its module archive
func (e Entry) DatasetPath() string {
	if e.Category == types.Integral {
		return IntegralGroup + "/" + e.Group
	}
	return DistributionsGroup + "/" + e.Name
}

// LegacyFile is the per-category text file holding the same integral table
func (e Entry) LegacyFile() string {
	return e.Group + ".out"
}

// Counts are the group and precursor family sizes of one simulation
type Counts struct {
	NGRO int // energy groups
	NPRE int // delayed neutron precursor families
	NGRP int // secondary energy groups
	NPRP int // decay heat families
}

var countNames = []string{"NGRO", "NPRE", "NGRP", "NPRP"}

// AxisSize is the expected length of a group-like axis, 0 when it is not fixed by the counts
func (c Counts) AxisSize(axis types.Axis) int {
	switch axis {
	case types.AxisGroup:
		return c.NGRO
	case types.AxisSecondaryGroup:
		return c.NGRP
	case types.AxisPrecursor:
		return c.NPRE
	}
	return 0
}

func (c Counts) templateSize(kind TemplateKind) int {
	switch kind {
	case GroupTemplate:
		return c.NGRO
	case PrecursorTemplate:
		return c.NPRE
	}
	return 0
}

// CountsFromNamelist extracts the group and family sizes, all four must be present
func CountsFromNamelist(params map[string]string) (c Counts, err error) {
	targets := []*int{&c.NGRO, &c.NPRE, &c.NGRP, &c.NPRP}
	for i, name := range countNames {
		val, ok := params[name]
		if !ok {
			err = fmt.Errorf("namelist is missing %s: %w", name, types.ErrConfig)
			return
		}
		if *targets[i], err = strconv.Atoi(val); err != nil || *targets[i] < 0 {
			err = fmt.Errorf("namelist %s = [%s] is not a count: %w", name, val, types.ErrConfig)
			return
		}
	}
	return
}

/*
Catalog is the per-archive registry of retrievable quantities. Templated entries stay in place
until Expand is called with the counts of the simulation; classification is a single map lookup.
A Catalog is read only once built and can be shared between goroutines.
*/
type Catalog struct {
	entries  []Entry
	byName   map[string]int
	counts   Counts
	expanded bool
	version  int // number of expansion passes that changed the entries
}

func New() (c *Catalog) {
	c = &Catalog{
		entries: defaultEntries(),
	}
	if err := c.index(); err != nil {
		panic(err)
	}
	return
}

// Load builds the catalog of an archive root, expanding templates when the root holds a
// namelist. A missing namelist leaves the templates unexpanded.
func Load(root string, verbose bool) (c *Catalog, err error) {
	var (
		params map[string]string
		counts Counts
	)
	c = New()
	params, err = readfiles.ReadNamelist(filepath.Join(root, NamelistFile), verbose)
	if errors.Is(err, types.ErrMissingFile) {
		if verbose {
			fmt.Printf("no %s in %s, templated quantities are not expanded\n", NamelistFile, root)
		}
		return c, nil
	}
	if err != nil {
		return nil, err
	}
	if counts, err = CountsFromNamelist(params); err != nil {
		return nil, err
	}
	if err = c.Expand(counts); err != nil {
		return nil, err
	}
	return
}

func (c *Catalog) index() (err error) {
	var (
		position = make(map[string]int)
	)
	c.byName = make(map[string]int, len(c.entries))
	for i := range c.entries {
		e := &c.entries[i]
		if _, dup := c.byName[e.Name]; dup {
			return fmt.Errorf("duplicate quantity name %s: %w", e.Name, types.ErrConfig)
		}
		c.byName[e.Name] = i
		if e.Category == types.Integral {
			position[e.Group]++
			e.Column = position[e.Group]
		}
	}
	return
}

/*
Expand replaces every template entry by one entry per group or family, in place, e.g. betaeff(
becomes betaeff(0) ... betaeff(NPRE-1). Calling it again with the same counts is a no-op,
calling it with different counts is an error.
*/
func (c *Catalog) Expand(counts Counts) (err error) {
	if c.expanded {
		if counts != c.counts {
			err = fmt.Errorf("catalog already expanded with %+v, cannot expand with %+v: %w",
				c.counts, counts, types.ErrConfig)
		}
		return
	}
	var (
		expanded = make([]Entry, 0, len(c.entries))
		changed  bool
	)
	for _, e := range c.entries {
		if e.Template == NotTemplate {
			expanded = append(expanded, e)
			continue
		}
		changed = true
		for k := 0; k < counts.templateSize(e.Template); k++ {
			ee := e
			ee.Template = NotTemplate
			ee.Axes = append([]types.Axis{}, e.Axes...)
			if strings.HasSuffix(e.Name, "(") {
				ee.Name = fmt.Sprintf("%s%d)", e.Name, k)
			} else {
				ee.Name = fmt.Sprintf("%s%d", e.Name, k)
			}
			expanded = append(expanded, ee)
		}
	}
	previous := c.entries
	c.entries = expanded
	if err = c.index(); err != nil {
		c.entries = previous
		_ = c.index()
		return
	}
	c.counts, c.expanded = counts, true
	if changed {
		c.version++
	}
	return
}

func (c *Catalog) Expanded() bool { return c.expanded }
func (c *Catalog) Counts() Counts { return c.counts }
func (c *Catalog) Version() int   { return c.version }

// Classify resolves a quantity name to its catalog entry
func (c *Catalog) Classify(name string) (e Entry, err error) {
	i, ok := c.byName[name]
	if !ok {
		err = fmt.Errorf("%s: %w", name, types.ErrQuantityNotFound)
		return
	}
	e = c.entries[i]
	e.Axes = append([]types.Axis{}, e.Axes...)
	return
}

// Entries returns a copy of the entries in catalog order
func (c *Catalog) Entries() (entries []Entry) {
	entries = make([]Entry, len(c.entries))
	for i, e := range c.entries {
		e.Axes = append([]types.Axis{}, e.Axes...)
		entries[i] = e
	}
	return
}

func (c *Catalog) Names(category types.Category) (names []string) {
	for _, e := range c.entries {
		if e.Category == category {
			names = append(names, e.Name)
		}
	}
	return
}

// GroupEntries lists the integral entries stored in one table, in column order
func (c *Catalog) GroupEntries(group string) (entries []Entry) {
	for _, e := range c.entries {
		if e.Category == types.Integral && e.Group == group {
			entries = append(entries, e)
		}
	}
	return
}

// Groups lists the integral table keys in catalog order
func (c *Catalog) Groups() (groups []string) {
	seen := make(map[string]bool)
	for _, e := range c.entries {
		if e.Category == types.Integral && !seen[e.Group] {
			seen[e.Group] = true
			groups = append(groups, e.Group)
		}
	}
	return
}
