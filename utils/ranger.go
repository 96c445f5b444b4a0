package utils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/notargets/goreactor/types"
)

type SelectionKind uint8

const (
	SelectAll SelectionKind = iota
	SelectIndex
	SelectList
	SelectRange
	SelectLast
)

/*
Selection picks entries along one axis of an NDArray.
A scalar selection (At, Last) removes the axis from the result, the others keep it, even when
they pick a single entry.
*/
type Selection struct {
	Kind    SelectionKind
	Indices Index
	Lo, Hi  int // Range only, Hi is exclusive and Hi < 0 runs to the end of the axis
}

func All() Selection          { return Selection{Kind: SelectAll} }
func At(i int) Selection      { return Selection{Kind: SelectIndex, Indices: Index{i}} }
func Last() Selection         { return Selection{Kind: SelectLast} }
func List(I ...int) Selection { return Selection{Kind: SelectList, Indices: append(Index{}, I...)} }

func Range(lo, hi int) Selection {
	return Selection{Kind: SelectRange, Lo: lo, Hi: hi}
}

func (s Selection) IsScalar() bool {
	return s.Kind == SelectIndex || s.Kind == SelectLast
}

// Resolve turns the selection into explicit zero based indices for an axis of length max
func (s Selection) Resolve(max int) (I Index, err error) {
	switch s.Kind {
	case SelectAll:
		I = NewRange(0, max-1)
	case SelectLast:
		I = Index{max - 1}
	case SelectIndex, SelectList:
		I = append(Index{}, s.Indices...)
	case SelectRange:
		hi := s.Hi
		if hi < 0 {
			hi = max
		}
		I = NewRange(s.Lo, hi-1)
	}
	if len(I) == 0 {
		err = fmt.Errorf("empty selection on axis of length %d: %w", max, types.ErrDimensionMismatch)
		return
	}
	if err = I.CheckBounds(max); err != nil {
		err = fmt.Errorf("%v: %w", err, types.ErrDimensionMismatch)
	}
	return
}

// Offset shifts every explicit index by delta; All and Last are position free and unchanged
func (s Selection) Offset(delta int) (r Selection) {
	r = s
	switch s.Kind {
	case SelectIndex, SelectList:
		r.Indices = s.Indices.Add(delta)
	case SelectRange:
		r.Lo = s.Lo + delta
		if s.Hi >= 0 {
			r.Hi = s.Hi + delta
		}
	}
	return
}

// Map relabels explicit indices one by one. Ranges are expanded to lists first since a
// relabelling is not generally monotone.
func (s Selection) Map(f func(val int) (int, error)) (r Selection, err error) {
	r = s
	switch s.Kind {
	case SelectIndex, SelectList:
		r.Indices, err = s.Indices.ApplyErr(f)
	case SelectRange:
		if s.Hi < 0 {
			err = fmt.Errorf("open range %d: cannot be relabelled: %w", s.Lo, types.ErrDimensionMismatch)
			return
		}
		r = List(NewRange(s.Lo, s.Hi-1)...)
		r.Indices, err = r.Indices.ApplyErr(f)
	}
	return
}

func (s Selection) String() string {
	switch s.Kind {
	case SelectAll:
		return ":"
	case SelectLast:
		return "end"
	case SelectIndex:
		return strconv.Itoa(s.Indices[0])
	case SelectRange:
		if s.Hi < 0 {
			return fmt.Sprintf("%d:", s.Lo)
		}
		return fmt.Sprintf("%d:%d", s.Lo, s.Hi)
	}
	parts := make([]string, len(s.Indices))
	for i, val := range s.Indices {
		parts[i] = strconv.Itoa(val)
	}
	return strings.Join(parts, ",")
}

func ParseSelection(dim string) (s Selection, err error) {
	/*
		Converts phrases including:
			":"    = full range
			"end"  = last index, scalar
			"N"    = single index, scalar
			"2:N"  = range, from 2 to N (loop indexing)
			":N"   = range, from 0 to N (loop indexing)
			"N:"   = range, from N to the end
			"1,4,7" = explicit list
	*/
	dim = strings.TrimSpace(dim)
	switch {
	case dim == "" || dim == ":" || strings.EqualFold(dim, "all"):
		s = All()
	case dim == "end":
		s = Last()
	case strings.Contains(dim, ","):
		var I Index
		for _, tok := range strings.Split(dim, ",") {
			var val int
			if val, err = strconv.Atoi(strings.TrimSpace(tok)); err != nil {
				err = fmt.Errorf("bad index list [%s]: %w", dim, types.ErrConfig)
				return
			}
			I = append(I, val)
		}
		s = List(I...)
	case strings.Contains(dim, ":"):
		s, err = parseRange(dim)
	default:
		var val int
		if val, err = strconv.Atoi(dim); err != nil {
			err = fmt.Errorf("bad index [%s]: %w", dim, types.ErrConfig)
			return
		}
		s = At(val)
	}
	return
}

func parseRange(dim string) (s Selection, err error) {
	var (
		splits = strings.SplitN(dim, ":", 2)
		lo, hi = 0, -1
	)
	if tok := strings.TrimSpace(splits[0]); tok != "" {
		if lo, err = strconv.Atoi(tok); err != nil {
			err = fmt.Errorf("bad range [%s]: %w", dim, types.ErrConfig)
			return
		}
	}
	if tok := strings.TrimSpace(splits[1]); tok != "" {
		if hi, err = strconv.Atoi(tok); err != nil {
			err = fmt.Errorf("bad range [%s]: %w", dim, types.ErrConfig)
			return
		}
		if hi == lo {
			hi = lo + 1
		}
	}
	s = Range(lo, hi)
	return
}
