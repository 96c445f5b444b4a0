package utils

import (
	"fmt"
	"sort"
)

type Index []int

func NewRange(rmin, rmax int) (r Index) {
	var (
		size = rmax - rmin + 1 // INCLUSIVE RANGE
	)
	if size < 0 {
		size = 0
	}
	r = make(Index, size)
	for i := range r {
		r[i] = i + rmin
	}
	return
}

func (I Index) Add(val int) (r Index) {
	r = make(Index, len(I))
	for i, ival := range I {
		r[i] = val + ival
	}
	return r
}

// ApplyErr maps every entry through f, the first failure aborts the mapping
func (I Index) ApplyErr(f func(val int) (int, error)) (r Index, err error) {
	r = make(Index, len(I))
	for i, val := range I {
		if r[i], err = f(val); err != nil {
			return nil, err
		}
	}
	return
}

func (I Index) Sorted() (r Index) {
	r = make(Index, len(I))
	copy(r, I)
	sort.Ints(r)
	return
}

// CheckBounds verifies that every entry lies in [0, max)
func (I Index) CheckBounds(max int) (err error) {
	for _, val := range I {
		switch {
		case val < 0:
			err = fmt.Errorf("index < 0: %d", val)
			return
		case val > max-1:
			err = fmt.Errorf("index > max: %d, max = %d", val, max-1)
			return
		}
	}
	return
}
