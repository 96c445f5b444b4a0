package utils

import (
	"fmt"
	"math"
	"runtime"
)

// NODETOL is the distance below which two coordinates are the same
const NODETOL = 1.e-12

func GetMemUsage() string {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	// For info on each, see: https://golang.org/pkg/runtime/#MemStats
	bToMb := func(b uint64) uint64 {
		return b / 1024 / 1024
	}
	return fmt.Sprintf("Alloc = %v MiB TotalAlloc = %v MiB Sys = %v MiB NumGC = %v",
		bToMb(m.Alloc), bToMb(m.TotalAlloc), bToMb(m.Sys), m.NumGC)
}

// CountNaN reports how many entries of a float slice, Matrix or NDArray are NaN
func CountNaN(A any) (count int) {
	switch v := A.(type) {
	case float64:
		if math.IsNaN(v) {
			count = 1
		}
	case []float64:
		for _, f := range v {
			if math.IsNaN(f) {
				count++
			}
		}
	case Matrix:
		nr, nc := v.Dims()
		for i := 0; i < nr; i++ {
			for j := 0; j < nc; j++ {
				if math.IsNaN(v.At(i, j)) {
					count++
				}
			}
		}
	case NDArray:
		count = CountNaN(v.Data)
	}
	return
}
