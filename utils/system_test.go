package utils

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSystem(t *testing.T) {
	nan := math.NaN()
	assert.Equal(t, 0, CountNaN(1.))
	assert.Equal(t, 1, CountNaN(nan))
	assert.Equal(t, 2, CountNaN([]float64{nan, 1, nan}))
	assert.Equal(t, 1, CountNaN(NewMatrix(2, 2, []float64{0, nan, 1, 2})))
	assert.Equal(t, 1, CountNaN(NewNDArray([]int{1, 2}, []float64{nan, 3})))
	assert.Equal(t, 0, CountNaN("not numeric"))
	assert.True(t, strings.HasPrefix(GetMemUsage(), "Alloc = "))
}
