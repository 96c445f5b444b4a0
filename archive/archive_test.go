package archive

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/notargets/goreactor/types"
	"github.com/notargets/goreactor/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchive(t *testing.T) {
	var (
		dir      = t.TempDir()
		filename = Path(dir, types.NE)
		table    = utils.NewNDArray([]int{3, 2}, []float64{0, 1, 0.5, 2, 1, 3})
		cube     = utils.NewNDArray([]int{2, 1, 3})
	)
	for i := range cube.Data {
		cube.Data[i] = float64(i)
	}
	assert.Equal(t, "output_NE.h5", ArchiveName(types.NE))
	assert.Equal(t, filepath.Join(dir, "output_TH.h5"), Path(dir, types.TH))
	{ // Write a table and a distribution sharing no group
		w, err := Create(filename)
		require.NoError(t, err)
		require.NoError(t, w.WriteDataset("integralParameters/power", table))
		require.NoError(t, w.WriteDataset("/distributions/powertot", cube))
		require.NoError(t, w.WriteDataset("distributions/pfiss", cube))
		assert.True(t, errors.Is(w.WriteDataset("", cube), types.ErrConfig))
		require.NoError(t, w.Close())
	}
	{ // Read them back with their logical shapes
		f, err := Open(filename)
		require.NoError(t, err)
		defer f.Close()
		A, err := f.Dataset("integralParameters/power")
		require.NoError(t, err)
		assert.Equal(t, []int{3, 2}, A.Shape)
		assert.Equal(t, table.Data, A.Data)
		A, err = f.Dataset("distributions/pfiss")
		require.NoError(t, err)
		assert.Equal(t, []int{2, 1, 3}, A.Shape)
		assert.Equal(t, 4., A.At(1, 0, 1))

		_, err = f.Dataset("distributions/doesnotexist")
		assert.True(t, errors.Is(err, types.ErrQuantityNotFound))
		_, err = f.Dataset("integralParameters/flux")
		assert.True(t, errors.Is(err, types.ErrNotFound))
	}
	{ // Missing archives are reported as such
		_, err := Open(Path(dir, types.TH))
		assert.True(t, errors.Is(err, types.ErrArchiveMissing))
		_, err = OpenSource(Path(dir, types.TH))
		assert.True(t, errors.Is(err, types.ErrMissingFile))
	}
}
