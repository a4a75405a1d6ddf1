package sturdio

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sturdio/sturdio/binfile"
	"github.com/sturdio/sturdio/config"
)

func TestOpen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, EnsurePathExists(dir))
	require.NoError(t, EnsurePathExists(dir))

	data := binary.LittleEndian.AppendUint16(nil, 7)
	data = binary.LittleEndian.AppendUint16(data, 9)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "s.bin"), data, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.yaml"), []byte("gains: [1, 2, 3]\n"), 0o644))

	f, err := OpenBinary("s.bin", dir)
	require.NoError(t, err)
	vs, err := binfile.ReadSlice[uint16](f, 2)
	require.NoError(t, err)
	assert.Equal(t, []uint16{7, 9}, vs)
	require.NoError(t, f.Close())

	p, err := OpenYaml("c.yaml", dir)
	require.NoError(t, err)
	assert.True(t, p.Exists("gains"))
	gains, err := config.Get[[]float64](p, "gains")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, gains)

	assert.Equal(t, "1.0.0", Version)
}
