package gomsm_test

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	gomsm "github.com/crate-crypto/go-msm"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestWriteReadInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "instances.bin")

	coll, err := ctx.GenerateInstances(2, 3)
	require.NoError(t, err)
	require.NoError(t, ctx.WriteInstances(path, coll))

	got, err := ctx.ReadInstances(path)
	require.NoError(t, err)
	require.True(t, coll.Equal(got))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, gomsm.SerializeInstances(coll), data)
}

func TestReadInstancesMissingFile(t *testing.T) {
	_, err := ctx.ReadInstances(filepath.Join(t.TempDir(), "missing.bin"))
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestReadInstancesMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "instances.bin")
	require.NoError(t, os.WriteFile(path, []byte{1, 2, 3}, 0o644))

	_, err := ctx.ReadInstances(path)
	require.ErrorIs(t, err, gomsm.ErrMalformedInput)
}

func TestAppendInstance(t *testing.T) {
	path := filepath.Join(t.TempDir(), "instances.bin")

	a, err := ctx.GenerateInstanceSeeded(2, 1)
	require.NoError(t, err)
	b, err := ctx.GenerateInstanceSeeded(5, 2)
	require.NoError(t, err)

	require.NoError(t, ctx.AppendInstance(path, a))
	require.NoError(t, ctx.AppendInstance(path, b))

	got, err := ctx.ReadInstances(path)
	require.NoError(t, err)
	require.True(t, gomsm.InstanceCollection{a, b}.Equal(got))

	err = ctx.AppendInstance(path, gomsm.Instance{})
	require.ErrorIs(t, err, gomsm.ErrInvalidInstance)
}

func TestReadOrGenerateInstances(t *testing.T) {
	var logs bytes.Buffer
	c, err := gomsm.NewContext(gomsm.Config{Logger: zerolog.New(&logs)})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "instances.bin")

	generated, err := c.ReadOrGenerateInstances(path, 2, 4)
	require.NoError(t, err)
	require.Len(t, generated, 2)
	require.Contains(t, logs.String(), "no cached instances")

	// Second call hits the file
	cached, err := c.ReadOrGenerateInstances(path, 2, 4)
	require.NoError(t, err)
	require.True(t, generated.Equal(cached))
	require.Contains(t, logs.String(), "using cached instances")

	// A different shape regenerates and overwrites the file
	regenerated, err := c.ReadOrGenerateInstances(path, 1, 8)
	require.NoError(t, err)
	require.Len(t, regenerated, 1)
	require.Equal(t, 8, regenerated[0].Len())
	require.Contains(t, logs.String(), "wrong shape")

	onDisk, err := c.ReadInstances(path)
	require.NoError(t, err)
	require.True(t, regenerated.Equal(onDisk))
}

func TestReadOrGenerateInstancesMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "instances.bin")
	require.NoError(t, os.WriteFile(path, []byte("not an instance file"), 0o644))

	coll, err := ctx.ReadOrGenerateInstances(path, 1, 2)
	require.NoError(t, err)
	require.Len(t, coll, 1)

	onDisk, err := ctx.ReadInstances(path)
	require.NoError(t, err)
	require.True(t, coll.Equal(onDisk))
}

func TestReadOrGenerateInstancesInvalidSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "instances.bin")

	_, err := ctx.ReadOrGenerateInstances(path, 1, 0)
	require.ErrorIs(t, err, gomsm.ErrInvalidSize)

	_, err = os.Stat(path)
	require.ErrorIs(t, err, fs.ErrNotExist)
}
