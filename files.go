package gomsm

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/crate-crypto/go-msm/serialization"
)

// ReadInstances decodes the instance file at path.
func (c *Context) ReadInstances(path string) (InstanceCollection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	coll, err := DeserializeInstances(data)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	c.logger.Debug().Str("path", path).Int("instances", len(coll)).Msg("read instance file")
	return coll, nil
}

// WriteInstances encodes coll and writes it to path, replacing any existing file.
func (c *Context) WriteInstances(path string, coll InstanceCollection) error {
	data := SerializeInstances(coll)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}

	c.logger.Info().Str("path", path).Int("instances", len(coll)).Int("bytes", len(data)).Msg("wrote instance file")
	return nil
}

// AppendInstance adds inst to the end of the instance file at path,
// creating the file when it does not exist.
func (c *Context) AppendInstance(path string, inst Instance) error {
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	data, err = serialization.AppendInstance(data, inst)
	if err != nil {
		return fmt.Errorf("append to %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}

	c.logger.Debug().Str("path", path).Int("size", inst.Len()).Msg("appended instance")
	return nil
}

// ReadOrGenerateInstances returns the instances stored at path when they are
// count instances of size pairs each.
//
// Otherwise, including when the file is missing or cannot be decoded, new
// instances are generated and written to path.
func (c *Context) ReadOrGenerateInstances(path string, count, size int) (InstanceCollection, error) {
	coll, err := c.ReadInstances(path)
	switch {
	case err == nil && matchesShape(coll, count, size):
		c.logger.Info().Str("path", path).Int("count", count).Int("size", size).Msg("using cached instances")
		return coll, nil
	case err == nil:
		c.logger.Warn().Str("path", path).Int("count", count).Int("size", size).Msg("cached instances have the wrong shape, regenerating")
	case errors.Is(err, fs.ErrNotExist):
		c.logger.Info().Str("path", path).Msg("no cached instances, generating")
	case errors.Is(err, ErrMalformedInput):
		c.logger.Warn().Err(err).Str("path", path).Msg("cached instances are malformed, regenerating")
	default:
		return nil, err
	}

	coll, err = c.GenerateInstances(count, size)
	if err != nil {
		return nil, err
	}
	if err := c.WriteInstances(path, coll); err != nil {
		return nil, err
	}
	return coll, nil
}

func matchesShape(coll InstanceCollection, count, size int) bool {
	if len(coll) != count {
		return false
	}
	for i := range coll {
		if coll[i].Len() != size {
			return false
		}
	}
	return true
}
