// Command test_vectors writes the seeded vectors under testdata/.
//
// Results are computed with gnark-crypto's multi exponentiation, so the
// vectors do not depend on the MSM engine they are used to test.
// Run it from the repository root.
package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	gomsm "github.com/crate-crypto/go-msm"
	"github.com/crate-crypto/go-msm/internal/multiexp"
	"gopkg.in/yaml.v2"
)

type seededCase struct {
	Input struct {
		Size int    `yaml:"size"`
		Seed uint64 `yaml:"seed"`
	} `yaml:"input"`
	Output string `yaml:"output"`
}

type msmCase struct {
	Input struct {
		Collection string `yaml:"collection"`
	} `yaml:"input"`
	Output struct {
		Results []string `yaml:"results"`
		Hash    string   `yaml:"hash"`
	} `yaml:"output"`
}

func main() {
	ctx, err := gomsm.NewContext(gomsm.DefaultConfig())
	if err != nil {
		panic(err)
	}

	for _, params := range []struct {
		size int
		seed uint64
	}{{1, 0}, {3, 7}, {4, 1}} {
		inst, err := ctx.GenerateInstanceSeeded(params.size, params.seed)
		if err != nil {
			panic(err)
		}
		coll := gomsm.InstanceCollection{inst}

		var seeded seededCase
		seeded.Input.Size = params.size
		seeded.Input.Seed = params.seed
		seeded.Output = toHex(gomsm.SerializeInstances(coll))
		name := fmt.Sprintf("size_%d_seed_%d", params.size, params.seed)
		save(seeded, filepath.Join("testdata", "generate_seeded", name, "data.yaml"))

		msm, err := msmVector(coll)
		if err != nil {
			panic(err)
		}
		name = fmt.Sprintf("seeded_size_%d_seed_%d", params.size, params.seed)
		save(msm, filepath.Join("testdata", "compute_msm", "valid", name, "data.yaml"))
	}
}

func msmVector(coll gomsm.InstanceCollection) (msmCase, error) {
	var vector msmCase
	vector.Input.Collection = toHex(gomsm.SerializeInstances(coll))
	for _, inst := range coll {
		result, err := multiexp.MultiExp(inst.Scalars, inst.Points, 0)
		if err != nil {
			return msmCase{}, err
		}
		vector.Output.Results = append(vector.Output.Results, toHex(serializePoint(result)))
	}
	hash := gomsm.HashInstances(coll)
	vector.Output.Hash = toHex(hash[:])
	return vector, nil
}

func serializePoint(p *bls12381.G1Affine) []byte {
	serPoint := p.Bytes()
	return serPoint[:]
}

func toHex(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}

func save(data interface{}, path string) {
	file, err := yaml.Marshal(data)
	if err != nil {
		panic(err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		panic(err)
	}
	if err := os.WriteFile(path, file, 0o644); err != nil {
		panic(err)
	}
}
