package gomsm_test

import (
	"fmt"
	"testing"

	gomsm "github.com/crate-crypto/go-msm"
)

func BenchmarkComputeMSMOpt(b *testing.B) {
	for logSize := 8; logSize <= 14; logSize++ {
		size := 1 << logSize
		inst, err := ctx.GenerateInstanceSeeded(size, uint64(logSize))
		if err != nil {
			b.Fatal(err)
		}

		b.Run(fmt.Sprintf("size=2^%d", logSize), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for n := 0; n < b.N; n++ {
				if _, err := ctx.ComputeMSMOpt(inst); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkComputeMSM(b *testing.B) {
	for _, logSize := range []int{8, 10} {
		size := 1 << logSize
		inst, err := ctx.GenerateInstanceSeeded(size, uint64(logSize))
		if err != nil {
			b.Fatal(err)
		}

		b.Run(fmt.Sprintf("size=2^%d", logSize), func(b *testing.B) {
			for n := 0; n < b.N; n++ {
				if _, err := ctx.ComputeMSM(inst.Points, inst.Scalars); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkDeserializeInstances(b *testing.B) {
	coll := make(gomsm.InstanceCollection, 0, 4)
	for i := 0; i < 4; i++ {
		inst, err := ctx.GenerateInstanceSeeded(1<<10, uint64(i))
		if err != nil {
			b.Fatal(err)
		}
		coll = append(coll, inst)
	}
	buf := gomsm.SerializeInstances(coll)

	b.SetBytes(int64(len(buf)))
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		if _, err := gomsm.DeserializeInstances(buf); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGenerateInstance(b *testing.B) {
	for _, size := range []int{1 << 8, 1 << 12} {
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			for n := 0; n < b.N; n++ {
				if _, err := ctx.GenerateInstance(size); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
