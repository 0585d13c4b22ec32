package gomsm_test

import (
	"fmt"

	gomsm "github.com/crate-crypto/go-msm"
)

func Example() {
	ctx, err := gomsm.NewContext(gomsm.DefaultConfig())
	if err != nil {
		panic(err)
	}

	inst, err := ctx.GenerateInstanceSeeded(16, 42)
	if err != nil {
		panic(err)
	}

	// Round trip through the instance file format
	coll, err := gomsm.DeserializeInstances(gomsm.SerializeInstances(gomsm.InstanceCollection{inst}))
	if err != nil {
		panic(err)
	}

	naive, err := ctx.ComputeMSM(coll[0].Points, coll[0].Scalars)
	if err != nil {
		panic(err)
	}
	opt, err := ctx.ComputeMSMOpt(coll[0])
	if err != nil {
		panic(err)
	}

	fmt.Println(naive.Equal(&opt))
	// Output: true
}
