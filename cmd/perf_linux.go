//go:build linux
// +build linux

/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"

	perf "github.com/hodgesds/perf-utils"
)

// measureBuild runs the build twice under hardware counters, once counting
// retired instructions and once counting cycles. Builds are deterministic,
// so both runs do the same work.
func measureBuild(build func() error) (err error) {
	var (
		instructions, cycles *perf.ProfileValue
	)
	if instructions, err = perf.CPUInstructions(build); err != nil {
		return fmt.Errorf("measuring CPU instructions: %s", err)
	}
	if cycles, err = perf.CPUCycles(build); err != nil {
		return fmt.Errorf("measuring CPU cycles: %s", err)
	}
	fmt.Printf("perf: %d instructions, %d cycles\n", instructions.Value, cycles.Value)
	return
}
