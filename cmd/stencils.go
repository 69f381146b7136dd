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
	"os"

	"github.com/spf13/cobra"

	"github.com/notargets/gridbc/stencil"
)

// StencilsCmd represents the stencils command
var StencilsCmd = &cobra.Command{
	Use:   "stencils [name...]",
	Short: "List the named stencils or print a stencil's direction table",
	Long: `
Lists the built in neighborhood stencils with their direction counts and
reach, or prints the full direction table of the named stencils,

gridbc stencils
gridbc stencils D3Q19`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			listStencils()
			return
		}
		for _, name := range args {
			if err := printStencil(name); err != nil {
				fmt.Printf("error: %s\n", err.Error())
				os.Exit(1)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(StencilsCmd)
}

func listStencils() {
	fmt.Printf("%-8s %4s %6s\n", "name", "Q", "reach")
	for _, name := range stencil.Names() {
		st, err := stencil.New(name)
		if err != nil {
			panic(err)
		}
		fmt.Printf("%-8s %4d %6d\n", st.Name, st.Q(), st.MaxOffset())
	}
}

func printStencil(name string) (err error) {
	var (
		st stencil.Stencil
	)
	if st, err = stencil.New(name); err != nil {
		return
	}
	fmt.Printf("%s: %dD, %d directions\n", st.Name, st.Dim, st.Q())
	for i, off := range st.Offsets {
		inv, _ := st.Inverse(i)
		if st.Dim == 2 {
			fmt.Printf("%4d %-3s [%2d %2d]    inverse %d\n", i, st.DirectionName(i), off[0], off[1], inv)
		} else {
			fmt.Printf("%4d %-3s [%2d %2d %2d] inverse %d\n", i, st.DirectionName(i), off[0], off[1], off[2], inv)
		}
	}
	return
}
