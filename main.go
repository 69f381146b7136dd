package main

import (
	"github.com/notargets/gridbc/cmd"
)

func main() {
	cmd.Execute()
}
