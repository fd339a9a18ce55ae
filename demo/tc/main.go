// Command tc measures triangle counting on the graphs listed after --graphs:
//
//	tc [flags] --graphs <path1> [<path2> ...]
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/intel/forTriangleBenchGo/Bench"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
)

func main() {
	if err := Bench.Execute(os.Args[1:], afero.NewOsFs(), os.Stdout); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
