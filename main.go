package main

import (
	"fmt"
	"os"

	"fjacquet/salesclean/cmd/analyze"
	"fjacquet/salesclean/cmd/clean"
	"fjacquet/salesclean/cmd/common"
	"fjacquet/salesclean/cmd/root"
)

func init() {
	root.Init()
	root.Cmd.AddCommand(clean.Cmd)
	root.Cmd.AddCommand(analyze.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(common.ExitCode(err))
	}
}
