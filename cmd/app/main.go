package main

import (
	"fmt"
	"os"

	"laundry/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "laundry:", err)
		os.Exit(1)
	}
}
