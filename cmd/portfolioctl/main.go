package main

import (
	"fmt"
	"os"

	"portfolio/cmd/portfolioctl/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
