package main

import (
	"github.com/NVIDIA/hostid/pkg/cli"
)

func main() {
	cli.Execute()
}
