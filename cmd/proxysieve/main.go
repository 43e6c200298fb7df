package main

import (
	"github.com/mattfenwick/proxysieve/pkg/cli"
)

func main() {
	cli.RunRootCommand()
}
