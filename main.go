package main

import (
	"ticketooz/cmd"

	_ "go.uber.org/automaxprocs"
)

func main() {
	cmd.Start()
}
