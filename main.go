package main

import (
	"github.com/burgertron6/Guilded-NET.github.io/cmd"
)

func main() {
	cmd.Execute()
}
