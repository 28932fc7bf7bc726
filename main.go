package main

import (
	"github.com/pokemcp/pokemcp/cmd"
)

func main() {
	cmd.Execute()
}
