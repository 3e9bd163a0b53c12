package main

import "github.com/strrl/model-exploder/internal/cmd"

func main() {
	cmd.Execute()
}
