package main

import "github.com/MeKo-Tech/vectra/cmd/vectra/cmd"

func main() {
	cmd.Execute()
}
