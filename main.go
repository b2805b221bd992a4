package main

import "github.com/arlogray/coverage-router/cmd"

func main() {
	cmd.Execute()
}
