package main

import "github.com/virus-evolution/gomotif/cmd"

func main() {
	cmd.Execute()
}
