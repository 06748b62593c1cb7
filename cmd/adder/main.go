package main

import "github.com/analogrelay/go-adder/cmd/adder/cmd"

func main() {
	cmd.Execute()
}
