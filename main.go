package main

import "github.com/gramtools/gramtools/cmd"

func main() {
	cmd.Execute()
}
