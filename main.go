package main

import "github.com/weftdev/weft/cmd"

func main() {
	cmd.Execute()
}
