package main

import "github.com/mj1618/desktop-tree/cmd"

func main() {
	cmd.Execute()
}
