package main

import "github.com/tbruckmaier/redsim/cmd"

func main() {
	cmd.Execute()
}
