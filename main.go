package main

import "github.com/pastforward-labs/pastforward/cmd"

func main() {
	cmd.Execute()
}
