package main

import "github.com/taskwise-ai/taskwise/cmd"

func main() {
	cmd.Execute()
}
