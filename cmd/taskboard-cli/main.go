package main

import "github.com/nfrund/taskboard/cmd/taskboard-cli/cmd"

func main() {
	cmd.Execute()
}
