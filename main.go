package main

import "github.com/xvierd/striktflow/cmd"

func main() {
	cmd.Execute()
}
