package main

import "github.com/nfrund/joinform/cmd/joinform-cli/cmd"

func main() {
	cmd.Execute()
}
