package main

import "sigx-cli/cmd"

func main() {
	cmd.Execute()
}
