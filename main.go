package main

import "github.com/rlowe/croon/cmd"

func main() {
	cmd.Execute()
}
