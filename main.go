package main

import "github.com/notargets/goreactor/cmd"

func main() {
	cmd.Execute()
}
