package main

import (
	signupcmd "github.com/jskinn96/signup/cmd"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	signupcmd.SetVersionInfo(version, commit)
	signupcmd.Execute()
}
