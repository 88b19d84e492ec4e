package main

import (
	cmd "github.com/pyrosense/sentinel/cmd/sentinel"
)

func main() {
	cmd.Execute()
}
