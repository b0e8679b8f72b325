package main

import (
	"github.com/rguerillot/CrossAnnotate/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
