package main

import (
	"schedbot/cmd"
)

func main() {
	cmd.Execute()
}
