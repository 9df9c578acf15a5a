package main

import (
	"os"

	"github.com/Lumos-Labs-HQ/officefaker/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
