package main

import (
	"os"

	"github.com/tushargaudara/Anima-Engine/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
