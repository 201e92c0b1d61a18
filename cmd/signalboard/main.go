package main

import (
	"signalboard/internal/cli"
)

func main() {
	cli.Execute()
}
