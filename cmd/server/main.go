package main

import "training-center/internal/cli"

func main() {
	cli.Execute()
}
