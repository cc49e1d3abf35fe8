package main

import "github.com/doriginvision/hanzi-tidy/internal/cmd"

func main() {
	cmd.Execute()
}
