package main

import "github.com/brogergvhs/mangascraper/cmd"

func main() {
	cmd.Execute()
}
