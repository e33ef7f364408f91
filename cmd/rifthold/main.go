package main

import "github.com/bryanchriswhite/rifthold/cmd/rifthold/commands"

func main() {
	commands.Execute()
}
