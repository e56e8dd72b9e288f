package main

import "confreplace/cmd/confreplace/commands"

func main() {
	commands.Execute()
}
