package main

import "github.com/diogo/chatboot/internal/commands"

func main() {
	commands.Execute()
}
