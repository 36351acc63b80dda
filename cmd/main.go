package main

import cmd "github.com/readshelf/readshelf/cmd/readshelf"

func main() {
	cmd.Execute()
}
