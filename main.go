package main

import "github.com/Rorical/ezframe/cmd"

func main() {
	cmd.Execute()
}
