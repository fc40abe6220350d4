package main

import "github.com/cratedig/cratedig/cmd"

func main() {
	cmd.Execute()
}
