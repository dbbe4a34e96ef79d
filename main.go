package main

import "sketchnotes/cmd"

func main() {
	cmd.Execute()
}
