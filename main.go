package main

import "github.com/mouse-blink/covmerge/cmd"

func main() {
	cmd.Execute()
}
