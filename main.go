package main

import "filmpulse/cmd"

func main() {
	cmd.Execute()
}
