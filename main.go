package main

import "taskdeck.app/taskdeck/cmd"

func main() {
	cmd.Execute()
}
