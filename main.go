package main

import "github.com/timvw/pane-remote/cmd"

func main() {
	cmd.Execute()
}
