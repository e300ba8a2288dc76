package main

import "github.com/Tiliavir/toggle-timeclock/cmd"

func main() {
	cmd.Execute()
}
