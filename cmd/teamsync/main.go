package main

import "teamsync/internal/cmd"

func main() {
	cmd.Execute()
}
