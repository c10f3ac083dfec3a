package main

import "loot-manager/cmd"

func main() {
	cmd.Execute()
}
