package main

import "github.com/Qovery/remora/cmd"

func main() {
	cmd.Execute()
}
