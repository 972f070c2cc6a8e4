package main

import "github.com/haneul-labs/daily-record/cmd"

func main() {
	cmd.Execute()
}
