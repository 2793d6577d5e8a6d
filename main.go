package main

import "github.com/reformtrack/reform-management/cmd"

func main() {
	cmd.Execute()
}
