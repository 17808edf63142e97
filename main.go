package main

import "github.com/hrtools/employee-directory/cmd"

func main() {
	cmd.Execute()
}
