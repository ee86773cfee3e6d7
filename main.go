package main

import "github.com/reposniff/reposniff/cmd"

func main() {
	cmd.Execute()
}
