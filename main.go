package main

import "github.com/dcampelo/permit-management/cmd"

func main() {
	cmd.Execute()
}
