package main

import "github.com/chrisdamba/menusight/cmd"

func main() {
	cmd.Execute()
}
