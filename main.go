package main

import "github.com/vathanak/portfolio/cmd"

func main() {
	cmd.Execute()
}
