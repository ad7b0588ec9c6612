package main

import "github.com/mediatrove/linkimport/cmd"

func main() {
	cmd.Execute()
}
