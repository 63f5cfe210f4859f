package main

import "github.com/ansidocs/ansidocs/cmd"

func main() {
	cmd.Execute()
}
