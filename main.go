package main

import "github.com/vibast-solutions/ms-go-services/cmd"

func main() {
	cmd.Execute()
}
