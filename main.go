package main

import "github.com/veldt-labs/cropsight/cmd"

func main() {
	cmd.Execute()
}
