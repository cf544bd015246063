package main

import "github.com/quocvuong92/nova/cmd"

func main() {
	cmd.Execute()
}
