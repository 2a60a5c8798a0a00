package main

import "github.com/quocvuong92/dappier-go/cmd"

func main() {
	cmd.Execute()
}
