package main

import "github.com/goplus/pasys/cmd/pasys/internal"

func main() {
	internal.Execute()
}
