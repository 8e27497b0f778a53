package main

import "github.com/makeadle/dle-service/cmd/dle/root"

func main() {
	root.Execute()
}
