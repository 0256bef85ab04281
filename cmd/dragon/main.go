/*
File    : dragon/cmd/dragon/main.go
Author  : yukatan1701
Contact : yukatan1701(@github.com)
*/
package main

import (
	"os"

	"github.com/yukatan1701/dragon/cmd/dragon/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
