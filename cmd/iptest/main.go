package main

import (
	"os"

	"github.com/hamed0406/iptest/internal/client"
)

func main() {
	os.Exit(client.Run(os.Args[1:], os.Stdout, os.Stderr))
}
