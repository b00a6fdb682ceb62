package main

import (
	"fmt"
	"log"
	"os"

	"github.com/viant/tagmeta"
	"github.com/viant/tagmeta/cmd"
)

type ConsoleWriter struct{}

func (c *ConsoleWriter) Write(data []byte) (n int, err error) {
	fmt.Print(string(data))
	return len(data), nil
}

func main() {
	if err := cmd.RunApp(tagmeta.Version, os.Args[1:], &ConsoleWriter{}); err != nil {
		fmt.Printf("ERROR: %v\n", err)
		log.Fatal(err)
	}
}
