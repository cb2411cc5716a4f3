package main

import "github.com/uefn-tools/versedb/cmd"

func main() {
	cmd.Execute()
}
