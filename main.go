package main

import "github.com/jnsgruk/dashprep/cmd"

func main() {
	cmd.Execute()
}
