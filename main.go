package main

import "github.com/progit1914/TranscriptionSaaS-App/cmd"

func main() {
	cmd.Execute()
}
