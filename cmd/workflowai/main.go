package main

import "workflowai/internal/cli"

func main() {
	cli.Execute()
}
