package main

import "github.com/autolab-dev/uia-runner/pkg/cli"

func main() {
	cli.Execute()
}
