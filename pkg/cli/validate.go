package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/autolab-dev/uia-runner/pkg/repository"
)

var validateCommand = &cli.Command{
	Name:      "validate",
	Usage:     "Validate locator repository files",
	ArgsUsage: "FILE...",
	Action:    runValidate,
}

func runValidate(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("no repository files given", 1)
	}

	failed := false
	for _, path := range c.Args().Slice() {
		result := repository.Validate(path)
		if result.IsValid() {
			fmt.Printf("%s: %d locator(s) OK\n", path, len(result.Names))
			continue
		}
		failed = true
		for _, err := range result.Errors {
			fmt.Printf("%v\n", err)
		}
	}

	if failed {
		return cli.Exit("validation failed", 1)
	}
	return nil
}
