package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/autolab-dev/uia-runner/pkg/locator"
)

var parseCommand = &cli.Command{
	Name:      "parse",
	Usage:     "Parse locator strings and print their query structure",
	ArgsUsage: "LOCATOR...",
	Action:    runParse,
}

func runParse(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("no locators given", 1)
	}

	failed := false
	for _, loc := range c.Args().Slice() {
		q, err := locator.Parse(loc)
		if err != nil {
			fmt.Printf("%s\n  error: %v\n", loc, err)
			failed = true
			continue
		}
		fmt.Printf("%s\n", loc)
		depth := 1
		for cur := q; cur != nil; cur = cur.Next {
			for i := 0; i < depth; i++ {
				fmt.Print("  ")
			}
			fmt.Printf("%s: %s\n", cur.Kind, cur.Describe())
			depth++
		}
	}

	if failed {
		return cli.Exit("", 1)
	}
	return nil
}
