package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/autolab-dev/uia-runner/pkg/provider/snapshot"
	"github.com/autolab-dev/uia-runner/pkg/resolver"
)

var resolveCommand = &cli.Command{
	Name:      "resolve",
	Usage:     "Resolve locators against a snapshot XML file",
	ArgsUsage: "LOCATOR...",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "snapshot",
			Aliases:  []string{"s"},
			Usage:    "Snapshot XML file to resolve against",
			Required: true,
		},
		&cli.BoolFlag{
			Name:    "all",
			Aliases: []string{"a"},
			Usage:   "Print all matches of the final segment",
		},
	},
	Action: runResolve,
}

func runResolve(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("no locators given", 1)
	}

	root, err := snapshot.ParseFile(c.String("snapshot"))
	if err != nil {
		return err
	}

	res := resolver.New(snapshot.NewProvider())

	failed := false
	for _, loc := range c.Args().Slice() {
		if c.Bool("all") {
			matches, err := res.ResolveAll(c.Context, root, loc)
			if err != nil {
				fmt.Printf("%s\n  error: %v\n", loc, err)
				failed = true
				continue
			}
			fmt.Printf("%s: %d match(es)\n", loc, len(matches))
			for _, el := range matches {
				fmt.Printf("  %s\n", el.(*snapshot.Element))
			}
			continue
		}

		el, err := res.Resolve(c.Context, root, loc)
		if err != nil {
			fmt.Printf("%s\n  error: %v\n", loc, err)
			failed = true
			continue
		}
		fmt.Printf("%s\n  %s\n", loc, el.(*snapshot.Element))
	}

	if failed {
		return cli.Exit("", 1)
	}
	return nil
}
