package cli

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/autolab-dev/uia-runner/pkg/provider/bridge"
	"github.com/autolab-dev/uia-runner/pkg/provider/snapshot"
)

var inspectCommand = &cli.Command{
	Name:  "inspect",
	Usage: "Fetch and print the current UI tree from the bridge",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "app",
			Usage: "Application binary to launch",
		},
		&cli.StringFlag{
			Name:  "attach",
			Usage: "Attach to a running window by (partial) title",
		},
		&cli.BoolFlag{
			Name:  "raw",
			Usage: "Print the raw snapshot XML instead of the indented tree",
		},
	},
	Action: runInspect,
}

func runInspect(c *cli.Context) error {
	if c.String("app") == "" && c.String("attach") == "" {
		return cli.Exit("either --app or --attach is required", 1)
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	client := bridge.NewClient(cfg.BridgeURL)
	caps := bridge.Capabilities{
		Application: c.String("app"),
		AttachTitle: c.String("attach"),
	}
	if err := client.CreateSession(c.Context, caps); err != nil {
		return err
	}
	defer client.Close()

	xmlData, err := client.Hierarchy(c.Context)
	if err != nil {
		return err
	}

	if c.Bool("raw") {
		fmt.Println(xmlData)
		return nil
	}

	root, err := snapshot.Parse(xmlData)
	if err != nil {
		return err
	}
	printTree(root)
	return nil
}

func printTree(el *snapshot.Element) {
	fmt.Printf("%s%s\n", strings.Repeat("  ", el.Depth), el)
	for _, child := range el.Children {
		printTree(child)
	}
}
