package cli

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/autolab-dev/uia-runner/pkg/keyword"
	"github.com/autolab-dev/uia-runner/pkg/provider/bridge"
	"github.com/autolab-dev/uia-runner/pkg/repository"
	"github.com/autolab-dev/uia-runner/pkg/script"
	"github.com/autolab-dev/uia-runner/pkg/session"
)

var runCommand = &cli.Command{
	Name:      "run",
	Usage:     "Execute a YAML automation script through the bridge",
	ArgsUsage: "SCRIPT",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "app",
			Usage: "Application binary to launch",
		},
		&cli.StringFlag{
			Name:  "attach",
			Usage: "Attach to a running window by (partial) title",
		},
		&cli.StringFlag{
			Name:  "repository",
			Usage: "Locator repository file for @name references",
		},
	},
	Action: runRun,
}

func runRun(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("expected exactly one script file", 1)
	}
	if c.String("app") == "" && c.String("attach") == "" {
		return cli.Exit("either --app or --attach is required", 1)
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	scr, err := script.ParseFile(c.Args().First())
	if err != nil {
		return err
	}

	var repo *repository.Repository
	repoPath := c.String("repository")
	if repoPath == "" {
		repoPath = cfg.Repository
	}
	if repoPath != "" {
		repo, err = repository.Load(repoPath)
		if err != nil {
			return err
		}
	}

	client := bridge.NewClient(cfg.BridgeURL)
	caps := bridge.Capabilities{
		Application: c.String("app"),
		AttachTitle: c.String("attach"),
	}
	if err := client.CreateSession(c.Context, caps); err != nil {
		return err
	}

	window, err := client.ActiveWindow(c.Context)
	if err != nil {
		client.Close()
		return err
	}

	sess := session.New(client, client,
		session.WithPacing(cfg.Pacing()),
		session.WithWindow(window),
		session.WithCloser(client),
	)
	defer sess.Close()

	lib := keyword.New(sess, keyword.WithWaitTimeout(cfg.WaitTimeout()))
	runner := script.NewRunner(lib, repo)

	result, err := runner.Run(c.Context, scr)
	if err != nil {
		return err
	}

	passed := 0
	for _, sr := range result.Results {
		status := "PASS"
		if sr.Err != nil {
			status = "FAIL"
		} else {
			passed++
		}
		fmt.Printf("%s  %-40s %v\n", status, sr.Step.Describe(), sr.Duration.Round(time.Millisecond))
		if sr.Err != nil {
			fmt.Printf("      %v\n", sr.Err)
		}
	}
	fmt.Printf("%d/%d step(s) passed\n", passed, len(scr.Steps))

	if result.Failed {
		return cli.Exit("", 1)
	}
	return nil
}
