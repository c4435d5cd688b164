package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/folio/internal"
	"github.com/starford/folio/internal/apperr"
	"github.com/starford/folio/internal/validate"
	pkgconfig "github.com/starford/folio/pkg/config"
)

func options(cmd *cli.Command) ([]internal.Option, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadOptional(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", apperr.ErrConfig, err)
	}
	// --root wins over the file.
	if root := cmd.String("root"); root != "" {
		cfg.Repo.Root = root
	}
	return []internal.Option{internal.WithConfig(cfg)}, nil
}

func migrate(ctx context.Context, cmd *cli.Command) error {
	opts, err := options(cmd)
	if err != nil {
		return err
	}
	return internal.RunMigrate(ctx, cmd.Bool("dry-run"), opts...)
}

func plan(ctx context.Context, cmd *cli.Command) error {
	opts, err := options(cmd)
	if err != nil {
		return err
	}
	return internal.RunPlan(ctx, opts...)
}

func recoverSwap(ctx context.Context, cmd *cli.Command) error {
	opts, err := options(cmd)
	if err != nil {
		return err
	}
	return internal.RunRecover(ctx, opts...)
}

func validateRepo(ctx context.Context, cmd *cli.Command) error {
	opts, err := options(cmd)
	if err != nil {
		return err
	}
	suites, files := suiteArgs(cmd.Args().Slice())
	return internal.RunValidate(ctx, suites, files, cmd.Bool("watch"), opts...)
}

// suiteArgs splits the positional arguments into the suite and an explicit
// file list. Without a recognised suite name every argument is a file.
func suiteArgs(args []string) ([]validate.Suite, []string) {
	if len(args) > 0 {
		if s, err := validate.ParseSuite(args[0]); err == nil {
			return []validate.Suite{s}, args[1:]
		}
	}
	return []validate.Suite{validate.SuiteAll}, args
}

func main() {
	cmd := &cli.Command{
		Name:  "folio",
		Usage: "Migrate a category-keyed content repository to per-article folders and validate the result",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("FOLIO_CONFIG_FILE"),
			},
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "Content repository root (overrides repo.root)",
				Sources: cli.EnvVars("FOLIO_ROOT"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "migrate",
				Usage:  "Move articles and their images into per-article folders",
				Action: migrate,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "dry-run",
						Usage: "Report what would change without touching the repository",
					},
				},
			},
			{
				Name:   "plan",
				Usage:  "Dry run that also prints the image ownership table",
				Action: plan,
			},
			{
				Name:   "recover",
				Usage:  "Undo the renames of an interrupted swap",
				Action: recoverSwap,
			},
			{
				Name:      "validate",
				Usage:     "Check the repository layout",
				ArgsUsage: "[structure|images|articles|widgets|all] [files...]",
				Action:    validateRepo,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "watch",
						Usage: "Re-run on every change until interrupted",
					},
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("folio failed", slog.String("error", err.Error()))
		os.Exit(apperr.ExitCode(err))
	}
}
