// cmd/gitlet/main.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gitlet/internal/config"
	"gitlet/internal/errors"
	"gitlet/internal/logging"
	"gitlet/internal/repo"
	"gitlet/internal/validation"
)

var logger = logging.Nop()

var rootCmd = &cobra.Command{
	Use:   "gitlet",
	Short: "Gitlet is a single-user snapshot version-control system",
	Long: `Gitlet records content snapshots of the files directly under the
working directory, arranges them as a graph of commits, and supports
branches, history inspection, checkout, reset, and three-way merge.`,
	Args:               cobra.ArbitraryArgs,
	DisableFlagParsing: true,
	SilenceUsage:       true,
	SilenceErrors:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			fail(errors.NoCommand())
		}
		fail(errors.UnknownCommand())
		return nil
	},
}

// fail prints a diagnostic and stops the command. Diagnostics are the
// interface contract; the exit status is always 0.
func fail(err error) {
	fmt.Println(err)
	os.Exit(0)
}

// open builds the engine for an initialized repository, failing with the
// not-initialized diagnostic otherwise.
func open(op string) *repo.Repository {
	r := repo.New(config.Default(), os.Stdout, logger.WithOp(op))
	if err := r.RequireInit(); err != nil {
		fail(err)
	}
	return r
}

// command builds a subcommand whose raw operands are validated by run. Flag
// parsing is disabled so operand shapes, including a literal "--", reach the
// command untouched.
func command(use, short string, run func(args []string) error) *cobra.Command {
	return &cobra.Command{
		Use:                use,
		Short:              short,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := run(args); err != nil {
				fail(err)
			}
			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(command(
		"init", "Initialize a new Gitlet repository",
		func(args []string) error {
			if err := validation.ExactOperands(args, 0); err != nil {
				return err
			}
			r := repo.New(config.Default(), os.Stdout, logger.WithOp("init"))
			return r.Init()
		}))

	rootCmd.AddCommand(command(
		"add <file>", "Stage a file for the next commit",
		func(args []string) error {
			r := open("add")
			if err := validation.ExactOperands(args, 1); err != nil {
				return err
			}
			return r.Add(args[0])
		}))

	rootCmd.AddCommand(command(
		"commit <message>", "Record the staged snapshot",
		func(args []string) error {
			r := open("commit")
			if err := validation.ExactOperands(args, 1); err != nil {
				return err
			}
			if err := validation.CommitMessage(args[0]); err != nil {
				return err
			}
			return r.Commit(args[0])
		}))

	rootCmd.AddCommand(command(
		"rm <file>", "Unstage a file or stage its removal",
		func(args []string) error {
			r := open("rm")
			if err := validation.ExactOperands(args, 1); err != nil {
				return err
			}
			return r.Remove(args[0])
		}))

	rootCmd.AddCommand(command(
		"log", "Show the history of the current branch",
		func(args []string) error {
			r := open("log")
			if err := validation.ExactOperands(args, 0); err != nil {
				return err
			}
			return r.Log()
		}))

	rootCmd.AddCommand(command(
		"global-log", "Show every commit ever made",
		func(args []string) error {
			r := open("global-log")
			if err := validation.ExactOperands(args, 0); err != nil {
				return err
			}
			return r.GlobalLog()
		}))

	rootCmd.AddCommand(command(
		"find <message>", "Print ids of commits with the given message",
		func(args []string) error {
			r := open("find")
			if err := validation.ExactOperands(args, 1); err != nil {
				return err
			}
			if err := validation.FindMessage(args[0]); err != nil {
				return err
			}
			return r.Find(args[0])
		}))

	rootCmd.AddCommand(command(
		"status", "Show branches, staged changes, and untracked files",
		func(args []string) error {
			r := open("status")
			if err := validation.ExactOperands(args, 0); err != nil {
				return err
			}
			return r.Status()
		}))

	rootCmd.AddCommand(command(
		"checkout", "Restore a file or switch branches",
		func(args []string) error {
			r := open("checkout")
			switch len(args) {
			case 2:
				if args[0] != "--" {
					return errors.BadOperands()
				}
				return r.CheckoutFile(args[1])
			case 3:
				if args[1] != "--" {
					return errors.BadOperands()
				}
				return r.CheckoutCommitFile(args[0], args[2])
			case 1:
				return r.CheckoutBranch(args[0])
			default:
				return errors.BadOperands()
			}
		}))

	rootCmd.AddCommand(command(
		"branch <name>", "Create a branch at the current commit",
		func(args []string) error {
			r := open("branch")
			if err := validation.ExactOperands(args, 1); err != nil {
				return err
			}
			return r.Branch(args[0])
		}))

	rootCmd.AddCommand(command(
		"rm-branch <name>", "Delete a branch",
		func(args []string) error {
			r := open("rm-branch")
			if err := validation.ExactOperands(args, 1); err != nil {
				return err
			}
			return r.RemoveBranch(args[0])
		}))

	rootCmd.AddCommand(command(
		"reset <commit-id>", "Move the current branch to a commit",
		func(args []string) error {
			r := open("reset")
			if err := validation.ExactOperands(args, 1); err != nil {
				return err
			}
			return r.Reset(args[0])
		}))

	rootCmd.AddCommand(command(
		"merge <branch>", "Merge another branch into the current one",
		func(args []string) error {
			r := open("merge")
			if err := validation.ExactOperands(args, 1); err != nil {
				return err
			}
			return r.Merge(args[0])
		}))

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetHelpCommand(&cobra.Command{Use: "help-disabled", Hidden: true})
}

func main() {
	if l, err := logging.NewLogger(config.LogLevel()); err == nil {
		logger = l
		defer logger.Sync()
	}

	if err := rootCmd.Execute(); err != nil {
		logger.Debug("command failed", zap.Error(err))
		fail(errors.UnknownCommand())
	}
}
