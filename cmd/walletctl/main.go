package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/DeBrosOfficial/walletsync/pkg/cli"
)

// version metadata populated via -ldflags at build time
var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	if len(os.Args) < 2 {
		cli.ShowHelp(os.Stdout)
		return
	}

	command := os.Args[1]
	globals, args, err := cli.ParseGlobalFlags(os.Args[2:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(2)
	}

	switch {
	case command == "version":
		fmt.Printf("walletctl %s", version)
		if commit != "" {
			fmt.Printf(" (commit %s)", commit)
		}
		if date != "" {
			fmt.Printf(" built %s", date)
		}
		fmt.Println()
		return

	case command == "help" || command == "--help" || command == "-h":
		cli.ShowHelp(os.Stdout)
		return

	case command == "config":
		exit(cli.HandleConfig(args, globals, os.Stdout))

	case cli.IsWalletCommand(command):
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		err := cli.Execute(ctx, command, args, globals, os.Stdout, cli.AppOptions{})
		stop()
		exit(err)

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		cli.ShowHelp(os.Stderr)
		os.Exit(1)
	}
}

func exit(err error) {
	if err == nil {
		return
	}
	os.Exit(cli.ReportError(os.Stderr, err))
}
