package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/DeBrosOfficial/walletsync/pkg/config"
	"github.com/DeBrosOfficial/walletsync/pkg/errors"
)

// HandleConfig runs `walletctl config <subcommand>`.
func HandleConfig(args []string, g Globals, w io.Writer) error {
	if len(args) == 0 {
		return &UsageError{Usage: "config <init|validate>"}
	}

	path := g.ConfigPath
	if path == "" {
		p, err := config.DefaultPath(DefaultConfigName)
		if err != nil {
			return err
		}
		path = p
	}

	switch args[0] {
	case "init":
		force := len(args) > 1 && args[1] == "--force"
		return configInit(path, force, w)
	case "validate":
		return configValidate(path, w)
	default:
		return &UsageError{Usage: "config <init|validate>"}
	}
}

func configInit(path string, force bool, w io.Writer) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
	}
	if err := config.Save(path, config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Fprintf(w, "Wrote %s\n", path)
	return nil
}

func configValidate(path string, w io.Writer) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		fmt.Fprintf(w, "Configuration errors (%d):\n", len(errs))
		for _, e := range errs {
			fmt.Fprintf(w, "  - %s\n", e)
		}
		return fmt.Errorf("%s: %w", path, errors.ErrInvalidConfig)
	}
	fmt.Fprintf(w, "%s is valid\n", path)
	return nil
}
