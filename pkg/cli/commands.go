package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/DeBrosOfficial/walletsync/pkg/errors"
)

// DefaultTimeout bounds one walletctl command.
const DefaultTimeout = 30 * time.Second

// Globals are the flags accepted by every command.
type Globals struct {
	ConfigPath string
	Format     string
	Timeout    time.Duration
}

// UsageError reports a malformed command line.
type UsageError struct {
	Usage string
}

func (e *UsageError) Error() string {
	return "usage: walletctl " + e.Usage
}

// ParseGlobalFlags extracts the global flags from args and returns the
// remaining positional arguments.
func ParseGlobalFlags(args []string) (Globals, []string, error) {
	g := Globals{Format: FormatTable, Timeout: DefaultTimeout}
	var rest []string

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-c", "--config", "-f", "--format", "-t", "--timeout":
			if i+1 >= len(args) {
				return g, nil, fmt.Errorf("flag %s needs a value", arg)
			}
			value := args[i+1]
			i++
			switch arg {
			case "-c", "--config":
				g.ConfigPath = value
			case "-f", "--format":
				if value != FormatTable && value != FormatJSON {
					return g, nil, fmt.Errorf("unknown format %q (table, json)", value)
				}
				g.Format = value
			default:
				d, err := time.ParseDuration(value)
				if err != nil || d <= 0 {
					return g, nil, fmt.Errorf("invalid timeout %q", value)
				}
				g.Timeout = d
			}
		default:
			rest = append(rest, arg)
		}
	}
	return g, rest, nil
}

// IsWalletCommand reports whether command needs a wallet session.
func IsWalletCommand(command string) bool {
	switch command {
	case "status", "init", "mnemonic", "identity", "name", "contract":
		return true
	}
	return false
}

// Execute runs one wallet command in a fresh App and persists the result.
func Execute(ctx context.Context, command string, args []string, g Globals, stdout io.Writer, opts AppOptions) (err error) {
	run, err := bind(command, args, g.Format, stdout)
	if err != nil {
		return err
	}

	cfg, err := LoadConfig(g.ConfigPath)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, g.Timeout)
	defer cancel()

	app, err := NewApp(ctx, cfg, opts)
	if err != nil {
		return err
	}
	defer func() {
		// The command may have used up the deadline; the final save gets
		// its own.
		closeCtx, closeCancel := context.WithTimeout(context.Background(), g.Timeout)
		defer closeCancel()
		if cerr := app.Close(closeCtx); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return run(ctx, app)
}

// bind checks the arguments of command and returns the call to make.
func bind(command string, args []string, format string, w io.Writer) (func(context.Context, *App) error, error) {
	sub := ""
	if len(args) > 0 {
		sub = args[0]
	}

	switch {
	case command == "status" && len(args) == 0:
		return func(ctx context.Context, a *App) error { return a.Status(ctx, w, format) }, nil

	case command == "init" && len(args) == 0:
		return func(ctx context.Context, a *App) error { return a.Init(ctx, w, format) }, nil

	case command == "mnemonic" && sub == "set" && len(args) >= 2:
		phrase := strings.Join(args[1:], " ")
		return func(ctx context.Context, a *App) error { return a.SetMnemonic(ctx, w, format, phrase) }, nil

	case command == "identity" && sub == "create" && len(args) == 2:
		return func(ctx context.Context, a *App) error { return a.CreateIdentity(ctx, w, format, args[1]) }, nil

	case command == "identity" && sub == "list" && len(args) == 1:
		return func(ctx context.Context, a *App) error { return a.ListIdentities(ctx, w, format) }, nil

	case command == "name" && sub == "register" && len(args) == 3:
		return func(ctx context.Context, a *App) error { return a.RegisterName(ctx, w, format, args[1], args[2]) }, nil

	case command == "contract" && sub == "register" && len(args) == 3:
		return func(ctx context.Context, a *App) error { return a.RegisterContract(ctx, w, format, args[1], args[2]) }, nil
	}

	return nil, &UsageError{Usage: usageFor(command)}
}

func usageFor(command string) string {
	switch command {
	case "mnemonic":
		return "mnemonic set <word> <word> ..."
	case "identity":
		return "identity create <application|user> | identity list"
	case "name":
		return "name register <identity-id> <name>"
	case "contract":
		return "contract register <identity-id> <file.json>"
	default:
		return command
	}
}

// ReportError writes err for a terminal and returns the process exit code:
// 2 for usage errors, 1 for everything else. The headline is the message of
// the first typed error in the chain; the full chain follows when it adds
// context.
func ReportError(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	var usage *UsageError
	if errors.As(err, &usage) {
		fmt.Fprintln(w, err)
		return 2
	}
	msg := errors.GetErrorMessage(err)
	fmt.Fprintf(w, "❌ %s (%s)\n", msg, errors.GetErrorCode(err))
	if detail := err.Error(); detail != msg {
		fmt.Fprintf(w, "   %s\n", detail)
	}
	return 1
}

// ShowHelp prints the command overview.
func ShowHelp(w io.Writer) {
	fmt.Fprintf(w, "walletctl - wallet identity synchronization\n\n")
	fmt.Fprintf(w, "Usage: walletctl <command> [args...]\n\n")

	fmt.Fprintf(w, "Wallet:\n")
	fmt.Fprintf(w, "  status                                  - Connect and show wallet status\n")
	fmt.Fprintf(w, "  init                                    - Connect the wallet, fail if it cannot sync\n")
	fmt.Fprintf(w, "  mnemonic set <words...>                 - Replace the seed phrase and reconnect\n\n")

	fmt.Fprintf(w, "Identities:\n")
	fmt.Fprintf(w, "  identity create <application|user>      - Register a new identity\n")
	fmt.Fprintf(w, "  identity list                           - List identities with names and contracts\n")
	fmt.Fprintf(w, "  name register <identity-id> <name>      - Bind a name to an identity\n")
	fmt.Fprintf(w, "  contract register <identity-id> <file>  - Bind a JSON contract to an identity\n\n")

	fmt.Fprintf(w, "Configuration:\n")
	fmt.Fprintf(w, "  config init [--force]                   - Write the default config file\n")
	fmt.Fprintf(w, "  config validate                         - Validate the config file\n\n")

	fmt.Fprintf(w, "Global Flags:\n")
	fmt.Fprintf(w, "  -c, --config <file>                     - Config file (default: ~/.walletsync/walletctl.yaml)\n")
	fmt.Fprintf(w, "  -f, --format <format>                   - Output format: table, json (default: table)\n")
	fmt.Fprintf(w, "  -t, --timeout <duration>                - Command timeout (default: 30s)\n\n")

	fmt.Fprintf(w, "Examples:\n")
	fmt.Fprintf(w, "  walletctl identity create user\n")
	fmt.Fprintf(w, "  walletctl name register <id> alice\n")
	fmt.Fprintf(w, "  walletctl -f json identity list\n")
}
