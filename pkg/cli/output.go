package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/DeBrosOfficial/walletsync/pkg/identity"
	"github.com/DeBrosOfficial/walletsync/pkg/state"
)

// Output formats accepted by --format.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// StatusView is what `walletctl status` reports.
type StatusView struct {
	Network    string         `json:"network"`
	Address    string         `json:"address,omitempty"`
	Phase      string         `json:"phase"`
	Syncing    bool           `json:"syncing"`
	Error      string         `json:"error,omitempty"`
	Identities map[string]int `json:"identities"`
	Names      int            `json:"names"`
	Contracts  int            `json:"contracts"`
	Version    uint64         `json:"version"`
}

// IdentityListView is what `walletctl identity list` reports.
type IdentityListView struct {
	Users        []state.UserIdentity        `json:"users"`
	Applications []state.ApplicationIdentity `json:"applications"`
}

func printJSON(w io.Writer, data interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

func printStatus(w io.Writer, s StatusView) error {
	fmt.Fprintf(w, "Wallet Status\n")
	tw := tabwriter.NewWriter(w, 0, 4, 1, ' ', 0)
	fmt.Fprintf(tw, "Network:\t%s\n", s.Network)
	if s.Address != "" {
		fmt.Fprintf(tw, "Address:\t%s\n", s.Address)
	}
	fmt.Fprintf(tw, "Phase:\t%s\n", s.Phase)
	fmt.Fprintf(tw, "Syncing:\t%t\n", s.Syncing)
	if s.Error != "" {
		fmt.Fprintf(tw, "Error:\t%s\n", s.Error)
	}
	for _, typ := range identity.Types() {
		name := typ.Name()
		fmt.Fprintf(tw, "%s%ss:\t%d\n", strings.ToUpper(name[:1]), name[1:], s.Identities[name])
	}
	fmt.Fprintf(tw, "Names:\t%d\n", s.Names)
	fmt.Fprintf(tw, "Contracts:\t%d\n", s.Contracts)
	return tw.Flush()
}

func printIdentities(w io.Writer, v IdentityListView) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tID\tDETAILS")
	for _, u := range v.Users {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", u.Type.Name(), u.ID, strings.Join(u.Names, ", "))
	}
	for _, a := range v.Applications {
		details := ""
		if a.Contract != nil {
			data, err := json.Marshal(a.Contract)
			if err != nil {
				return fmt.Errorf("failed to encode contract of %s: %w", a.ID, err)
			}
			details = string(data)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", a.Type.Name(), a.ID, details)
	}
	return tw.Flush()
}

func printIdentity(w io.Writer, id identity.Identity) {
	fmt.Fprintf(w, "Created %s identity %s\n", id.Type.Name(), id.ID)
}
