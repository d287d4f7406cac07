package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/DeBrosOfficial/walletsync/pkg/errors"
	"github.com/DeBrosOfficial/walletsync/pkg/identity"
	"github.com/DeBrosOfficial/walletsync/pkg/logging"
	"github.com/DeBrosOfficial/walletsync/pkg/provider"
)

// Status connects the wallet and reports its state. A failed connection is
// part of the report, not an error.
func (a *App) Status(ctx context.Context, w io.Writer, format string) error {
	a.Client.InitWallet(ctx)
	return a.writeStatus(w, format)
}

// Init connects the wallet and fails when the connection fails.
func (a *App) Init(ctx context.Context, w io.Writer, format string) error {
	syncErr := a.Sync(ctx)
	if err := a.writeStatus(w, format); err != nil {
		return err
	}
	if syncErr != nil {
		return fmt.Errorf("wallet sync failed: %w", syncErr)
	}
	return nil
}

// SetMnemonic replaces the seed phrase and reconnects with it.
func (a *App) SetMnemonic(ctx context.Context, w io.Writer, format, phrase string) error {
	phrase = provider.NormalizeMnemonic(phrase)
	if err := provider.ValidateMnemonic(phrase); err != nil {
		return err
	}
	a.Store.SetMnemonic(phrase)
	a.Logger.ComponentInfo(logging.ComponentCLI, "Mnemonic updated")
	return a.Init(ctx, w, format)
}

// CreateIdentity registers a new identity of the named type.
func (a *App) CreateIdentity(ctx context.Context, w io.Writer, format, typeName string) error {
	typ, err := identity.ParseType(typeName)
	if err != nil {
		return err
	}
	if err := a.Sync(ctx); err != nil {
		return fmt.Errorf("wallet sync failed: %w", err)
	}

	created, err := a.Client.CreateIdentity(ctx, typ)
	if err != nil {
		return err
	}
	if format == FormatJSON {
		return printJSON(w, created)
	}
	printIdentity(w, created)
	return nil
}

// ListIdentities reports every identity with its names or contract.
func (a *App) ListIdentities(ctx context.Context, w io.Writer, format string) error {
	a.Client.InitWallet(ctx)
	if err := a.Store.ErrorDetails(); err != nil {
		a.Logger.ComponentWarn(logging.ComponentCLI, "Listing local identities only", zap.Error(err))
	}

	view := IdentityListView{
		Users:        a.Store.UserIdentitiesWithNames(),
		Applications: a.Store.ApplicationIdentitiesWithContracts(),
	}
	if format == FormatJSON {
		return printJSON(w, view)
	}
	return printIdentities(w, view)
}

// RegisterName binds name to the identity with identityID.
func (a *App) RegisterName(ctx context.Context, w io.Writer, format, identityID, name string) error {
	id, err := a.lookup(identityID)
	if err != nil {
		return err
	}
	if err := a.Sync(ctx); err != nil {
		return fmt.Errorf("wallet sync failed: %w", err)
	}

	if err := a.Client.RegisterName(ctx, id, name); err != nil {
		return err
	}
	if format == FormatJSON {
		return printJSON(w, map[string]string{"identity_id": id.ID, "name": name})
	}
	fmt.Fprintf(w, "Registered name %q for %s\n", name, id.ID)
	return nil
}

// RegisterContract binds the JSON object in path to the identity with
// identityID.
func (a *App) RegisterContract(ctx context.Context, w io.Writer, format, identityID, path string) error {
	id, err := a.lookup(identityID)
	if err != nil {
		return err
	}
	doc, err := readContract(path)
	if err != nil {
		return err
	}
	if err := a.Sync(ctx); err != nil {
		return fmt.Errorf("wallet sync failed: %w", err)
	}

	if err := a.Client.RegisterContract(ctx, id, doc); err != nil {
		return err
	}
	if format == FormatJSON {
		return printJSON(w, map[string]interface{}{"identity_id": id.ID, "contract": doc})
	}
	fmt.Fprintf(w, "Registered contract for %s\n", id.ID)
	return nil
}

func (a *App) lookup(identityID string) (identity.Identity, error) {
	id, ok := a.Store.Identity(identityID)
	if !ok {
		return identity.Identity{}, errors.NewNotFoundError("identity", identityID)
	}
	return id, nil
}

func (a *App) writeStatus(w io.Writer, format string) error {
	snap := a.Store.Snapshot()
	view := StatusView{
		Network:    a.Config.Wallet.Network,
		Phase:      a.Client.Phase().String(),
		Syncing:    snap.IsSyncing,
		Identities: make(map[string]int),
		Contracts:  len(snap.Contracts),
		Version:    snap.Version,
		Address:    a.Client.Address(),
	}
	if snap.ErrorDetails != nil {
		view.Error = snap.ErrorDetails.Error()
	}
	for _, list := range snap.IdentityLists() {
		view.Identities[list.Type.Name()] = len(list.Items)
	}
	for _, names := range snap.Names {
		view.Names += len(names)
	}

	if format == FormatJSON {
		return printJSON(w, view)
	}
	return printStatus(w, view)
}

func readContract(path string) (identity.Contract, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read contract %s: %w", path, err)
	}
	var doc identity.Contract
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewValidationError("contract", fmt.Sprintf("%s is not a JSON object: %v", path, err), path)
	}
	if doc == nil {
		return nil, errors.NewValidationError("contract", path+" is empty", path)
	}
	return doc, nil
}
