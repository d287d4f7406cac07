package provider

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DeBrosOfficial/walletsync/pkg/contracts"
	"github.com/DeBrosOfficial/walletsync/pkg/errors"
	"github.com/DeBrosOfficial/walletsync/pkg/identity"
)

const demoMnemonic = "final vocal warm mansion person awesome sell spend solar tobacco gain canoe"
const otherMnemonic = "abandon ability able about above absent absorb abstract absurd abuse access accident"

func readyConn(t *testing.T, p *Simulated, seed string) contracts.Connection {
	t.Helper()
	ctx := context.Background()
	conn, err := p.Connect(ctx, seed, "testnet")
	require.NoError(t, err)
	require.NoError(t, conn.AwaitReady(ctx))
	t.Cleanup(conn.Disconnect)
	return conn
}

func TestValidateMnemonic(t *testing.T) {
	tests := []struct {
		name    string
		phrase  string
		wantErr bool
	}{
		{name: "twelve words", phrase: demoMnemonic},
		{name: "extra whitespace", phrase: "  final vocal warm mansion person awesome sell spend solar tobacco gain   canoe "},
		{name: "too short", phrase: "final vocal warm", wantErr: true},
		{name: "uppercase", phrase: "Final vocal warm mansion person awesome sell spend solar tobacco gain canoe", wantErr: true},
		{name: "digits", phrase: "final vocal warm mansion person awesome sell spend solar tobacco gain can0e", wantErr: true},
		{name: "empty", phrase: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMnemonic(tt.phrase)
			if tt.wantErr {
				assert.True(t, errors.IsValidation(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestDeriveAddressIsDeterministic(t *testing.T) {
	a1, err := DeriveAddress(demoMnemonic)
	require.NoError(t, err)
	a2, err := DeriveAddress("final  vocal warm mansion person awesome sell spend solar tobacco gain canoe")
	require.NoError(t, err)
	b, err := DeriveAddress(otherMnemonic)
	require.NoError(t, err)

	assert.Equal(t, a1, a2)
	assert.NotEqual(t, a1, b)
	assert.Len(t, DeriveSeed(demoMnemonic), 64)
}

func TestConnectRejectsBadInput(t *testing.T) {
	p := NewSimulated(Options{})
	ctx := context.Background()

	_, err := p.Connect(ctx, "not a mnemonic", "testnet")
	require.Error(t, err)
	assert.True(t, errors.IsConnectivity(err))
	assert.True(t, errors.IsValidation(err))

	_, err = p.Connect(ctx, demoMnemonic, "mainnet")
	require.Error(t, err)
	assert.True(t, errors.IsConnectivity(err))

	assert.Equal(t, 0, p.Connects())
}

func TestOperationsRequireReadiness(t *testing.T) {
	p := NewSimulated(Options{})
	conn, err := p.Connect(context.Background(), demoMnemonic, "testnet")
	require.NoError(t, err)

	_, err = conn.RegisterIdentity(context.Background(), identity.User)
	assert.True(t, errors.IsNotConnected(err))
}

func TestRegisterAndGetIdentity(t *testing.T) {
	p := NewSimulated(Options{})
	conn := readyConn(t, p, demoMnemonic)
	ctx := context.Background()

	id, err := conn.RegisterIdentity(ctx, identity.Application)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := conn.GetIdentity(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, identity.Identity{ID: id, Type: identity.Application}, got)

	_, err = conn.GetIdentity(ctx, "missing")
	assert.True(t, errors.IsNotFound(err))
}

func TestRegisterNameRejectsTakenNames(t *testing.T) {
	p := NewSimulated(Options{})
	ctx := context.Background()
	alice := readyConn(t, p, demoMnemonic)
	bob := readyConn(t, p, otherMnemonic)

	aliceID, err := alice.RegisterIdentity(ctx, identity.User)
	require.NoError(t, err)
	bobID, err := bob.RegisterIdentity(ctx, identity.User)
	require.NoError(t, err)

	require.NoError(t, alice.RegisterName(ctx, identity.Identity{ID: aliceID, Type: identity.User}, "alice"))

	err = bob.RegisterName(ctx, identity.Identity{ID: bobID, Type: identity.User}, "alice")
	require.Error(t, err)
	assert.True(t, errors.IsNameConflict(err))
	assert.True(t, errors.IsRegistration(err))

	err = alice.RegisterName(ctx, identity.Identity{ID: "ghost"}, "ghost")
	assert.True(t, errors.IsRegistration(err))
	assert.True(t, errors.IsNotFound(err))
}

func TestListIdentitiesOnlyReturnsOwnedInOrder(t *testing.T) {
	p := NewSimulated(Options{})
	ctx := context.Background()
	mine := readyConn(t, p, demoMnemonic)
	theirs := readyConn(t, p, otherMnemonic)

	first, err := mine.RegisterIdentity(ctx, identity.User)
	require.NoError(t, err)
	_, err = theirs.RegisterIdentity(ctx, identity.User)
	require.NoError(t, err)
	second, err := mine.RegisterIdentity(ctx, identity.Application)
	require.NoError(t, err)

	// a new connection for the same seed sees the same identities
	again := readyConn(t, p, demoMnemonic)
	list, err := again.ListIdentities(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first, list[0].ID)
	assert.Equal(t, second, list[1].ID)
	assert.Equal(t, identity.Application, list[1].Type)
}

func TestFaultInjection(t *testing.T) {
	boom := stderrors.New("boom")
	ctx := context.Background()

	t.Run("connect", func(t *testing.T) {
		p := NewSimulated(Options{})
		p.Fail(OpConnect, boom)
		_, err := p.Connect(ctx, demoMnemonic, "testnet")
		assert.True(t, errors.IsConnectivity(err))
		assert.ErrorIs(t, err, boom)

		p.Heal(OpConnect)
		_, err = p.Connect(ctx, demoMnemonic, "testnet")
		assert.NoError(t, err)
	})

	t.Run("ready", func(t *testing.T) {
		p := NewSimulated(Options{})
		p.Fail(OpAwaitReady, boom)
		conn, err := p.Connect(ctx, demoMnemonic, "testnet")
		require.NoError(t, err)
		err = conn.AwaitReady(ctx)
		assert.True(t, errors.IsConnectivity(err))
	})

	t.Run("register", func(t *testing.T) {
		p := NewSimulated(Options{})
		conn := readyConn(t, p, demoMnemonic)
		p.Fail(OpRegisterIdentity, boom)
		_, err := conn.RegisterIdentity(ctx, identity.User)
		assert.True(t, errors.IsRegistration(err))
		assert.ErrorIs(t, err, boom)
	})

	t.Run("get", func(t *testing.T) {
		p := NewSimulated(Options{})
		conn := readyConn(t, p, demoMnemonic)
		id, err := conn.RegisterIdentity(ctx, identity.User)
		require.NoError(t, err)
		p.Fail(OpGetIdentity, errors.ErrNotFound)
		_, err = conn.GetIdentity(ctx, id)
		assert.True(t, errors.IsNotFound(err))
	})
}

func TestAwaitReadyHonoursContext(t *testing.T) {
	p := NewSimulated(Options{ReadyLatency: time.Hour})
	conn, err := p.Connect(context.Background(), demoMnemonic, "testnet")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err = conn.AwaitReady(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDisconnectIsIdempotent(t *testing.T) {
	p := NewSimulated(Options{})
	conn := readyConn(t, p, demoMnemonic)
	conn.Disconnect()
	conn.Disconnect()

	_, err := conn.ListIdentities(context.Background())
	assert.True(t, errors.IsNotConnected(err))
	assert.True(t, errors.IsConnectivity(err))
}

func TestImportRestoresOwnedLedger(t *testing.T) {
	ctx := context.Background()
	p := NewSimulated(Options{})

	restored := []identity.Identity{
		{ID: "u1", Type: identity.User},
		{ID: "a1", Type: identity.Application},
		{ID: "", Type: identity.User},
	}
	require.NoError(t, p.Import(demoMnemonic, "testnet", restored, map[string][]string{
		"u1":      {"alice"},
		"missing": {"ghost"},
	}))
	// Importing twice does not duplicate.
	require.NoError(t, p.Import(demoMnemonic, "testnet", restored, nil))

	conn := readyConn(t, p, demoMnemonic)
	listed, err := conn.ListIdentities(ctx)
	require.NoError(t, err)
	assert.Equal(t, restored[:2], listed)

	err = conn.RegisterName(ctx, restored[1], "alice")
	assert.True(t, errors.IsNameConflict(err))
	assert.NoError(t, conn.RegisterName(ctx, restored[1], "ghost"))

	other := readyConn(t, p, otherMnemonic)
	listed, err = other.ListIdentities(ctx)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestImportRejectsBadInput(t *testing.T) {
	p := NewSimulated(Options{})
	assert.True(t, errors.IsValidation(p.Import("not a mnemonic", "testnet", nil, nil)))
	assert.True(t, errors.IsConnectivity(p.Import(demoMnemonic, "mainnet", nil, nil)))
}
