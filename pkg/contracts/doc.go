// Package contracts defines the interface contracts between the wallet
// client and its external collaborators.
//
// Interfaces:
//   - WalletProvider: opens a connection to a wallet network with a seed phrase
//   - Connection: identity and name registration on an open connection
//   - SnapshotStore: durable storage for the persisted wallet state
package contracts
