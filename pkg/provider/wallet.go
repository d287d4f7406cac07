package provider

import (
	"crypto/sha512"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/pbkdf2"

	"github.com/DeBrosOfficial/walletsync/pkg/errors"
)

const (
	seedSalt       = "mnemonic"
	seedIterations = 2048
	seedLength     = 64
)

// NormalizeMnemonic collapses whitespace in a seed phrase.
func NormalizeMnemonic(phrase string) string {
	return strings.Join(strings.Fields(phrase), " ")
}

// ValidateMnemonic checks that phrase has 12 or 24 lowercase words.
func ValidateMnemonic(phrase string) error {
	words := strings.Fields(phrase)
	if len(words) != 12 && len(words) != 24 {
		return errors.NewValidationError("mnemonic",
			fmt.Sprintf("expected 12 or 24 words, got %d", len(words)), len(words))
	}
	for i, w := range words {
		for _, r := range w {
			if r < 'a' || r > 'z' {
				return errors.NewValidationError("mnemonic",
					fmt.Sprintf("word %d contains invalid character %q", i+1, r), w)
			}
		}
	}
	return nil
}

// DeriveSeed stretches a seed phrase into a 64-byte wallet seed.
func DeriveSeed(phrase string) []byte {
	return pbkdf2.Key([]byte(NormalizeMnemonic(phrase)), []byte(seedSalt), seedIterations, seedLength, sha512.New)
}

// DeriveAddress returns the wallet address for a seed phrase.
func DeriveAddress(phrase string) (common.Address, error) {
	if err := ValidateMnemonic(phrase); err != nil {
		return common.Address{}, err
	}
	key, err := ethcrypto.ToECDSA(DeriveSeed(phrase)[:32])
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to derive wallet key: %w", err)
	}
	return ethcrypto.PubkeyToAddress(key.PublicKey), nil
}
