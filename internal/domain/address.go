package domain

import (
	"fmt"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"
)

// AddressLength is the raw byte length of every ledger address.
const AddressLength = 32

// Address is a base58-encoded 32-byte account identifier. Wallet addresses
// are valid ed25519 public keys; program-derived (contract) addresses are
// off-curve by construction.
type Address string

// String returns the base58 representation.
func (a Address) String() string {
	return string(a)
}

// Validate checks that the address decodes to exactly 32 bytes of base58.
func (a Address) Validate() error {
	if a == "" {
		return fmt.Errorf("empty address")
	}
	raw, err := base58.Decode(string(a))
	if err != nil {
		return fmt.Errorf("decode address %q: %w", string(a), err)
	}
	if len(raw) != AddressLength {
		return fmt.Errorf("address %q: got %d bytes, want %d", string(a), len(raw), AddressLength)
	}
	return nil
}

// OnCurve reports whether the address bytes form a valid ed25519 point.
// Contract addresses are derived off-curve, so this distinguishes wallet
// keys from program-derived accounts. Returns false for malformed addresses.
func (a Address) OnCurve() bool {
	raw, err := base58.Decode(string(a))
	if err != nil || len(raw) != AddressLength {
		return false
	}
	_, err = new(edwards25519.Point).SetBytes(raw)
	return err == nil
}

// AddressFromBytes encodes raw bytes as an Address.
func AddressFromBytes(raw []byte) (Address, error) {
	if len(raw) != AddressLength {
		return "", fmt.Errorf("address: got %d bytes, want %d", len(raw), AddressLength)
	}
	return Address(base58.Encode(raw)), nil
}
