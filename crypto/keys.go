// Package crypto holds the ed25519 keys that sign transactions.
package crypto

import (
	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/errors"
	"golang.org/x/crypto/ed25519"
)

// ExtensionName is the extension of signature conditions.
const ExtensionName = "sigs"

// Signer signs transactions. It hides the key so that hardware wallets
// can implement it.
type Signer interface {
	Sign(message []byte) (*Signature, error)
	PublicKey() *PublicKey
}

type PublicKey struct {
	Ed25519 []byte `json:"ed25519"`
}

type PrivateKey struct {
	Ed25519 []byte `json:"ed25519"`
}

type Signature struct {
	Ed25519 []byte `json:"ed25519"`
}

var _ Signer = (*PrivateKey)(nil)

// GenPrivKeyEd25519 returns a key from crypto/rand.
func GenPrivKeyEd25519() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{Ed25519: priv}
}

// PrivKeyEd25519FromSeed derives a key from a 32 byte seed. Any other
// seed length panics.
func PrivKeyEd25519FromSeed(seed []byte) *PrivateKey {
	return &PrivateKey{Ed25519: ed25519.NewKeyFromSeed(seed)}
}

func (p *PrivateKey) Sign(message []byte) (*Signature, error) {
	if len(p.Ed25519) != ed25519.PrivateKeySize {
		return nil, errors.Wrap(errors.ErrEmpty, "private key")
	}
	return &Signature{Ed25519: ed25519.Sign(p.Ed25519, message)}, nil
}

func (p *PrivateKey) PublicKey() *PublicKey {
	pub := ed25519.PrivateKey(p.Ed25519).Public().(ed25519.PublicKey)
	return &PublicKey{Ed25519: pub}
}

// Verify is false for a nil signature or a malformed key.
func (p *PublicKey) Verify(message []byte, sig *Signature) bool {
	if sig == nil || len(p.Ed25519) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(p.Ed25519, message, sig.Ed25519)
}

// Condition is "sigs/ed25519/<key>", nil for an empty key.
func (p *PublicKey) Condition() xswap.Condition {
	if len(p.Ed25519) == 0 {
		return nil
	}
	return xswap.NewCondition(ExtensionName, "ed25519", p.Ed25519)
}

// Address is the address of Condition, nil for an empty key.
func (p *PublicKey) Address() xswap.Address {
	if c := p.Condition(); c != nil {
		return c.Address()
	}
	return nil
}

func (p *PublicKey) Validate() error {
	switch {
	case p == nil || len(p.Ed25519) == 0:
		return errors.Wrap(errors.ErrEmpty, "public key")
	case len(p.Ed25519) != ed25519.PublicKeySize:
		return errors.Wrapf(errors.ErrInput, "public key of %d bytes", len(p.Ed25519))
	}
	return nil
}

func (p *PublicKey) Marshal() ([]byte, error) {
	return xswap.MarshalBinary(p)
}

func (p *PublicKey) Unmarshal(raw []byte) error {
	return xswap.UnmarshalBinary(raw, p)
}
