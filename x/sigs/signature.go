package sigs

import (
	"bytes"
	"crypto/sha512"
	"encoding/binary"

	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/crypto"
	"github.com/iov-one/xswap/errors"
)

// SignCodeV1 prefixes the signed payload.
var SignCodeV1 = []byte{0, 0xCA, 0xFE, 0}

// SignedTx is a transaction that carries signatures.
type SignedTx interface {
	// GetSignBytes returns the canonical bytes of the transaction without
	// its signatures.
	GetSignBytes() ([]byte, error)
	GetSignatures() []*StdSignature
}

// StdSignature approves a transaction by one key at a given sequence.
type StdSignature struct {
	Sequence  int64             `json:"sequence"`
	Pubkey    *crypto.PublicKey `json:"pubkey"`
	Signature *crypto.Signature `json:"signature"`
}

func (s *StdSignature) Validate() error {
	switch {
	case s.Sequence < 0:
		return errors.Wrap(ErrInvalidSequence, "negative")
	case s.Pubkey == nil:
		return errors.Wrap(errors.ErrUnauthorized, "missing public key")
	case s.Signature == nil:
		return errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return nil
}

// BuildSignBytes returns the sha512 digest of
//
//	SignCodeV1 | len(chainID) uint8 | chainID | seq int64 big endian | payload
//
// The fixed digest length keeps hardware signers able to sign any
// transaction.
func BuildSignBytes(payload []byte, chainID string, seq int64) ([]byte, error) {
	if seq < 0 {
		return nil, errors.Wrap(ErrInvalidSequence, "negative")
	}
	if !xswap.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}
	var buf bytes.Buffer
	buf.Grow(len(SignCodeV1) + 1 + len(chainID) + 8 + len(payload))
	buf.Write(SignCodeV1)
	buf.WriteByte(uint8(len(chainID)))
	buf.WriteString(chainID)
	var nonce [8]byte
	binary.BigEndian.PutUint64(nonce[:], uint64(seq))
	buf.Write(nonce[:])
	buf.Write(payload)

	digest := sha512.Sum512(buf.Bytes())
	return digest[:], nil
}

// SignTx signs tx for chainID at sequence seq.
func SignTx(signer crypto.Signer, tx SignedTx, chainID string, seq int64) (*StdSignature, error) {
	payload, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	digest, err := BuildSignBytes(payload, chainID, seq)
	if err != nil {
		return nil, err
	}
	sig, err := signer.Sign(digest)
	if err != nil {
		return nil, err
	}
	return &StdSignature{Pubkey: signer.PublicKey(), Signature: sig, Sequence: seq}, nil
}

// VerifyTxSignatures checks every signature of tx and advances the
// sequence of each signer. It returns the signer conditions in signature
// order.
func VerifyTxSignatures(db xswap.KVStore, tx SignedTx, chainID string) ([]xswap.Condition, error) {
	payload, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	sigs := tx.GetSignatures()
	signers := make([]xswap.Condition, 0, len(sigs))
	bucket := NewBucket()
	for i, sig := range sigs {
		if err := verify(db, bucket, sig, payload, chainID); err != nil {
			return nil, errors.Wrapf(err, "signature %d", i)
		}
		signers = append(signers, sig.Pubkey.Condition())
	}
	return signers, nil
}

func verify(db xswap.KVStore, bucket Bucket, sig *StdSignature, payload []byte, chainID string) error {
	if err := sig.Validate(); err != nil {
		return err
	}
	digest, err := BuildSignBytes(payload, chainID, sig.Sequence)
	if err != nil {
		return err
	}
	if !sig.Pubkey.Verify(digest, sig.Signature) {
		return errors.Wrap(errors.ErrUnauthorized, "invalid signature")
	}
	user, err := bucket.LoadOrNew(db, sig.Pubkey)
	if err != nil {
		return err
	}
	if err := user.Advance(sig.Sequence, 1); err != nil {
		return err
	}
	return bucket.Store(db, user)
}
