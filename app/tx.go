package app

import (
	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/errors"
	"github.com/iov-one/xswap/x/cash"
	"github.com/iov-one/xswap/x/codeid"
	"github.com/iov-one/xswap/x/escrowdst"
	"github.com/iov-one/xswap/x/escrowfactory"
	"github.com/iov-one/xswap/x/sigs"
	amino "github.com/tendermint/go-amino"
)

// txCodec knows every message that can be carried by a Tx.
var txCodec = amino.NewCodec()

func init() {
	RegisterAmino(txCodec)
}

// RegisterAmino registers the message interface and all concrete
// messages served by this application on the given codec.
func RegisterAmino(cdc *amino.Codec) {
	cdc.RegisterInterface((*xswap.Msg)(nil), nil)
	cdc.RegisterConcrete(&cash.SendMsg{}, "xswap/cash/SendMsg", nil)
	cdc.RegisterConcrete(&sigs.BumpSequenceMsg{}, "xswap/sigs/BumpSequenceMsg", nil)
	cdc.RegisterConcrete(&codeid.StoreCodeMsg{}, "xswap/codeid/StoreCodeMsg", nil)
	cdc.RegisterConcrete(&escrowfactory.CreateEscrowDstMsg{}, "xswap/escrowfactory/CreateEscrowDstMsg", nil)
	cdc.RegisterConcrete(&escrowdst.WithdrawMsg{}, "xswap/escrowdst/WithdrawMsg", nil)
	cdc.RegisterConcrete(&escrowdst.PublicWithdrawMsg{}, "xswap/escrowdst/PublicWithdrawMsg", nil)
	cdc.RegisterConcrete(&escrowdst.CancelMsg{}, "xswap/escrowdst/CancelMsg", nil)
	cdc.RegisterConcrete(&escrowdst.RescueFundsMsg{}, "xswap/escrowdst/RescueFundsMsg", nil)
}

// Tx is the transaction envelope accepted by the application: one message
// and the signatures authorizing it.
type Tx struct {
	Msg        xswap.Msg            `json:"msg"`
	Signatures []*sigs.StdSignature `json:"signatures"`
}

var _ xswap.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// GetMsg returns the carried message.
func (tx *Tx) GetMsg() (xswap.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "tx message")
	}
	return tx.Msg, nil
}

// GetSignatures returns all signatures of the transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the serialized transaction without signatures.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	unsigned := Tx{Msg: tx.Msg}
	return unsigned.Marshal()
}

func (tx *Tx) Marshal() ([]byte, error) {
	raw, err := txCodec.MarshalBinaryBare(tx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return raw, nil
}

func (tx *Tx) Unmarshal(raw []byte) error {
	if err := txCodec.UnmarshalBinaryBare(raw, tx); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(raw []byte) (xswap.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(raw); err != nil {
		return nil, err
	}
	return tx, nil
}
