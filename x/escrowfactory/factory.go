package escrowfactory

import (
	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/coin"
	"github.com/iov-one/xswap/errors"
	"github.com/iov-one/xswap/x/cash"
	"github.com/iov-one/xswap/x/codeid"
	"github.com/iov-one/xswap/x/escrowdst"
	"github.com/iov-one/xswap/x/htlc"
	"github.com/iov-one/xswap/x/utils"
)

// Factory creates escrows. Collaborators are injected so that the factory
// does not depend on a particular ledger or code registry.
type Factory struct {
	codes   codeid.Lookup
	escrows escrowdst.Bucket
	bank    cash.CoinMover
}

// NewFactory returns a factory using given code lookup and ledger.
func NewFactory(codes codeid.Lookup, bank cash.CoinMover) Factory {
	return Factory{
		codes:   codes,
		escrows: escrowdst.NewBucket(),
		bank:    bank,
	}
}

// Deployment describes an escrow to be created.
type Deployment struct {
	Address    xswap.Address
	Checksum   []byte
	Commitment []byte
	// Immutables are the terms with the deployment time set.
	Immutables htlc.Immutables
}

// AddressOf returns the address of the escrow for given terms. The terms
// must already carry their deployment time.
func (f Factory) AddressOf(db xswap.ReadOnlyKVStore, conf *Configuration, im *htlc.Immutables) (xswap.Address, error) {
	checksum, err := f.codes.Checksum(db, conf.EscrowCodeID)
	if err != nil {
		return nil, errors.Wrap(err, "escrow code")
	}
	return htlc.EscrowAddress(checksum, conf.Address, im)
}

// Plan runs all creation checks and returns where and how the escrow
// would be deployed at time now. It does not modify any state.
func (f Factory) Plan(db xswap.ReadOnlyKVStore, conf *Configuration, now uint64, msg *CreateEscrowDstMsg) (*Deployment, error) {
	im := msg.Immutables.Stamped(now)
	if cancelAt := im.Timelocks.StageTime(htlc.DstCancellation); cancelAt > msg.SrcCancellationTimestamp {
		return nil, errors.Wrapf(htlc.ErrInvalidCreationTime,
			"destination cancellation %d is after source cancellation %d", cancelAt, msg.SrcCancellationTimestamp)
	}
	if err := htlc.ValidateTokenAmounts(&im, msg.Funds, conf.SafetyDepositDenom); err != nil {
		return nil, err
	}
	checksum, err := f.codes.Checksum(db, conf.EscrowCodeID)
	if err != nil {
		return nil, errors.Wrap(err, "escrow code")
	}
	commitment := im.Commitment()
	addr, err := htlc.DeriveAddress(checksum, conf.Address, commitment)
	if err != nil {
		return nil, err
	}
	if f.escrows.Has(db, addr) {
		return nil, errors.Wrapf(errors.ErrDuplicate, "escrow %s", addr)
	}
	return &Deployment{
		Address:    addr,
		Checksum:   checksum,
		Commitment: commitment,
		Immutables: im,
	}, nil
}

// Deploy instantiates the planned escrow and moves the funds from the
// depositor to it. Nothing is written unless every step succeeds.
func (f Factory) Deploy(db xswap.KVStore, conf *Configuration, d *Deployment, depositor xswap.Address, funds coin.Coins) error {
	return utils.Atomic(db, func(db xswap.KVStore) error {
		escrow := &escrowdst.Escrow{
			Address:            d.Address,
			Factory:            conf.Address,
			CodeChecksum:       d.Checksum,
			Commitment:         d.Commitment,
			Verification:       conf.Verification,
			SafetyDepositDenom: conf.SafetyDepositDenom,
			RescueDelay:        conf.RescueDelay,
			Hashlock:           d.Immutables.Hashlock,
			Taker:              d.Immutables.Taker,
			CreatedAt:          d.Immutables.Timelocks.DeployedAt,
		}
		if err := f.escrows.Instantiate(db, escrow); err != nil {
			return errors.Wrap(err, "instantiate escrow")
		}
		for _, c := range funds {
			if err := f.bank.MoveCoins(db, depositor, d.Address, c); err != nil {
				return errors.Wrapf(err, "fund escrow with %s", c)
			}
		}
		return nil
	})
}
