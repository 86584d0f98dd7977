package escrowfactory

import (
	"encoding/json"
	"strconv"

	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/errors"
	"github.com/iov-one/xswap/x"
	"github.com/iov-one/xswap/x/cash"
	"github.com/iov-one/xswap/x/codeid"
	"github.com/iov-one/xswap/x/htlc"
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r xswap.Registry, auth x.Authenticator, codes codeid.Lookup, bank cash.CoinMover) {
	r.Handle(CreateEscrowDstMsg{}.Path(), NewCreateEscrowDstHandler(auth, NewFactory(codes, bank)))
}

// RegisterQuery exposes the address prediction as "/escrowfactory/address".
func RegisterQuery(qr xswap.QueryRouter) {
	qr.Register("/escrowfactory/address", AddressQuery{factory: NewFactory(codeid.NewLookup(), nil)})
}

// CreateEscrowDstHandler deploys destination escrows.
type CreateEscrowDstHandler struct {
	auth    x.Authenticator
	factory Factory
}

var _ xswap.Handler = CreateEscrowDstHandler{}

func NewCreateEscrowDstHandler(auth x.Authenticator, f Factory) CreateEscrowDstHandler {
	return CreateEscrowDstHandler{auth: auth, factory: f}
}

func (h CreateEscrowDstHandler) Check(ctx xswap.Context, db xswap.KVStore, tx xswap.Tx) (*xswap.CheckResult, error) {
	if _, _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &xswap.CheckResult{GasAllocated: createEscrowCost}, nil
}

// Deliver creates the escrow and returns its address as the result data.
func (h CreateEscrowDstHandler) Deliver(ctx xswap.Context, db xswap.KVStore, tx xswap.Tx) (*xswap.DeliverResult, error) {
	msg, conf, depositor, d, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.factory.Deploy(db, conf, d, depositor, msg.Funds); err != nil {
		return nil, err
	}

	commitment := d.Immutables.CommitmentHex()
	xswap.GetLogger(ctx).Info("escrow created",
		"escrow", d.Address,
		"hashlock", d.Immutables.Hashlock,
		"taker", d.Immutables.Taker,
		"funds", msg.Funds.String())

	res := &xswap.DeliverResult{Data: d.Address}
	res.Tag("method", "create_escrow_dst")
	res.Tag("escrow_address", d.Address.String())
	res.Tag("label", "escrow-dst-"+commitment[:8])
	res.Tag("hashlock", d.Immutables.Hashlock)
	res.Tag("taker", d.Immutables.Taker)
	res.Tag("deployed_at", strconv.FormatUint(d.Immutables.Timelocks.DeployedAt, 10))
	res.Tag("commitment", commitment)
	return res, nil
}

func (h CreateEscrowDstHandler) validate(ctx xswap.Context, db xswap.KVStore, tx xswap.Tx) (*CreateEscrowDstMsg, *Configuration, xswap.Address, *Deployment, error) {
	var msg CreateEscrowDstMsg
	if err := xswap.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, nil, errors.Wrap(err, "load msg")
	}
	depositor := x.MainSignerAddress(ctx, h.auth)
	if depositor == nil {
		return nil, nil, nil, nil, errors.Wrap(errors.ErrUnauthorized, "depositor signature required")
	}
	now, err := xswap.BlockUnix(ctx)
	if err != nil {
		return nil, nil, nil, nil, errors.Wrap(err, "block time")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	d, err := h.factory.Plan(db, conf, now, &msg)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return &msg, conf, depositor, d, nil
}

// AddressQuery predicts the escrow address of JSON encoded immutables. The
// immutables must carry the deployment time the escrow was or will be
// created with. The result key is the commitment and the value is the
// escrow address.
type AddressQuery struct {
	factory Factory
}

var _ xswap.QueryHandler = AddressQuery{}

func (q AddressQuery) Query(db xswap.ReadOnlyKVStore, mod string, data []byte) ([]xswap.Model, error) {
	if mod != xswap.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unsupported query mod %q", mod)
	}
	var im htlc.Immutables
	if err := json.Unmarshal(data, &im); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "immutables: %s", err)
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	addr, err := q.factory.AddressOf(db, conf, &im)
	if err != nil {
		return nil, err
	}
	return []xswap.Model{xswap.Pair(im.Commitment(), addr)}, nil
}
