package escrowdst

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/coin"
	"github.com/iov-one/xswap/errors"
	"github.com/iov-one/xswap/orm"
	"github.com/iov-one/xswap/x/htlc"
)

// State of an escrow.
type State int32

const (
	Active State = iota + 1
	Withdrawn
	Cancelled
	Rescued
)

var stateNames = map[State]string{
	Active:    "active",
	Withdrawn: "withdrawn",
	Cancelled: "cancelled",
	Rescued:   "rescued",
}

func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return "unknown"
}

func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Terminal returns true for states that hold no swap obligation.
func (s State) Terminal() bool {
	return s == Withdrawn || s == Cancelled || s == Rescued
}

// Verification selects how an escrow checks that supplied terms are the
// ones it was created with.
type Verification int32

const (
	// ByCommitment compares the commitment of the supplied terms with
	// the one stored at creation.
	ByCommitment Verification = iota + 1
	// ByAddress derives the escrow address from the supplied terms and
	// compares it with the escrow address.
	ByAddress
)

// ParseVerification reads the textual name of a verification mode. An empty
// name selects ByCommitment.
func ParseVerification(s string) (Verification, error) {
	switch strings.ToLower(s) {
	case "", "commitment":
		return ByCommitment, nil
	case "address":
		return ByAddress, nil
	default:
		return 0, errors.Wrapf(errors.ErrInput, "unknown verification %q", s)
	}
}

func (v Verification) String() string {
	switch v {
	case ByCommitment:
		return "commitment"
	case ByAddress:
		return "address"
	default:
		return "unknown"
	}
}

func (v Verification) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

func (v *Verification) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrap(errors.ErrInput, "verification must be a string")
	}
	parsed, err := ParseVerification(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Escrow is the persisted configuration of a single escrow instance. The
// swap terms are not stored, only the data required to verify them.
type Escrow struct {
	Address            xswap.Address `json:"address"`
	Factory            xswap.Address `json:"factory"`
	CodeChecksum       []byte        `json:"code_checksum"`
	Commitment         []byte        `json:"commitment"`
	Verification       Verification  `json:"verification"`
	SafetyDepositDenom string        `json:"safety_deposit_denom"`
	RescueDelay        uint32        `json:"rescue_delay"`
	State              State         `json:"state"`
	// Hashlock and Taker are kept for lookups only.
	Hashlock  string `json:"hashlock"`
	Taker     string `json:"taker"`
	CreatedAt uint64 `json:"created_at"`
}

var _ orm.Model = (*Escrow)(nil)

func (e *Escrow) Validate() error {
	var err error
	err = errors.AppendField(err, "Address", e.Address.Validate())
	err = errors.AppendField(err, "Factory", e.Factory.Validate())
	if len(e.Commitment) != 32 {
		err = errors.AppendField(err, "Commitment", errors.Wrap(errors.ErrInput, "must be 32 bytes"))
	}
	switch e.Verification {
	case ByCommitment:
	case ByAddress:
		if len(e.CodeChecksum) != 32 {
			err = errors.AppendField(err, "CodeChecksum", errors.Wrap(errors.ErrInput, "must be 32 bytes"))
		}
	default:
		err = errors.AppendField(err, "Verification", errors.ErrInput)
	}
	if !coin.IsDenom(e.SafetyDepositDenom) {
		err = errors.AppendField(err, "SafetyDepositDenom", htlc.ErrInvalidSafetyDepositToken)
	}
	if _, ok := stateNames[e.State]; !ok {
		err = errors.AppendField(err, "State", errors.ErrState)
	}
	return err
}

func (e *Escrow) Marshal() ([]byte, error) {
	return xswap.MarshalBinary(e)
}

func (e *Escrow) Unmarshal(raw []byte) error {
	return xswap.UnmarshalBinary(raw, e)
}

// VerifyTerms returns ErrInvalidImmutables unless the terms are the ones
// this escrow was created with.
func (e *Escrow) VerifyTerms(im *htlc.Immutables) error {
	switch e.Verification {
	case ByAddress:
		addr, err := htlc.EscrowAddress(e.CodeChecksum, e.Factory, im)
		if err != nil {
			return errors.Wrap(htlc.ErrInvalidImmutables, err.Error())
		}
		if !addr.Equals(e.Address) {
			return errors.Wrap(htlc.ErrInvalidImmutables, "address mismatch")
		}
	case ByCommitment:
		if !bytes.Equal(im.Commitment(), e.Commitment) {
			return errors.Wrap(htlc.ErrInvalidImmutables, "commitment mismatch")
		}
	default:
		return errors.Wrapf(errors.ErrState, "unknown verification %d", e.Verification)
	}
	return nil
}

// Bucket stores escrows under their address.
type Bucket struct {
	orm.Bucket
}

// NewBucket returns the escrow bucket with a hashlock index.
func NewBucket() Bucket {
	return Bucket{
		Bucket: orm.NewBucket("escrows", orm.NewSimpleObj(nil, &Escrow{})).
			WithIndex("hashlock", hashlockIndex, false),
	}
}

func hashlockIndex(obj orm.Object) ([]byte, error) {
	e, ok := obj.Value().(*Escrow)
	if !ok {
		return nil, errors.WithType(errors.ErrModel, obj.Value())
	}
	return HashlockKey(e.Hashlock), nil
}

// HashlockKey normalizes a hashlock into its index key.
func HashlockKey(hashlock string) []byte {
	h := strings.ToLower(hashlock)
	h = strings.TrimPrefix(h, "0x")
	return []byte(h)
}

// GetEscrow returns the escrow at given address or ErrNotFound.
func (b Bucket) GetEscrow(db xswap.ReadOnlyKVStore, addr xswap.Address) (*Escrow, error) {
	obj, err := b.Get(db, addr)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "escrow %s", addr)
	}
	e, ok := obj.Value().(*Escrow)
	if !ok {
		return nil, errors.WithType(errors.ErrModel, obj.Value())
	}
	return e, nil
}

// ByHashlock returns all escrows locked with given hashlock.
func (b Bucket) ByHashlock(db xswap.ReadOnlyKVStore, hashlock string) ([]*Escrow, error) {
	objs, err := b.GetIndexed(db, "hashlock", HashlockKey(hashlock))
	if err != nil {
		return nil, err
	}
	res := make([]*Escrow, 0, len(objs))
	for _, o := range objs {
		e, ok := o.Value().(*Escrow)
		if !ok {
			return nil, errors.WithType(errors.ErrModel, o.Value())
		}
		res = append(res, e)
	}
	return res, nil
}

// SaveEscrow persists the escrow under its address.
func (b Bucket) SaveEscrow(db xswap.KVStore, e *Escrow) error {
	return b.Save(db, orm.NewSimpleObj(e.Address, e))
}

// Instantiate persists a new active escrow. An escrow can be instantiated
// only once at a given address.
func (b Bucket) Instantiate(db xswap.KVStore, e *Escrow) error {
	if b.Has(db, e.Address) {
		return errors.Wrapf(errors.ErrDuplicate, "escrow %s", e.Address)
	}
	e.State = Active
	return b.SaveEscrow(db, e)
}
