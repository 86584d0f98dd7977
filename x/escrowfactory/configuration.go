package escrowfactory

import (
	"encoding/json"

	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/coin"
	"github.com/iov-one/xswap/errors"
	"github.com/iov-one/xswap/gconf"
	"github.com/iov-one/xswap/x/escrowdst"
	"github.com/iov-one/xswap/x/htlc"
)

const packageName = "escrowfactory"

// Configuration of the factory. It is shared by all creation requests.
type Configuration struct {
	// Address is the factory identity used as the deployer when escrow
	// addresses are derived.
	Address            xswap.Address          `json:"address"`
	EscrowCodeID       uint64                 `json:"escrow_code_id"`
	SafetyDepositDenom string                 `json:"safety_deposit_denom"`
	RescueDelay        uint32                 `json:"rescue_delay"`
	Verification       escrowdst.Verification `json:"verification"`
}

var _ gconf.Configuration = (*Configuration)(nil)

func (c *Configuration) Validate() error {
	var err error
	err = errors.AppendField(err, "Address", c.Address.Validate())
	if c.EscrowCodeID == 0 {
		err = errors.AppendField(err, "EscrowCodeID", errors.ErrEmpty)
	}
	if !coin.IsDenom(c.SafetyDepositDenom) {
		err = errors.AppendField(err, "SafetyDepositDenom",
			errors.Wrapf(htlc.ErrInvalidSafetyDepositToken, "Invalid safety deposit token: %s", c.SafetyDepositDenom))
	}
	if c.RescueDelay == 0 {
		err = errors.AppendField(err, "RescueDelay", errors.ErrEmpty)
	}
	switch c.Verification {
	case escrowdst.ByCommitment, escrowdst.ByAddress:
	default:
		err = errors.AppendField(err, "Verification", errors.ErrInput)
	}
	return err
}

func (c *Configuration) Marshal() ([]byte, error) {
	return xswap.MarshalBinary(c)
}

func (c *Configuration) Unmarshal(raw []byte) error {
	return xswap.UnmarshalBinary(raw, c)
}

// loadConf returns the stored factory configuration.
func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, packageName, &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}

// UnmarshalJSON applies the default rescue delay and verification mode to
// values missing from the document.
func (c *Configuration) UnmarshalJSON(raw []byte) error {
	type plain Configuration
	p := plain{
		RescueDelay:  htlc.DefaultRescueDelay,
		Verification: escrowdst.ByCommitment,
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return err
	}
	*c = Configuration(p)
	return nil
}

// Initializer stores the factory configuration found in genesis under
// conf.escrowfactory. A genesis without factory configuration is valid,
// but no escrow can be created until it is present.
type Initializer struct{}

var _ xswap.Initializer = Initializer{}

func (Initializer) FromGenesis(opts xswap.Options, db xswap.KVStore) error {
	var conf Configuration
	err := gconf.InitConfig(db, opts, packageName, &conf)
	if errors.ErrNotFound.Is(err) {
		return nil
	}
	return err
}
