package htlc

import (
	"fmt"

	"github.com/iov-one/xswap/errors"
)

// DefaultRescueDelay is the offset, in seconds, after which funds left in
// an escrow can be rescued.
const DefaultRescueDelay uint32 = 86400

// Stage names a timelock offset.
type Stage int

const (
	SrcWithdrawal Stage = iota
	SrcPublicWithdrawal
	SrcCancellation
	SrcPublicCancellation
	DstWithdrawal
	DstPublicWithdrawal
	DstCancellation
)

var stageNames = [...]string{
	SrcWithdrawal:         "src_withdrawal",
	SrcPublicWithdrawal:   "src_public_withdrawal",
	SrcCancellation:       "src_cancellation",
	SrcPublicCancellation: "src_public_cancellation",
	DstWithdrawal:         "dst_withdrawal",
	DstPublicWithdrawal:   "dst_public_withdrawal",
	DstCancellation:       "dst_cancellation",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return fmt.Sprintf("stage(%d)", int(s))
	}
	return stageNames[s]
}

// Timelocks holds the deployment time and the stage offsets, in seconds,
// relative to it.
type Timelocks struct {
	DeployedAt            uint64 `json:"deployed_at"`
	SrcWithdrawal         uint32 `json:"src_withdrawal"`
	SrcPublicWithdrawal   uint32 `json:"src_public_withdrawal"`
	SrcCancellation       uint32 `json:"src_cancellation"`
	SrcPublicCancellation uint32 `json:"src_public_cancellation"`
	DstWithdrawal         uint32 `json:"dst_withdrawal"`
	DstPublicWithdrawal   uint32 `json:"dst_public_withdrawal"`
	DstCancellation       uint32 `json:"dst_cancellation"`
}

// Offset returns the configured offset of given stage.
func (t Timelocks) Offset(s Stage) uint32 {
	switch s {
	case SrcWithdrawal:
		return t.SrcWithdrawal
	case SrcPublicWithdrawal:
		return t.SrcPublicWithdrawal
	case SrcCancellation:
		return t.SrcCancellation
	case SrcPublicCancellation:
		return t.SrcPublicCancellation
	case DstWithdrawal:
		return t.DstWithdrawal
	case DstPublicWithdrawal:
		return t.DstPublicWithdrawal
	case DstCancellation:
		return t.DstCancellation
	default:
		panic(fmt.Sprintf("unknown timelock stage %d", int(s)))
	}
}

// StageTime returns the absolute unix time at which given stage begins.
func (t Timelocks) StageTime(s Stage) uint64 {
	return t.DeployedAt + uint64(t.Offset(s))
}

// RescueTime returns the absolute unix time after which funds can be
// rescued.
func (t Timelocks) RescueTime(delay uint32) uint64 {
	return t.DeployedAt + uint64(delay)
}

// Validate ensures the windows of each side do not overlap. The source
// side must satisfy withdrawal <= public withdrawal <= cancellation <=
// public cancellation and the destination side withdrawal <= public
// withdrawal <= cancellation.
func (t Timelocks) Validate() error {
	ordered := func(err error, side []Stage) error {
		for i := 1; i < len(side); i++ {
			prev, cur := side[i-1], side[i]
			if t.Offset(prev) > t.Offset(cur) {
				err = errors.Append(err, errors.Field("Timelocks", errors.ErrInput,
					"%s (%d) is after %s (%d)", prev, t.Offset(prev), cur, t.Offset(cur)))
			}
		}
		return err
	}
	var err error
	err = ordered(err, []Stage{SrcWithdrawal, SrcPublicWithdrawal, SrcCancellation, SrcPublicCancellation})
	err = ordered(err, []Stage{DstWithdrawal, DstPublicWithdrawal, DstCancellation})
	return err
}
