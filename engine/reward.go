package engine

import (
	"github.com/therewillbecode/Fae-1/runtime"
	"github.com/therewillbecode/Fae-1/types"
)

// RewardType tags the reward escrow injected by a reward transaction (spec
// §2: "a built-in one-shot escrow minted when the transaction is marked as
// a reward transaction"; §4.1 step 2).
const RewardType types.TypeID = "fae/reward-escrow"

// RewardToken is the value a reward escrow yields when used.
type RewardToken string

// RewardAmount is the reward escrow's declared mint amount; a fixed value
// keeps minting deterministic, matching §1's "The engine is deterministic
// given identical inputs and storage."
const RewardAmount RewardToken = "reward"

// mintReward allocates a fresh one-shot escrow under frame that accepts
// unit and returns RewardAmount, and wraps its EscrowID as the extra
// dynamic appended to the input results (spec §4.1 step 2: "mint a fresh
// reward escrow ... append its EscrowID (as a Dynamic) to the input
// results").
func mintReward(frame *runtime.Frame) (typedValue, error) {
	entry, err := frame.NewEscrow(nil, func(f *runtime.Frame, arg interface{}) (runtime.Func, interface{}, bool) {
		return runtime.Spend(RewardAmount)
	})
	if err != nil {
		return typedValue{}, err
	}
	return typedValue{Type: RewardType, Value: types.Direct[struct{}, RewardToken](entry)}, nil
}
