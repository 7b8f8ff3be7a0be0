package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/therewillbecode/Fae-1/config"
	"github.com/therewillbecode/Fae-1/crypto"
	"github.com/therewillbecode/Fae-1/runtime"
	"github.com/therewillbecode/Fae-1/storage"
	"github.com/therewillbecode/Fae-1/types"
)

const (
	typeInt  types.TypeID = "int"
	typeUnit types.TypeID = "unit"
)

func freshTx(t *testing.T) types.TransactionID {
	return types.TransactionID(crypto.RandomDigest())
}

func testSigner(t *testing.T) crypto.PublicKey {
	pub, _ := crypto.GenerateKeyPair()
	return pub
}

// installIdentityContract installs a contract at TransactionOutput(tx0, 0) that
// returns its integer argument unchanged, declared over typeInt both ways.
func installIdentityContract(t *testing.T, s storage.Storage, signer crypto.PublicKey) types.ContractID {
	tx0 := freshTx(t)
	frame := runtime.NewFrame(signer)
	c := runtime.NewTypedContract(frame, typeInt, typeInt, nil, func(f *runtime.Frame, arg interface{}) (runtime.Func, interface{}, bool) {
		return runtime.Spend(arg)
	})
	entry := storage.NewTransactionEntry(nil, nil, storage.NewOutputSlots([]*runtime.Contract{c}), nil, nil)
	s.Install(tx0, entry)
	return types.TransactionOutput(tx0, 0)
}

func intCodec() types.Registry {
	return types.MapRegistry{
		typeInt: intCodecValue{},
	}
}

type intCodecValue struct{}

func (intCodecValue) Type() types.TypeID { return typeInt }
func (intCodecValue) Encode(v interface{}) ([]byte, error) {
	return []byte{byte(v.(int))}, nil
}
func (intCodecValue) Decode(b []byte) (interface{}, error) {
	return int(b[0]), nil
}

func TestScenarioLiteralIdentity(t *testing.T) {
	s := storage.New()
	signer := testSigner(t)
	cID := installIdentityContract(t, s, signer)

	txID := freshTx(t)
	decl := Declaration{
		ArgTypes: []types.TypeID{typeInt},
		Run: func(f *runtime.Frame, args []interface{}) (interface{}, error) {
			return args[0].(int) + 1, nil
		},
	}

	result, err := RunTransaction(s, intCodec(), txID, signer, false,
		[]Input{{ContractID: cID, Arg: Literal(types.Dynamic{Type: typeInt, Bytes: []byte{7}})}},
		decl, nil, config.Default(), nil)
	require.NoError(t, err)
	require.Equal(t, 8, result)

	entry, err := s.Entry(txID)
	require.NoError(t, err)
	order, err := entry.InputOrder()
	require.NoError(t, err)
	require.Equal(t, []types.ShortContractID{cID.Shorten()}, order)

	outputs, err := entry.Outputs()
	require.NoError(t, err)
	require.Empty(t, outputs)

	slot, err := s.Get(cID)
	require.NoError(t, err)
	require.Equal(t, uint64(1), slot.Nonce)
}

func TestScenarioTrustedChainingAccepted(t *testing.T) {
	s := storage.New()
	signer := testSigner(t)

	txA := freshTx(t)
	frameA := runtime.NewFrame(signer)
	cA := runtime.NewTypedContract(frameA, typeUnit, typeInt, nil, func(f *runtime.Frame, arg interface{}) (runtime.Func, interface{}, bool) {
		return runtime.Spend(42)
	})
	s.Install(txA, storage.NewTransactionEntry(nil, nil, storage.NewOutputSlots([]*runtime.Contract{cA}), nil, nil))
	aID := types.TransactionOutput(txA, 0)

	txB := freshTx(t)
	frameB := runtime.NewFrame(signer)
	cB := runtime.NewTypedContract(frameB, typeInt, typeInt, map[types.ShortContractID]bool{aID.Shorten(): true},
		func(f *runtime.Frame, arg interface{}) (runtime.Func, interface{}, bool) {
			return runtime.Spend(arg)
		})
	s.Install(txB, storage.NewTransactionEntry(nil, nil, storage.NewOutputSlots([]*runtime.Contract{cB}), nil, nil))
	bID := types.TransactionOutput(txB, 0)

	txID := freshTx(t)
	decl := Declaration{
		ArgTypes: []types.TypeID{typeInt, typeInt},
		Run: func(f *runtime.Frame, args []interface{}) (interface{}, error) {
			return args[1], nil
		},
	}
	registry := types.MapRegistry{typeUnit: unitCodec{}}

	result, err := RunTransaction(s, registry, txID, signer, false, []Input{
		{ContractID: aID, Arg: Literal(types.Dynamic{Type: typeUnit})},
		{ContractID: bID, Arg: Trusted(0)},
	}, decl, nil, config.Default(), nil)

	require.NoError(t, err)
	require.Equal(t, 42, result)
}

type unitCodec struct{}

func (unitCodec) Type() types.TypeID                    { return typeUnit }
func (unitCodec) Encode(v interface{}) ([]byte, error)  { return nil, nil }
func (unitCodec) Decode(b []byte) (interface{}, error)  { return struct{}{}, nil }

func TestScenarioTrustedChainingRejected(t *testing.T) {
	s := storage.New()
	signer := testSigner(t)

	txA := freshTx(t)
	frameA := runtime.NewFrame(signer)
	cA := runtime.NewTypedContract(frameA, typeUnit, typeInt, nil, func(f *runtime.Frame, arg interface{}) (runtime.Func, interface{}, bool) {
		return runtime.Spend(42)
	})
	s.Install(txA, storage.NewTransactionEntry(nil, nil, storage.NewOutputSlots([]*runtime.Contract{cA}), nil, nil))
	aID := types.TransactionOutput(txA, 0)

	txB := freshTx(t)
	frameB := runtime.NewFrame(signer)
	cB := runtime.NewTypedContract(frameB, typeInt, typeInt, map[types.ShortContractID]bool{}, // empty trust set
		func(f *runtime.Frame, arg interface{}) (runtime.Func, interface{}, bool) {
			return runtime.Spend(arg)
		})
	s.Install(txB, storage.NewTransactionEntry(nil, nil, storage.NewOutputSlots([]*runtime.Contract{cB}), nil, nil))
	bID := types.TransactionOutput(txB, 0)

	txID := freshTx(t)
	decl := Declaration{
		ArgTypes: []types.TypeID{typeInt, typeInt},
		Run: func(f *runtime.Frame, args []interface{}) (interface{}, error) {
			return args[1], nil
		},
	}
	registry := types.MapRegistry{typeUnit: unitCodec{}}

	_, err := RunTransaction(s, registry, txID, signer, false, []Input{
		{ContractID: aID, Arg: Literal(types.Dynamic{Type: typeUnit})},
		{ContractID: bID, Arg: Trusted(0)},
	}, decl, nil, config.Default(), nil)

	require.ErrorIs(t, err, types.KindError(types.ErrUntrustedInput))

	entry, err := s.Entry(txID)
	require.NoError(t, err)
	require.True(t, entry.Poisoned())
	_, resErr := entry.Result()
	require.ErrorIs(t, resErr, types.KindError(types.ErrUntrustedInput))
}

// TestScenarioTrustedChainingPermissivePolicyBypassesTrust exercises
// config.TrustPolicyPermissive: the same empty-trust-set shape that fails
// under the default strict policy must succeed once the policy is
// permissive, since resolveArg's trust-set check is the only thing
// rejecting it.
func TestScenarioTrustedChainingPermissivePolicyBypassesTrust(t *testing.T) {
	s := storage.New()
	signer := testSigner(t)

	txA := freshTx(t)
	frameA := runtime.NewFrame(signer)
	cA := runtime.NewTypedContract(frameA, typeUnit, typeInt, nil, func(f *runtime.Frame, arg interface{}) (runtime.Func, interface{}, bool) {
		return runtime.Spend(42)
	})
	s.Install(txA, storage.NewTransactionEntry(nil, nil, storage.NewOutputSlots([]*runtime.Contract{cA}), nil, nil))
	aID := types.TransactionOutput(txA, 0)

	txB := freshTx(t)
	frameB := runtime.NewFrame(signer)
	cB := runtime.NewTypedContract(frameB, typeInt, typeInt, map[types.ShortContractID]bool{}, // empty trust set
		func(f *runtime.Frame, arg interface{}) (runtime.Func, interface{}, bool) {
			return runtime.Spend(arg)
		})
	s.Install(txB, storage.NewTransactionEntry(nil, nil, storage.NewOutputSlots([]*runtime.Contract{cB}), nil, nil))
	bID := types.TransactionOutput(txB, 0)

	txID := freshTx(t)
	decl := Declaration{
		ArgTypes: []types.TypeID{typeInt, typeInt},
		Run: func(f *runtime.Frame, args []interface{}) (interface{}, error) {
			return args[1], nil
		},
	}
	registry := types.MapRegistry{typeUnit: unitCodec{}}

	permissive := config.Default()
	permissive.Trust.Policy = config.TrustPolicyPermissive

	result, err := RunTransaction(s, registry, txID, signer, false, []Input{
		{ContractID: aID, Arg: Literal(types.Dynamic{Type: typeUnit})},
		{ContractID: bID, Arg: Trusted(0)},
	}, decl, nil, permissive, nil)

	require.NoError(t, err)
	require.Equal(t, 42, result)
}

func TestScenarioEscrowConservationViolation(t *testing.T) {
	s := storage.New()
	signer := testSigner(t)

	txID := freshTx(t)
	decl := Declaration{
		ArgTypes: nil,
		Run: func(f *runtime.Frame, args []interface{}) (interface{}, error) {
			_, err := f.NewEscrow(nil, func(f *runtime.Frame, arg interface{}) (runtime.Func, interface{}, bool) {
				return runtime.Spend(nil)
			})
			return nil, err
		},
	}

	_, err := RunTransaction(s, types.MapRegistry{}, txID, signer, false, nil, decl, nil, config.Default(), nil)
	require.ErrorIs(t, err, types.KindError(types.ErrOpenEscrows))

	entry, err := s.Entry(txID)
	require.NoError(t, err)
	require.True(t, entry.Poisoned())
}

func TestScenarioRewardInjection(t *testing.T) {
	s := storage.New()
	signer := testSigner(t)
	txID := freshTx(t)

	decl := Declaration{
		ArgTypes: []types.TypeID{RewardType},
		Run: func(f *runtime.Frame, args []interface{}) (interface{}, error) {
			reward := args[0].(types.EscrowID[struct{}, RewardToken])
			entry, ok := reward.Resolved()
			require.True(t, ok)
			out, err := f.UseEscrow(entry, struct{}{})
			if err != nil {
				return nil, err
			}
			return out, nil
		},
	}

	result, err := RunTransaction(s, types.MapRegistry{}, txID, signer, true, nil, decl, nil, config.Default(), nil)
	require.NoError(t, err)
	require.Equal(t, RewardAmount, result)
}

func TestScenarioNonceCheck(t *testing.T) {
	s := storage.New()
	signer := testSigner(t)
	cID := installIdentityContract(t, s, signer)

	// Advance the slot's nonce to 2 via two direct Updates, bypassing a full
	// transaction run (spec §8 scenario 6 sets up "current nonce 2").
	frame := runtime.NewFrame(signer)
	bump := runtime.NewTypedContract(frame, typeInt, typeInt, nil, func(f *runtime.Frame, arg interface{}) (runtime.Func, interface{}, bool) {
		return runtime.Release(arg, func(f *runtime.Frame, arg interface{}) (runtime.Func, interface{}, bool) {
			return runtime.Release(arg, nil)
		})
	})
	require.NoError(t, s.Update(cID, bump))
	require.NoError(t, s.Update(cID, bump))

	txID := freshTx(t)
	decl := Declaration{
		ArgTypes: []types.TypeID{typeInt},
		Run: func(f *runtime.Frame, args []interface{}) (interface{}, error) {
			return args[0], nil
		},
	}

	wrongNonce := cID.WithNonce(1)
	_, err := RunTransaction(s, intCodec(), txID, signer, false,
		[]Input{{ContractID: wrongNonce, Arg: Literal(types.Dynamic{Type: typeInt, Bytes: []byte{1}})}},
		decl, nil, config.Default(), nil)

	require.ErrorIs(t, err, types.KindError(types.ErrBadNonce))
}

// TestScenarioTrustedChainingRejectedIsRetryable guards the exception-safety
// invariant spec §9 requires ("avoid partial in-place mutation"): dispatching
// A succeeds before B's missing trust fails the run, so A's real storage
// slot must come out of a failed run exactly as it went in — re-running the
// same shape a second time must fail for the same reason, not hit a
// different error because A was left Spent in real storage by the first,
// failed attempt.
func TestScenarioTrustedChainingRejectedIsRetryable(t *testing.T) {
	s := storage.New()
	signer := testSigner(t)

	txA := freshTx(t)
	frameA := runtime.NewFrame(signer)
	cA := runtime.NewTypedContract(frameA, typeUnit, typeInt, nil, func(f *runtime.Frame, arg interface{}) (runtime.Func, interface{}, bool) {
		return runtime.Spend(42)
	})
	s.Install(txA, storage.NewTransactionEntry(nil, nil, storage.NewOutputSlots([]*runtime.Contract{cA}), nil, nil))
	aID := types.TransactionOutput(txA, 0)

	txB := freshTx(t)
	frameB := runtime.NewFrame(signer)
	cB := runtime.NewTypedContract(frameB, typeInt, typeInt, map[types.ShortContractID]bool{}, // empty trust set
		func(f *runtime.Frame, arg interface{}) (runtime.Func, interface{}, bool) {
			return runtime.Spend(arg)
		})
	s.Install(txB, storage.NewTransactionEntry(nil, nil, storage.NewOutputSlots([]*runtime.Contract{cB}), nil, nil))
	bID := types.TransactionOutput(txB, 0)

	decl := Declaration{
		ArgTypes: []types.TypeID{typeInt, typeInt},
		Run: func(f *runtime.Frame, args []interface{}) (interface{}, error) {
			return args[1], nil
		},
	}
	registry := types.MapRegistry{typeUnit: unitCodec{}}

	for i := 0; i < 2; i++ {
		txID := freshTx(t)
		_, err := RunTransaction(s, registry, txID, signer, false, []Input{
			{ContractID: aID, Arg: Literal(types.Dynamic{Type: typeUnit})},
			{ContractID: bID, Arg: Trusted(0)},
		}, decl, nil, config.Default(), nil)
		require.ErrorIs(t, err, types.KindError(types.ErrUntrustedInput))
	}

	slot, err := s.Get(aID)
	require.NoError(t, err)
	require.Equal(t, uint64(0), slot.Nonce)
	require.NotNil(t, slot.Contract)
}
