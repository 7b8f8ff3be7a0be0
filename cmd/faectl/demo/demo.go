// Package demo holds a handful of canned transaction fixtures faectl run
// can execute end to end. A real deployment wires runTransaction to a host
// that compiles submitted user code into contracts (spec §1's interpreter
// collaborator, out of scope here); faectl stands in for that with a small
// registry of prebuilt Declarations so the CLI has something runnable.
package demo

import (
	"fmt"

	"github.com/therewillbecode/Fae-1/crypto"
	"github.com/therewillbecode/Fae-1/engine"
	"github.com/therewillbecode/Fae-1/runtime"
	"github.com/therewillbecode/Fae-1/storage"
	"github.com/therewillbecode/Fae-1/types"
)

const typeInt types.TypeID = "fae/demo-int"

type intCodec struct{}

func (intCodec) Type() types.TypeID                   { return typeInt }
func (intCodec) Encode(v interface{}) ([]byte, error)  { return []byte{byte(v.(int))}, nil }
func (intCodec) Decode(b []byte) (interface{}, error)  { return int(b[0]), nil }

// Fixture is a self-contained transaction ready to run: the storage it
// expects to read from, the inputs to dispatch, and the body to execute.
type Fixture struct {
	Storage  storage.Storage
	Registry types.Registry
	Signer   crypto.PublicKey
	IsReward bool
	Inputs   []engine.Input
	Decl     engine.Declaration
}

// Build constructs the named fixture, or an error if name isn't registered.
func Build(name string) (Fixture, error) {
	switch name {
	case "identity":
		return buildIdentity(), nil
	case "reward":
		return buildReward(), nil
	default:
		return Fixture{}, fmt.Errorf("demo: unknown fixture %q (want identity or reward)", name)
	}
}

func buildIdentity() Fixture {
	s := storage.New()
	signer, _ := crypto.GenerateKeyPair()

	tx0 := types.TransactionID(crypto.RandomDigest())
	frame := runtime.NewFrame(signer)
	c := runtime.NewTypedContract(frame, typeInt, typeInt, nil,
		func(f *runtime.Frame, arg interface{}) (runtime.Func, interface{}, bool) {
			return runtime.Spend(arg)
		})
	s.Install(tx0, storage.NewTransactionEntry(nil, nil, storage.NewOutputSlots([]*runtime.Contract{c}), nil, nil))

	cID := types.TransactionOutput(tx0, 0)

	return Fixture{
		Storage:  s,
		Registry: types.MapRegistry{typeInt: intCodec{}},
		Signer:   signer,
		Inputs: []engine.Input{
			{ContractID: cID, Arg: engine.Literal(types.Dynamic{Type: typeInt, Bytes: []byte{7}})},
		},
		Decl: engine.Declaration{
			ArgTypes: []types.TypeID{typeInt},
			Run: func(f *runtime.Frame, args []interface{}) (interface{}, error) {
				return args[0].(int) + 1, nil
			},
		},
	}
}

func buildReward() Fixture {
	s := storage.New()
	signer, _ := crypto.GenerateKeyPair()

	return Fixture{
		Storage:  s,
		Registry: types.MapRegistry{},
		Signer:   signer,
		IsReward: true,
		Decl: engine.Declaration{
			ArgTypes: []types.TypeID{engine.RewardType},
			Run: func(f *runtime.Frame, args []interface{}) (interface{}, error) {
				reward := args[0].(types.EscrowID[struct{}, engine.RewardToken])
				entry, _ := reward.Resolved()
				return f.UseEscrow(entry, struct{}{})
			},
		},
	}
}
