// Package engine implements runTransaction, the orchestration spec §4.1
// describes: input dispatch under a trust discipline, reward injection,
// body execution, escrow closure check, and exception-safe storage commit.
package engine

import (
	"github.com/therewillbecode/Fae-1/config"
	"github.com/therewillbecode/Fae-1/crypto"
	"github.com/therewillbecode/Fae-1/log"
	"github.com/therewillbecode/Fae-1/runtime"
	"github.com/therewillbecode/Fae-1/storage"
	"github.com/therewillbecode/Fae-1/types"
)

// logDebug logs a single orchestration step, if logger is non-nil; callers
// that don't care to observe a run (most tests) pass a nil logger.
func logDebug(logger *log.Logger, args ...interface{}) {
	if logger != nil {
		logger.Debugln(args...)
	}
}

// InputArg is the argument an input contract is dispatched with (spec
// §4.1): either a literal wire value, or a reference to an earlier input's
// result under the current contract's trust set.
type InputArg struct {
	literal *types.Dynamic
	trusted *int
}

// Literal wraps a wire-level argument supplied directly by the transaction
// submitter.
func Literal(d types.Dynamic) InputArg { return InputArg{literal: &d} }

// Trusted references the i-th earlier input's result (spec §4.1:
// "Trusted(i) referring to the i-th earlier input's result").
func Trusted(i int) InputArg { return InputArg{trusted: &i} }

// Input is one (ContractID, InputArg) pair from spec §4.1's inputArgs.
type Input struct {
	ContractID types.ContractID
	Arg        InputArg
}

// Body is a transaction body (spec §4.1, §6's liftTX surface): it runs
// under the transaction's own frame, using only useEscrow/newEscrow/
// newContract — release and spend are structurally unreachable here, since
// Body has no continuation-returning signature the way runtime.Func does.
type Body func(f *runtime.Frame, args []interface{}) (interface{}, error)

// Declaration pairs a body with the TypeIDs it expects from the
// reconstructed input tuple, in order (spec §4.4). If the transaction is
// marked as a reward, ArgTypes must include one trailing entry for the
// injected reward escrow.
type Declaration struct {
	ArgTypes []types.TypeID
	Run      Body
}

// typedValue is an in-process stand-in for a Dynamic whose value never
// needs to leave Go-native representation: contract call results and the
// injected reward escrow carry their declared TypeID for the BadArgType
// checks of §4.1/§4.4 without a redundant encode/decode round trip through
// bytes, since they never cross outside this process. Only a truly
// external argument (InputArg.Literal) is decoded from real wire bytes.
type typedValue struct {
	Type  types.TypeID
	Value interface{}
}

// RunTransaction executes txID's inputs and body over storage (spec
// §4.1). On success it commits a TransactionEntry under txID and returns
// the body's result; on failure it installs a poisoned entry instead and
// returns the failure. Either way storage gains exactly one new
// TransactionID (spec §8 "No-leak on failure"), and no dispatch-time
// contract mutation is visible unless the whole run succeeds (spec §9
// "Exception-safe commit"). logger may be nil; when set, every
// orchestration step (dispatchInput, injectReward, runBody, checkClosure,
// commit) logs through it. cfg.Trust.Policy gates the trust discipline of
// a Trusted(i) input argument (spec §4.1 step 1); the zero EngineConfig
// behaves as TrustPolicyStrict.
func RunTransaction(
	s storage.Storage,
	registry types.Registry,
	txID types.TransactionID,
	signer crypto.PublicKey,
	isReward bool,
	inputs []Input,
	decl Declaration,
	signers map[string]crypto.PublicKey,
	cfg config.EngineConfig,
	logger *log.Logger,
) (interface{}, error) {
	result, entry, err := run(s, registry, signer, isReward, inputs, decl, signers, cfg, logger)
	if err != nil {
		s.Install(txID, storage.Poisoned(err))
		return nil, err
	}
	s.Install(txID, entry)
	return result, nil
}

func run(
	s storage.Storage,
	registry types.Registry,
	signer crypto.PublicKey,
	isReward bool,
	inputs []Input,
	decl Declaration,
	signers map[string]crypto.PublicKey,
	cfg config.EngineConfig,
	logger *log.Logger,
) (interface{}, *storage.TransactionEntry, error) {
	st := newStage(s)
	frame := runtime.NewFrame(signer)

	inputOutputs := map[types.ShortContractID]*storage.InputOutputVersions{}
	var inputOrder []types.ShortContractID
	var history []typedValue
	var historySource []types.ContractID

	for _, in := range inputs {
		cID := in.ContractID
		logDebug(logger, "dispatchInput", cID)
		slot, err := st.get(cID)
		if err != nil {
			return nil, nil, err
		}
		if slot.Contract == nil {
			return nil, nil, types.NewBadInput(cID)
		}

		arg, err := resolveArg(registry, slot.Contract, cID, in.Arg, history, historySource, cfg.Trust.Policy)
		if err != nil {
			return nil, nil, err
		}

		frame.Outputs = nil
		out, err := slot.Contract.Call(frame, arg.Value)
		if err != nil {
			return nil, nil, err
		}

		newOutputs := storage.NewOutputSlots(frame.Outputs)
		frame.Outputs = nil

		// A spent input's slot goes empty, preserving only its nonce
		// position (spec §4.1 step 1, invariant 1), so a later dispatch of
		// the same ContractID sees BadInput rather than re-invoking a
		// closed coroutine.
		next := slot.Contract
		if next.State() == runtime.StateSpent {
			next = nil
		}
		if err := st.update(cID, next); err != nil {
			return nil, nil, err
		}

		short := cID.Shorten()
		inputOutputs[short] = &storage.InputOutputVersions{
			RealID:   cID,
			Outputs:  newOutputs,
			Versions: map[types.VersionID]types.TypeID{},
		}
		inputOrder = append(inputOrder, short)

		history = append(history, typedValue{Type: slot.Contract.ReturnType(), Value: out})
		historySource = append(historySource, cID)
	}

	if isReward {
		logDebug(logger, "injectReward")
		entry, err := mintReward(frame)
		if err != nil {
			return nil, nil, err
		}
		history = append(history, entry)
	}

	args, err := reconstruct(history, decl)
	if err != nil {
		return nil, nil, err
	}

	frame.Outputs = nil
	logDebug(logger, "runBody")
	result, err := decl.Run(frame, args)
	if err != nil {
		return nil, nil, err
	}

	logDebug(logger, "checkClosure")
	if !frame.Closed() {
		return nil, nil, types.NewOpenEscrows()
	}

	logDebug(logger, "commit")
	if err := st.commit(); err != nil {
		// Every check that could reject this run (type, trust, nonce,
		// closure) has already passed by this point; a commit failure here
		// means real storage disagrees with the staging layer's own view of
		// it, an internal invariant violation rather than a data error.
		if logger != nil {
			logger.Severe("commit failed after a validated run", err)
		}
		return nil, nil, err
	}

	topOutputs := storage.NewOutputSlots(frame.Outputs)
	entry := storage.NewTransactionEntry(inputOutputs, inputOrder, topOutputs, signers, result)
	return result, entry, nil
}

// resolveArg produces the argument a dispatched contract is called with,
// enforcing the dispatch-time type check (invariant 5) and, for Trusted
// references, the trust discipline (spec §4.1 step 1) — except under
// config.TrustPolicyPermissive, which bypasses the trust-set check for
// local fixture runs.
func resolveArg(
	registry types.Registry,
	contract *runtime.Contract,
	cID types.ContractID,
	arg InputArg,
	history []typedValue,
	historySource []types.ContractID,
	policy config.TrustPolicy,
) (typedValue, error) {
	switch {
	case arg.literal != nil:
		d := *arg.literal
		if d.Type != contract.ArgType() {
			return typedValue{}, types.NewBadArgType(contract.ArgType(), d.Type)
		}
		v, err := decodeDynamic(registry, d)
		if err != nil {
			return typedValue{}, err
		}
		return typedValue{Type: d.Type, Value: v}, nil

	case arg.trusted != nil:
		i := *arg.trusted
		if i < 0 || i >= len(history) {
			return typedValue{}, types.NewBadChainedInput(cID, i)
		}
		source := historySource[i]
		if policy != config.TrustPolicyPermissive && !contract.Trusts(source.Shorten()) {
			return typedValue{}, types.NewUntrustedInput(cID, source)
		}
		v := history[i]
		if v.Type != contract.ArgType() {
			return typedValue{}, types.NewBadArgType(contract.ArgType(), v.Type)
		}
		return v, nil

	default:
		return typedValue{}, types.NewBadArgType(contract.ArgType(), "")
	}
}

func decodeDynamic(registry types.Registry, d types.Dynamic) (interface{}, error) {
	codec, ok := registry.Lookup(d.Type)
	if !ok {
		return nil, types.NewBadArgType(d.Type, d.Type)
	}
	v, err := codec.Decode(d.Bytes)
	if err != nil {
		return nil, &types.EngineError{Kind: types.ErrBadArgType, ExpectedType: d.Type, ActualType: d.Type, Wrapped: err}
	}
	return v, nil
}

// reconstruct builds the body's argument tuple from the dispatch results
// (spec §4.4): exactly one typedValue per declared field, in order, each
// matching its declared type.
func reconstruct(history []typedValue, decl Declaration) ([]interface{}, error) {
	if len(history) > len(decl.ArgTypes) {
		return nil, types.NewTooManyInputs()
	}
	if len(history) < len(decl.ArgTypes) {
		return nil, types.NewNotEnoughInputs()
	}
	args := make([]interface{}, len(history))
	for i, v := range history {
		if v.Type != decl.ArgTypes[i] {
			return nil, types.NewBadArgType(decl.ArgTypes[i], v.Type)
		}
		args[i] = v.Value
	}
	return args, nil
}
