package engine

import (
	"github.com/therewillbecode/Fae-1/runtime"
	"github.com/therewillbecode/Fae-1/storage"
	"github.com/therewillbecode/Fae-1/types"
)

// stage shadows storage.Storage for the duration of one run (spec §9
// "Exception-safe commit": "execute the transaction into a staging
// structure; only on success swap it into the storage map ... avoid
// partial in-place mutation"). The first read or update of a slot copies it
// from real storage into a shadow, and the shadow copy is authoritative for
// the rest of this run. Nothing touches real storage until commit.
type stage struct {
	real  storage.Storage
	over  map[types.ShortContractID]*storage.OutputSlot
	cID   map[types.ShortContractID]types.ContractID
	order []types.ShortContractID
}

func newStage(s storage.Storage) *stage {
	return &stage{
		real: s,
		over: map[types.ShortContractID]*storage.OutputSlot{},
		cID:  map[types.ShortContractID]types.ContractID{},
	}
}

// get resolves cID, preferring this run's own prior updates over real
// storage, so a ContractID dispatched more than once in the same
// transaction observes its own in-run state. The first read of a slot
// still backed only by real storage clones its Contract (spec §9
// "avoid partial in-place mutation") before recording it as this run's own
// shadow copy: callers go on to Call the returned slot's Contract, and that
// must never advance the coroutine state of the object actually sitting in
// real storage until commit.
func (st *stage) get(cID types.ContractID) (*storage.OutputSlot, error) {
	key := cID.Shorten()
	if shadow, ok := st.over[key]; ok {
		if cID.Nonce != nil && *cID.Nonce != shadow.Nonce {
			return nil, types.NewBadNonce(cID, shadow.Nonce, *cID.Nonce)
		}
		return shadow, nil
	}
	return st.shadowFromReal(cID, key)
}

// shadowFromReal reads cID from real storage, clones its Contract, and
// records the clone as this run's shadow slot for key, returning it.
func (st *stage) shadowFromReal(cID types.ContractID, key types.ShortContractID) (*storage.OutputSlot, error) {
	real, err := st.real.Get(cID)
	if err != nil {
		return nil, err
	}
	var clone *runtime.Contract
	if real.Contract != nil {
		clone = real.Contract.Clone()
	}
	shadow := &storage.OutputSlot{Contract: clone, Nonce: real.Nonce}
	st.over[key] = shadow
	st.cID[key] = cID
	st.order = append(st.order, key)
	return shadow, nil
}

// update records cID's slot as occupied by next, incrementing its working
// nonce, without touching real storage.
func (st *stage) update(cID types.ContractID, next *runtime.Contract) error {
	key := cID.Shorten()
	shadow, ok := st.over[key]
	if !ok {
		var err error
		shadow, err = st.shadowFromReal(cID, key)
		if err != nil {
			return err
		}
	}
	shadow.Contract = next
	shadow.Nonce++
	return nil
}

// commit applies every shadowed slot to real storage in the order first
// touched. Called only once the whole run has succeeded.
func (st *stage) commit() error {
	for _, key := range st.order {
		shadow := st.over[key]
		if err := st.real.SetSlot(st.cID[key], shadow.Contract, shadow.Nonce); err != nil {
			return err
		}
	}
	return nil
}
