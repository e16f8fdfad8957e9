// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/vechain/tokenfarm/farm"
	"github.com/vechain/tokenfarm/kv"
	"github.com/vechain/tokenfarm/lvldb"
	"github.com/vechain/tokenfarm/runtime"
	"github.com/vechain/tokenfarm/state"
)

// Builder helper to build the genesis state.
type Builder struct {
	timestamp  uint64
	stateProcs []func(env *runtime.Env) error
}

// Timestamp set timestamp.
func (b *Builder) Timestamp(t uint64) *Builder {
	b.timestamp = t
	return b
}

// State add a state process.
func (b *Builder) State(proc func(env *runtime.Env) error) *Builder {
	b.stateProcs = append(b.stateProcs, proc)
	return b
}

// ComputeID compute genesis ID.
func (b *Builder) ComputeID() (farm.Bytes32, error) {
	db, err := lvldb.NewMem()
	if err != nil {
		return farm.Bytes32{}, err
	}
	defer db.Close()

	return b.Build(state.NewStater(db))
}

// Build runs the state processes and commits their result. It returns the genesis ID,
// a digest of the timestamp and every storage slot written.
func (b *Builder) Build(stater *state.Stater) (id farm.Bytes32, err error) {
	return b.build(stater, nil)
}

// build is Build with a hook run before the commit. Records put by onCommit land in the
// same batch as the genesis state, and an error from it leaves the store untouched.
func (b *Builder) build(stater *state.Stater, onCommit func(id farm.Bytes32, batch kv.Putter) error) (id farm.Bytes32, err error) {
	st := stater.NewState()
	env := runtime.NewEnv(st, b.timestamp)

	for _, proc := range b.stateProcs {
		if err := proc(env); err != nil {
			return farm.Bytes32{}, errors.Wrap(err, "state process")
		}
	}

	stage := st.Stage()
	root := stage.Hash()
	var ts [8]byte
	binary.BigEndian.PutUint64(ts[:], b.timestamp)
	id = farm.Blake2b(ts[:], root.Bytes())

	var extra func(kv.Putter) error
	if onCommit != nil {
		extra = func(batch kv.Putter) error { return onCommit(id, batch) }
	}
	if err := stage.CommitWith(extra); err != nil {
		return farm.Bytes32{}, errors.Wrap(err, "commit state")
	}
	return id, nil
}
