// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"bytes"

	"github.com/pkg/errors"

	"github.com/vechain/tokenfarm/farm"
	"github.com/vechain/tokenfarm/kv"
	"github.com/vechain/tokenfarm/log"
	"github.com/vechain/tokenfarm/state"
)

var logger = log.WithContext("pkg", "genesis")

// metaBucket holds store level records, apart from contract storage.
const metaBucket = kv.Bucket("m")

// genesisKey holds the ID of the genesis the store was seeded with.
var genesisKey = []byte("genesis-id")

// Genesis to build the initial farm state.
type Genesis struct {
	builder *Builder
	id      farm.Bytes32
	name    string
}

func newGenesis(name string, builder *Builder) (*Genesis, error) {
	id, err := builder.ComputeID()
	if err != nil {
		return nil, err
	}
	return &Genesis{builder, id, name}, nil
}

// ID returns genesis ID.
func (g *Genesis) ID() farm.Bytes32 {
	return g.id
}

// Name returns network name.
func (g *Genesis) Name() string {
	return g.name
}

// Build seeds the state of stater.
func (g *Genesis) Build(stater *state.Stater) error {
	_, err := g.builder.build(stater, g.checkID)
	return err
}

func (g *Genesis) checkID(id farm.Bytes32, _ kv.Putter) error {
	if id != g.id {
		return errors.Errorf("genesis %v built with unexpected id %v", g.id, id)
	}
	return nil
}

// Setup seeds an empty store and records the genesis ID in it, in the same batch as
// the genesis state. A store seeded before is left untouched if it was seeded with
// the same genesis, and rejected otherwise.
func (g *Genesis) Setup(db kv.Store, stater *state.Stater) (seeded bool, err error) {
	meta := metaBucket.NewStore(db)
	stored, err := meta.Get(genesisKey)
	if err != nil && !meta.IsNotFound(err) {
		return false, errors.Wrap(err, "read genesis id")
	}
	if err == nil {
		if !bytes.Equal(stored, g.id.Bytes()) {
			return false, errors.Errorf("genesis mismatch: store has %v, want %v (%s)",
				farm.BytesToBytes32(stored), g.id, g.name)
		}
		logger.Info("store already seeded", "genesis", g.name, "id", g.id)
		return false, nil
	}

	_, err = g.builder.build(stater, func(id farm.Bytes32, batch kv.Putter) error {
		if err := g.checkID(id, batch); err != nil {
			return err
		}
		return batch.Put(metaBucket.Key(genesisKey), id.Bytes())
	})
	if err != nil {
		return false, err
	}
	logger.Info("seeded store", "genesis", g.name, "id", g.id)
	return true, nil
}
