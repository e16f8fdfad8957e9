// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

// Getter reads values by key.
type Getter interface {
	// Get fails for a missing key with an error recognized by IsNotFound.
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
	IsNotFound(error) bool
}

// Putter writes and deletes values by key.
type Putter interface {
	Put(key, value []byte) error
	Delete(key []byte) error
}

// Batch buffers puts until Write applies them atomically.
type Batch interface {
	Putter

	Len() int
	Write() error
}

// Store is a kv store supporting atomic batches.
type Store interface {
	Getter
	Putter

	NewBatch() Batch
}

// StoreCloser is a Store owning underlying resources.
type StoreCloser interface {
	Store
	Close() error
}
