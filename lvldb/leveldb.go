// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lvldb

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	leveldberrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/vechain/tokenfarm/kv"
	"github.com/vechain/tokenfarm/log"
	"github.com/vechain/tokenfarm/metrics"
)

var (
	logger = log.WithContext("pkg", "lvldb")

	metricBatchWrites = metrics.LazyLoadCounterVec("db_batch_writes_count", []string{"status"})
)

const minCacheMB, minHandles = 16, 16

var _ kv.StoreCloser = (*LevelDB)(nil)

// Options tunes a persistent instance. Values below the minimums are raised.
type Options struct {
	CacheMB int // split between block cache and write buffers
	Handles int // open files cache capacity
}

func (o Options) leveldb() *opt.Options {
	cache, handles := max(o.CacheMB, minCacheMB), max(o.Handles, minHandles)
	return &opt.Options{
		OpenFilesCacheCapacity: handles,
		BlockCacheCapacity:     cache / 2 * opt.MiB,
		WriteBuffer:            cache / 4 * opt.MiB, // two of these are used internally
		Filter:                 filter.NewBloomFilter(10),
	}
}

// LevelDB is a kv.Store backed by goleveldb.
type LevelDB struct {
	db *leveldb.DB
}

// New opens the store at path, creating it when missing. A store reported as
// corrupted is recovered once before giving up.
func New(path string, opts Options) (*LevelDB, error) {
	o := opts.leveldb()
	db, err := leveldb.OpenFile(path, o)
	if leveldberrors.IsCorrupted(err) {
		logger.Warn("store corrupted, recovering", "path", path, "err", err)
		db, err = leveldb.RecoverFile(path, o)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "open level db [%v]", path)
	}
	return &LevelDB{db}, nil
}

// NewMem opens a store living in memory only.
func NewMem() (*LevelDB, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), Options{}.leveldb())
	if err != nil {
		return nil, errors.Wrap(err, "open mem level db")
	}
	return &LevelDB{db}, nil
}

func (l *LevelDB) IsNotFound(err error) bool {
	return errors.Is(err, leveldb.ErrNotFound)
}

func (l *LevelDB) Get(key []byte) ([]byte, error) {
	return l.db.Get(key, nil)
}

func (l *LevelDB) Has(key []byte) (bool, error) {
	return l.db.Has(key, nil)
}

func (l *LevelDB) Put(key, value []byte) error {
	return l.db.Put(key, value, nil)
}

func (l *LevelDB) Delete(key []byte) error {
	return l.db.Delete(key, nil)
}

// Close releases the store. Later calls fail.
func (l *LevelDB) Close() error {
	return l.db.Close()
}

func (l *LevelDB) NewBatch() kv.Batch {
	return &batch{l.db, new(leveldb.Batch)}
}

type batch struct {
	db *leveldb.DB
	b  *leveldb.Batch
}

func (b *batch) Put(key, value []byte) error {
	b.b.Put(key, value)
	return nil
}

func (b *batch) Delete(key []byte) error {
	b.b.Delete(key)
	return nil
}

func (b *batch) Len() int {
	return b.b.Len()
}

// Write applies the buffered ops atomically.
func (b *batch) Write() error {
	err := b.db.Write(b.b, nil)
	status := "success"
	if err != nil {
		status = "failed"
	}
	metricBatchWrites().AddWithLabel(1, map[string]string{"status": status})
	return err
}
