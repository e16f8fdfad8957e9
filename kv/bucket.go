// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

// Bucket namespaces keys of a shared store under a fixed prefix.
type Bucket string

// Key returns key with the bucket prefix prepended.
func (b Bucket) Key(key []byte) []byte {
	k := make([]byte, 0, len(b)+len(key))
	k = append(k, b...)
	return append(k, key...)
}

// NewStore returns a view of src confined to the bucket.
func (b Bucket) NewStore(src Store) Store {
	return &bucketStore{b, src}
}

type bucketStore struct {
	bucket Bucket
	src    Store
}

func (s *bucketStore) Get(key []byte) ([]byte, error) { return s.src.Get(s.bucket.Key(key)) }
func (s *bucketStore) Has(key []byte) (bool, error) { return s.src.Has(s.bucket.Key(key)) }
func (s *bucketStore) IsNotFound(err error) bool { return s.src.IsNotFound(err) }
func (s *bucketStore) Put(key, value []byte) error { return s.src.Put(s.bucket.Key(key), value) }
func (s *bucketStore) Delete(key []byte) error { return s.src.Delete(s.bucket.Key(key)) }

func (s *bucketStore) NewBatch() Batch {
	return &bucketBatch{s.bucket, s.src.NewBatch()}
}

type bucketBatch struct {
	bucket Bucket
	Batch
}

func (b *bucketBatch) Put(key, value []byte) error { return b.Batch.Put(b.bucket.Key(key), value) }
func (b *bucketBatch) Delete(key []byte) error { return b.Batch.Delete(b.bucket.Key(key)) }
