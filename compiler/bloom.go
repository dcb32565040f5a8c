// Copyright 2025 The Dispatchkit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package compiler

import "hash/fnv"

// BloomFilter is a fixed-size bloom filter used for negative lookups on
// the static route table. A "no" answer is exact; a "yes" answer still
// requires the hash-table probe.
//
// Hash functions are derived from one FNV-1a base hash XORed with small
// seeds, so membership tests never allocate.
type BloomFilter struct {
	bits  []uint64
	size  uint64
	seeds []uint64
}

// NewBloomFilter creates a bloom filter with size bits and numHashFuncs
// derived hash functions.
func NewBloomFilter(size uint64, numHashFuncs int) *BloomFilter {
	if numHashFuncs < 1 {
		numHashFuncs = 1
	}
	bf := &BloomFilter{
		bits:  make([]uint64, (size+63)/64),
		size:  size,
		seeds: make([]uint64, numHashFuncs),
	}
	for i := 0; i < numHashFuncs; i++ {
		bf.seeds[i] = uint64(i + 1)
	}
	return bf
}

func (bf *BloomFilter) position(baseHash, seed uint64) uint64 {
	return (baseHash ^ seed) % bf.size
}

// Add records an element by its pre-computed FNV-1a hash.
func (bf *BloomFilter) Add(baseHash uint64) {
	for _, seed := range bf.seeds {
		pos := bf.position(baseHash, seed)
		bf.bits[pos/64] |= 1 << (pos % 64)
	}
}

// Test reports whether an element with the given pre-computed hash might
// be present. False means definitely absent.
func (bf *BloomFilter) Test(baseHash uint64) bool {
	for _, seed := range bf.seeds {
		pos := bf.position(baseHash, seed)
		if bf.bits[pos/64]&(1<<(pos%64)) == 0 {
			return false
		}
	}
	return true
}

// fnvHash returns the FNV-1a hash of the given key.
func fnvHash(key string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(key))
	return h.Sum64()
}
