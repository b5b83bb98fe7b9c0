package champ

import (
	"bytes"
	"hash/maphash"
	"reflect"

	"github.com/sirgallo/champ/common/murmur"
)


//============================================= Hashing


// Hasher defines a hash function and an equivalence relation over values
// of type T. It is supplied once per Map instantiation as a type
// parameter (see Map[K, V, KH, VH]) rather than as a runtime-pluggable
// value: one hash function per key type suffices, and pinning it to the
// type parameter keeps two Maps of the same instantiation trivially
// compatible.
type Hasher[T any] interface {
	// Hash returns a deterministic 32 bit hash for v. It must agree with
	// Equal: Equal(a, b) implies Hash(a) == Hash(b).
	Hash(v T) uint32

	// Equal reports whether a and b are the same key.
	Equal(a, b T) bool
}

// ComparableHasher is a Hasher for any comparable type, using Go's
// built-in == for equality and hash/maphash (seeded once per process)
// for hashing. This is the default choice for ordinary key types (string,
// int, and other comparable types).
type ComparableHasher[T comparable] struct{}

var comparableHasherSeed = maphash.MakeSeed()

// Hash implements Hasher.
func (ComparableHasher[T]) Hash(v T) uint32 {
	var h maphash.Hash
	h.SetSeed(comparableHasherSeed)
	maphash.WriteComparable(&h, v)
	return avalanche32(uint32(h.Sum64()))
}

// Equal implements Hasher.
func (ComparableHasher[T]) Equal(a, b T) bool {
	return a == b
}

// StringHasher is a Hasher[string] that hashes the raw bytes of the
// string with maphash, bypassing WriteComparable's generic path. Provided
// as the common case callers reach for most often.
type StringHasher struct{}

// Hash implements Hasher.
func (StringHasher) Hash(v string) uint32 {
	return avalanche32(uint32(maphash.String(comparableHasherSeed, v)))
}

// Equal implements Hasher.
func (StringHasher) Equal(a, b string) bool {
	return a == b
}

// bytesHasherSeed seeds BytesHasher's Murmur32 calls. A fixed seed keeps
// Hash deterministic across a process's lifetime; it need not be stable
// across processes or builds.
const bytesHasherSeed uint32 = 0x9747b28c

// BytesHasher is a Hasher[[]byte] for raw byte-slice keys, the
// non-comparable-K case Map[K, V, KH, VH]'s K any (rather than
// K comparable) constraint exists to support. Hashing is delegated to
// common/murmur.Murmur32, a non-cryptographic hash built for exactly
// this input shape.
type BytesHasher struct{}

// Hash implements Hasher.
func (BytesHasher) Hash(v []byte) uint32 {
	return murmur.Murmur32(v, bytesHasherSeed)
}

// Equal implements Hasher.
func (BytesHasher) Equal(a, b []byte) bool {
	return bytes.Equal(a, b)
}

// avalanche32 is a 32 bit finalization mix with the same xor-shift /
// multiply shape as common/murmur.Murmur32's tail, but with the standard
// MurmurHash3 fmix32 multipliers (Murmur32's own tail multiplies by
// different constants). Its rounds spread entropy across all 32 bits, so
// low-quality or narrow-range hash inputs still distribute well across
// trie fragments.
func avalanche32(h uint32) uint32 {
	h ^= h >> 16
	h *= 0x85ebca6b
	h ^= h >> 13
	h *= 0xc2b2ae35
	h ^= h >> 16
	return h
}

// keyOps bundles the hash and equality functions threaded through the
// core trie algorithms (lookup, mutate, shrink), so free functions only
// need to carry one value instead of two. It is built once per facade
// operation from the Map's KH Hasher[K] type parameter.
type keyOps[K any] struct {
	hash func(K) uint32
	eq   func(a, b K) bool
}

func newKeyOps[K any, KH Hasher[K]]() keyOps[K] {
	var h KH
	return keyOps[K]{hash: h.Hash, eq: h.Equal}
}

// valueEqual reports whether two values of an unconstrained type V are
// equal, using reflect.DeepEqual. The mutation path does not carry a
// Hasher-style equality for V (only the facade-level value comparisons,
// such as Map.Hash/Map.Equal, use the VH Hasher[V]); this backs only the "replacing a value with an equal
// one is a no-op" short-circuit, and reflect.DeepEqual is the one
// general notion of value equality available when V carries no Equal
// method of its own.
func valueEqual[V any](a, b V) bool {
	return reflect.DeepEqual(a, b)
}
