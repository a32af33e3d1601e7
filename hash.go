package astcore

import (
	"encoding/binary"
	"hash"
	"hash/fnv"
)

// NewHash returns the hash algorithm astcore mixes node content with.
// Package consumers may override this before running any diff if the value
// space is particularly large; the default is 64-bit FNV-1a, fast and cheap
// for non-cryptographic content fingerprinting.
var NewHash = func() hash.Hash64 {
	return fnv.New64a()
}

// Hasher caches simple, local and absolute hashes by node identity. Because
// astcore nodes are immutable, caching by pointer identity is always sound.
// A Hasher is created fresh per mapping run (see ExtIndex) and must not
// outlive it.
type Hasher struct {
	simple, local, absolute map[Node]uint64
}

// NewHasher returns an empty, ready-to-use Hasher.
func NewHasher() *Hasher {
	return &Hasher{
		simple:   make(map[Node]uint64),
		local:    make(map[Node]uint64),
		absolute: make(map[Node]uint64),
	}
}

// Simple hashes only a node's own type and data, ignoring children. Used to
// cluster identical leaves by surface features alone.
func (h *Hasher) Simple(n Node) uint64 {
	if v, ok := h.simple[n]; ok {
		return v
	}
	v := simpleHash(n)
	h.simple[n] = v
	return v
}

// Local hashes a node's type, data and child count, ignoring descendants.
// Used by the top-down algorithm to detect same-shape-but-different-
// descendants candidates.
func (h *Hasher) Local(n Node) uint64 {
	if v, ok := h.local[n]; ok {
		return v
	}
	v := localHash(n)
	h.local[n] = v
	return v
}

// Absolute deep-hashes a node's whole subtree: type, data, and recursively
// every child's absolute hash, in order. Two subtrees with equal absolute
// hash are structurally equal modulo hash collisions.
func (h *Hasher) Absolute(n Node) uint64 {
	if v, ok := h.absolute[n]; ok {
		return v
	}
	m := newMix()
	m.writeString(n.Type().Name())
	m.writeString(n.Data())
	for _, ch := range n.Children() {
		m.writeUint64(h.Absolute(ch))
	}
	v := m.sum()
	h.absolute[n] = v
	return v
}

// SimpleHash, LocalHash and AbsoluteHash compute a hash without caching -
// for one-off use outside a mapping run, e.g. draft-node round-trip tests.
// Inside a mapping run, prefer a Hasher (or the precomputed hashes an
// ExtIndex already carries).
func SimpleHash(n Node) uint64 { return simpleHash(n) }
func LocalHash(n Node) uint64  { return localHash(n) }
func AbsoluteHash(n Node) uint64 {
	return NewHasher().Absolute(n)
}

func simpleHash(n Node) uint64 {
	m := newMix()
	m.writeString(n.Type().Name())
	m.writeString(n.Data())
	return m.sum()
}

func localHash(n Node) uint64 {
	m := newMix()
	m.writeString(n.Type().Name())
	m.writeString(n.Data())
	m.writeUint64(uint64(len(n.Children())))
	return m.sum()
}

// mix wraps NewHash's hash.Hash64 so fields are length-prefixed before being
// written - without that, hashing "Foo"+"Bar" would collide with "FooB"+"ar".
type mix struct {
	h hash.Hash64
}

func newMix() *mix { return &mix{h: NewHash()} }

func (m *mix) writeString(s string) {
	var lenBuf [8]byte
	binary.BigEndian.PutUint64(lenBuf[:], uint64(len(s)))
	m.h.Write(lenBuf[:])
	m.h.Write([]byte(s))
}

func (m *mix) writeUint64(v uint64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	m.h.Write(buf[:])
}

func (m *mix) sum() uint64 {
	return m.h.Sum64()
}
