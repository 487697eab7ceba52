package navigation

import (
	"crypto/rand"
	"encoding/binary"
	"strconv"
	"sync"

	"go.uber.org/atomic"
)

// KeyGenerator returns a string that is unique within the process.
//
// [TabRouter] calls it when it creates route entries and navigator keys.
// Tests can supply a deterministic generator to assert exact keys.
type KeyGenerator func() string

// NewKeyGenerator returns the default KeyGenerator.
//
// Keys are a random process seed followed by a process-wide counter, both in
// base 36. All default generators share the seed and the counter, so no two
// of them ever return the same key.
func NewKeyGenerator() KeyGenerator {
	seed := processSeed()
	return func() string {
		return seed + strconv.FormatUint(processKeys.Inc(), 36)
	}
}

var (
	processSeed = sync.OnceValue(func() string {
		return strconv.FormatUint(randomSeed(), 36)
	})
	processKeys atomic.Uint64
)

// SequentialKeys returns a KeyGenerator yielding prefix1, prefix2, ...
func SequentialKeys(prefix string) KeyGenerator {
	var counter atomic.Uint64
	return func() string {
		return prefix + strconv.FormatUint(counter.Inc(), 10)
	}
}

func randomSeed() uint64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic("navigation: crypto/rand unavailable: " + err.Error())
	}
	// 32 bits keep keys short; the shared counter makes them unique.
	return uint64(binary.LittleEndian.Uint32(b[:]))
}
