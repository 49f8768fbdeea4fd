package store

import "sync"

// Key construction sits on every read and write path, so key buffers
// come from a pool instead of being allocated per call. 256 bytes
// covers any record or association key this store builds: the longest
// is an association key holding a prefix plus two prefixed nanoids.
var keyPool = sync.Pool{
	New: func() any {
		return make([]byte, 0, 256)
	},
}

// buildKey returns "{prefix}{suffix}" in a pooled buffer. The caller
// must hand the buffer back with releaseKey once the key is no longer
// referenced, and must not retain the slice after that.
func buildKey(prefix, suffix string) []byte {
	buf := keyPool.Get().([]byte)[:0]
	buf = append(buf, prefix...)
	buf = append(buf, suffix...)
	return buf
}

// buildAssocKey returns "{prefix}{owner}:{member}" in a pooled buffer,
// for example "idx:items:list:{listID}:{itemID}". Same release rules
// as buildKey.
func buildAssocKey(prefix, owner, member string) []byte {
	buf := keyPool.Get().([]byte)[:0]
	buf = append(buf, prefix...)
	buf = append(buf, owner...)
	buf = append(buf, ':')
	buf = append(buf, member...)
	return buf
}

// releaseKey puts a key buffer back in the pool. Buffers that grew
// past 512 bytes are dropped rather than pooled.
func releaseKey(key []byte) {
	if cap(key) <= 512 {
		keyPool.Put(key[:0])
	}
}
