package cache

import "time"

// BytesCache is a minimal cache API storing raw bytes with TTL. Used as an
// optional second level behind the in-process TTL memo.
type BytesCache interface {
	GetBytes(key string) (b []byte, ok bool, err error)
	SetBytes(key string, value []byte, ttl time.Duration) error
}
