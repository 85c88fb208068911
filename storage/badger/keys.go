package badger

import (
	"encoding/binary"
	"time"
)

// Key prefixes for different data types
const (
	itemPrefix     = "item"
	itemUserPrefix = "itemu"
)

// makeItemKey generates the primary key for an item by ID.
func makeItemKey(id string) []byte {
	return []byte(itemPrefix + ":" + id)
}

// makeItemUserKey generates a composite key for the per-user recency
// index. Format: prefix:userID:timestamp:itemID, with the timestamp in
// BigEndian so lexicographic iteration walks items in creation order.
func makeItemUserKey(userID string, createdAt time.Time, id string) []byte {
	prefix := []byte(itemUserPrefix + ":" + userID + ":")
	buf := make([]byte, len(prefix)+8+1+len(id))
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(createdAt.UnixMicro()))
	offset += 8
	buf[offset] = ':'
	offset++
	copy(buf[offset:], id)
	return buf
}

// makeItemUserPrefix generates the iteration prefix covering all of a
// user's index entries.
func makeItemUserPrefix(userID string) []byte {
	return []byte(itemUserPrefix + ":" + userID + ":")
}
