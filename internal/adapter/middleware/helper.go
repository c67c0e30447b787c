package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

func bodyHash(b []byte) string { s := sha256.Sum256(b); return hex.EncodeToString(s[:]) }

func nowUTC() time.Time { return time.Now().UTC() }

var (
	reUUID  = regexp.MustCompile(`^[a-f0-9]{8}-[a-f0-9]{4}-[1-5][a-f0-9]{3}-[89ab][a-f0-9]{3}-[a-f0-9]{12}$`)
	reHex32 = regexp.MustCompile(`^[a-f0-9]{32}$`)
)

// validKey accepts a lowercase UUID (v1-v5) or 32 hex characters.
func validKey(k string) bool {
	return reUUID.MatchString(k) || reHex32.MatchString(k)
}

// idempStore keeps one JSON record per (method, route, caller, key).
type idempStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func (s idempStore) key(method, path, owner, ikey string) string {
	return "idemp:oalass:" + strings.ToLower(method) + ":" + path + ":" + owner + ":" + ikey
}

// reserve claims key with an in-progress marker; false means it already exists.
func (s idempStore) reserve(ctx context.Context, key, bhash string) (bool, error) {
	payload, _ := json.Marshal(idempEntry{InProgress: true, BodySHA256: bhash, CreatedAt: nowUTC()})
	return s.rdb.SetNX(ctx, key, payload, provisionalLockTTL).Result()
}

func (s idempStore) load(ctx context.Context, key string) (idempEntry, error) {
	var e idempEntry
	v, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return e, err
	}
	err = json.Unmarshal(v, &e)
	return e, err
}

// complete replaces the marker with the final response for the store TTL.
func (s idempStore) complete(ctx context.Context, key string, code int, body []byte, bhash string) error {
	payload, _ := json.Marshal(idempEntry{Code: code, Body: body, BodySHA256: bhash, CreatedAt: nowUTC()})
	return s.rdb.Set(ctx, key, payload, s.ttl).Err()
}

func (s idempStore) release(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}
