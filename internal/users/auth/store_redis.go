// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/constants"
)

// consumeScript deletes KEYS[1] only while it still holds ARGV[1].
var consumeScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisConfirmationStore implements [ConfirmationStore] using Redis.
type RedisConfirmationStore struct {
	client redis.UniversalClient
}

// NewConfirmationStore creates a new Redis-backed ConfirmationStore.
func NewConfirmationStore(client redis.UniversalClient) *RedisConfirmationStore {
	return &RedisConfirmationStore{client: client}
}

func confirmationKey(username string) string {
	return constants.RedisPrefixConfirmation + username
}

/*
Save stores the confirmation under the username, replacing any pending one.

Parameters:
  - context: context.Context
  - username: string
  - confirmation: *Confirmation
  - ttl: time.Duration

Returns:
  - error: Serialization or connectivity errors
*/
func (store *RedisConfirmationStore) Save(context context.Context, username string, confirmation *Confirmation, ttl time.Duration) error {
	payload, err := json.Marshal(confirmation)
	if err != nil {
		return fmt.Errorf("redis_confirmation_encode_failed: %w", err)
	}

	if err := store.client.Set(context, confirmationKey(username), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis_confirmation_set_failed: %w", err)
	}
	return nil
}

/*
Find retrieves the pending confirmation for username.

Returns:
  - *Confirmation: The stored entry
  - error: apperr.NotFound if absent or expired, connectivity errors otherwise
*/
func (store *RedisConfirmationStore) Find(context context.Context, username string) (*Confirmation, error) {
	payload, err := store.client.Get(context, confirmationKey(username)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Confirmation")
		}
		return nil, fmt.Errorf("redis_confirmation_get_failed: %w", err)
	}

	confirmation := &Confirmation{}
	if err := json.Unmarshal(payload, confirmation); err != nil {
		return nil, fmt.Errorf("redis_confirmation_decode_failed: %w", err)
	}
	return confirmation, nil
}

/*
Consume atomically deletes the confirmation for username if it still matches the
one the caller verified. Of two concurrent exchanges of the same code only one
sees the entry removed.

Returns:
  - error: apperr.NotFound if the entry expired, was consumed or was replaced
*/
func (store *RedisConfirmationStore) Consume(context context.Context, username string, confirmation *Confirmation) error {
	payload, err := json.Marshal(confirmation)
	if err != nil {
		return fmt.Errorf("redis_confirmation_encode_failed: %w", err)
	}

	deleted, err := consumeScript.Run(context, store.client, []string{confirmationKey(username)}, payload).Int()
	if err != nil {
		return fmt.Errorf("redis_confirmation_consume_failed: %w", err)
	}
	if deleted == 0 {
		return apperr.NotFound("Confirmation")
	}
	return nil
}
