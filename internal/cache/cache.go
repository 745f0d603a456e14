// Package cache implements the shared lookup directory mapping a user to
// the pod address holding their live in-app stream, per spec §4.6.
package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "notify_server"
	// userExpire is the 7-day TTL spec §3/§6 specifies for a frontend
	// stream's cache entry.
	userExpire = 7 * 24 * time.Hour
)

// Directory is the user -> pod-address lookup backed by Redis.
type Directory struct {
	client *redis.Client
}

func New(client *redis.Client) *Directory {
	return &Directory{client: client}
}

func key(userID int64) string {
	return keyPrefix + ":" + strconv.FormatInt(userID, 10)
}

// SaveUserLocation records that userID's live stream is held on podAddr,
// refreshing the 7-day TTL. Called on frontend/backstage createConnection.
func (d *Directory) SaveUserLocation(ctx context.Context, userID int64, podAddr string) error {
	return d.client.SetEx(ctx, key(userID), podAddr, userExpire).Err()
}

// GetUserLocation returns the pod address holding userID's stream, or ""
// with ok=false if the user has no recorded stream (offline).
func (d *Directory) GetUserLocation(ctx context.Context, userID int64) (addr string, ok bool, err error) {
	val, err := d.client.Get(ctx, key(userID)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// RemoveUserLocation evicts the cache entry for userID, called on
// closeConnection and on a detected stale-stream send failure.
func (d *Directory) RemoveUserLocation(ctx context.Context, userID int64) error {
	return d.client.Del(ctx, key(userID)).Err()
}
