package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/clinicdesk/clinic-scheduler/internal/domain/schedule"
)

const slotsTTL = 30 * time.Second

// SlotsCache keeps the resolved free slots for a date for a short window.
// Every mutation that can change a date's availability deletes its key.
// A nil *SlotsCache is a valid no-op cache, so the engine runs without
// Redis configured.
type SlotsCache struct {
	rdb *redis.Client
}

func New(addr, password string) *SlotsCache {
	if addr == "" {
		return nil
	}

	return &SlotsCache{
		rdb: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
	}
}

func key(date string) string {
	return "slots:" + date
}

func (c *SlotsCache) GetSlots(ctx context.Context, date string) ([]schedule.Slot, bool) {
	if c == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, key(date)).Result()
	if err != nil {
		return nil, false
	}

	var slots []schedule.Slot
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		return nil, false
	}

	return slots, true
}

func (c *SlotsCache) SetSlots(ctx context.Context, date string, slots []schedule.Slot) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}

	c.rdb.Set(ctx, key(date), raw, slotsTTL)
}

func (c *SlotsCache) Invalidate(ctx context.Context, dates ...string) {
	if c == nil {
		return
	}

	for _, d := range dates {
		c.rdb.Del(ctx, key(d))
	}
}

// InvalidateAll drops every cached date; used when availability windows or
// settings change, which affects all dates at once.
func (c *SlotsCache) InvalidateAll(ctx context.Context) {
	if c == nil {
		return
	}

	iter := c.rdb.Scan(ctx, 0, "slots:*", 0).Iterator()
	for iter.Next(ctx) {
		c.rdb.Del(ctx, iter.Val())
	}
}
