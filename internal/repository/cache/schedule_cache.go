package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"dentalcare-be/internal/dto"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ScheduleCache holds resolved day schedules in Redis so repeated lookups
// for the same dentist and date skip the resolver. Writes to a dentist's
// slots must invalidate their entries.
type ScheduleCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewScheduleCache(client *redis.Client) *ScheduleCache {
	return &ScheduleCache{
		client: client,
		ttl:    5 * time.Minute,
	}
}

func dayKey(dentistId uuid.UUID, date string) string {
	return fmt.Sprintf("schedule:day:%s:%s", dentistId, date)
}

func (c *ScheduleCache) GetDay(ctx context.Context, dentistId uuid.UUID, date string) (*dto.DayScheduleResponse, bool) {
	raw, err := c.client.Get(ctx, dayKey(dentistId, date)).Bytes()
	if err != nil {
		return nil, false
	}
	var res dto.DayScheduleResponse
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, false
	}
	return &res, true
}

func (c *ScheduleCache) SetDay(ctx context.Context, res *dto.DayScheduleResponse) error {
	raw, err := json.Marshal(res)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, dayKey(res.DentistId, res.Date), raw, c.ttl).Err()
}

// InvalidateDentist drops every cached day for one dentist.
func (c *ScheduleCache) InvalidateDentist(ctx context.Context, dentistId uuid.UUID) error {
	pattern := fmt.Sprintf("schedule:day:%s:*", dentistId)
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
