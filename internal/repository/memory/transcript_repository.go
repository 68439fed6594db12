package memory

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// Transcript is the live text of an assistant reply that is still
// streaming. It exists only while the stream is in flight so that a
// reconnecting client can show the partial answer.
type Transcript struct {
	MessageId   uuid.UUID
	SessionId   uuid.UUID
	Accumulated string
	UpdatedAt   time.Time
}

type TranscriptRepository struct {
	cache *cache.Cache
}

func NewTranscriptRepository() *TranscriptRepository {
	// Streams last seconds to minutes; an hour of retention covers stalled
	// connections, and expired entries purge every 10 minutes.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &TranscriptRepository{
		cache: c,
	}
}

// The cache holds Transcript values, never pointers. Append stores a fresh
// copy and Get hands out a copy, so the streaming goroutine and a concurrent
// history read never touch the same struct.

func (r *TranscriptRepository) Save(t *Transcript) {
	r.cache.Set(t.MessageId.String(), *t, cache.DefaultExpiration)
}

func (r *TranscriptRepository) Append(messageId uuid.UUID, accumulated string) {
	if x, found := r.cache.Get(messageId.String()); found {
		t := x.(Transcript)
		t.Accumulated = accumulated
		t.UpdatedAt = time.Now()
		r.cache.Set(messageId.String(), t, cache.DefaultExpiration)
	}
}

func (r *TranscriptRepository) Get(messageId uuid.UUID) (*Transcript, bool) {
	if x, found := r.cache.Get(messageId.String()); found {
		t := x.(Transcript)
		return &t, true
	}
	return nil, false
}

func (r *TranscriptRepository) Delete(messageId uuid.UUID) {
	r.cache.Delete(messageId.String())
}
