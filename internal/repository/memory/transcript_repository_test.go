package memory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscriptSaveAndGet(t *testing.T) {
	repo := NewTranscriptRepository()
	messageId := uuid.New()

	repo.Save(&Transcript{
		MessageId:   messageId,
		SessionId:   uuid.New(),
		Accumulated: "Hello",
	})

	got, found := repo.Get(messageId)
	require.True(t, found)
	assert.Equal(t, "Hello", got.Accumulated)
}

func TestTranscriptAppendReplacesAccumulated(t *testing.T) {
	repo := NewTranscriptRepository()
	messageId := uuid.New()

	repo.Save(&Transcript{MessageId: messageId})
	repo.Append(messageId, "Hel")
	repo.Append(messageId, "Hello there")

	got, found := repo.Get(messageId)
	require.True(t, found)
	assert.Equal(t, "Hello there", got.Accumulated)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestTranscriptAppendUnknownMessageIsNoop(t *testing.T) {
	repo := NewTranscriptRepository()
	messageId := uuid.New()

	repo.Append(messageId, "orphan")

	_, found := repo.Get(messageId)
	assert.False(t, found)
}

func TestTranscriptConcurrentAppendAndGet(t *testing.T) {
	repo := NewTranscriptRepository()
	messageId := uuid.New()
	repo.Save(&Transcript{MessageId: messageId})

	done := make(chan struct{})
	go func() {
		defer close(done)
		accumulated := ""
		for i := 0; i < 200; i++ {
			accumulated += "x"
			repo.Append(messageId, accumulated)
		}
	}()

	// A reconnecting client polls while the stream is still appending.
	for i := 0; i < 200; i++ {
		if got, found := repo.Get(messageId); found {
			_ = got.Accumulated
		}
	}
	<-done

	got, found := repo.Get(messageId)
	require.True(t, found)
	assert.Len(t, got.Accumulated, 200)
}

func TestTranscriptGetReturnsACopy(t *testing.T) {
	repo := NewTranscriptRepository()
	messageId := uuid.New()
	repo.Save(&Transcript{MessageId: messageId, Accumulated: "original"})

	got, found := repo.Get(messageId)
	require.True(t, found)
	got.Accumulated = "mutated by caller"

	again, found := repo.Get(messageId)
	require.True(t, found)
	assert.Equal(t, "original", again.Accumulated)
}

func TestTranscriptDelete(t *testing.T) {
	repo := NewTranscriptRepository()
	messageId := uuid.New()

	repo.Save(&Transcript{MessageId: messageId, Accumulated: "bye"})
	repo.Delete(messageId)

	_, found := repo.Get(messageId)
	assert.False(t, found)
}
