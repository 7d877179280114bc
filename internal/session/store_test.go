package session

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/madadgar-ai/madadgar/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(chat string) domain.SessionKey {
	return domain.SessionKey{ChannelID: "console", ChatID: chat, SenderID: "user"}
}

func TestGetOrCreate_ReusesSessionForSameKey(t *testing.T) {
	store := NewMemoryStore()

	first := store.GetOrCreate(testKey("a"))
	second := store.GetOrCreate(testKey("a"))
	assert.Equal(t, first.ID, second.ID)

	other := store.GetOrCreate(testKey("b"))
	assert.NotEqual(t, first.ID, other.ID)
	assert.Len(t, store.List(), 2)
}

func TestAppend_PreservesOrder(t *testing.T) {
	store := NewMemoryStore()
	sess := store.GetOrCreate(testKey("a"))

	for i := 0; i < 3; i++ {
		store.Append(sess.ID, domain.Turn{
			Role:      domain.RoleUser,
			Content:   fmt.Sprintf("question %d", i),
			Timestamp: time.Now(),
		})
		store.Append(sess.ID, domain.Turn{
			Role:      domain.RoleAssistant,
			Content:   fmt.Sprintf("answer %d", i),
			Timestamp: time.Now(),
		})
	}

	history := store.History(sess.ID)
	require.Len(t, history, 6)
	assert.Equal(t, 6, store.Len(sess.ID))

	for i := 0; i < 3; i++ {
		assert.Equal(t, domain.RoleUser, history[2*i].Role)
		assert.Equal(t, fmt.Sprintf("question %d", i), history[2*i].Content)
		assert.Equal(t, domain.RoleAssistant, history[2*i+1].Role)
		assert.Equal(t, fmt.Sprintf("answer %d", i), history[2*i+1].Content)
	}
}

func TestHistory_ReturnsSnapshot(t *testing.T) {
	store := NewMemoryStore()
	sess := store.GetOrCreate(testKey("a"))
	store.Append(sess.ID, domain.Turn{Role: domain.RoleUser, Content: "hello"})

	snapshot := store.History(sess.ID)
	store.Append(sess.ID, domain.Turn{Role: domain.RoleAssistant, Content: "hi"})

	// The snapshot does not see later appends.
	assert.Len(t, snapshot, 1)
	assert.Len(t, store.History(sess.ID), 2)

	// Mutating the snapshot does not touch the store.
	snapshot[0].Content = "tampered"
	assert.Equal(t, "hello", store.History(sess.ID)[0].Content)
}

func TestAppend_UnknownSessionIsNoop(t *testing.T) {
	store := NewMemoryStore()
	store.Append("no-such-id", domain.Turn{Role: domain.RoleUser, Content: "x"})
	assert.Nil(t, store.History("no-such-id"))
	assert.Equal(t, 0, store.Len("no-such-id"))
}

func TestStore_ConcurrentSessions(t *testing.T) {
	store := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			sess := store.GetOrCreate(testKey(fmt.Sprintf("chat-%d", n)))
			for j := 0; j < 50; j++ {
				store.Append(sess.ID, domain.Turn{Role: domain.RoleUser, Content: "m"})
			}
		}(i)
	}
	wg.Wait()

	assert.Len(t, store.List(), 8)
	for _, id := range store.List() {
		assert.Equal(t, 50, store.Len(id))
	}
}
