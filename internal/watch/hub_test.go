package watch

import (
	"testing"

	"github.com/WinterOat/vault_service/internal/dto"
	"github.com/stretchr/testify/assert"
)

func TestHub_PublishReachesOwnerSubscribers(t *testing.T) {
	hub := NewHub()

	ch, cancel := hub.Subscribe(7)
	defer cancel()
	other, cancelOther := hub.Subscribe(8)
	defer cancelOther()

	snapshot := []dto.ProfileSummary{{ID: 1, MaskedAccountNo: "1234****9012", BankCode: "SCB"}}
	hub.Publish(7, snapshot)

	got := <-ch
	assert.Equal(t, snapshot, got)
	assert.Empty(t, other, "other owner must not receive the snapshot")
}

func TestHub_CancelRemovesSubscriber(t *testing.T) {
	hub := NewHub()

	ch, cancel := hub.Subscribe(7)
	assert.Equal(t, 1, hub.SubscriberCount(7))

	cancel()
	assert.Equal(t, 0, hub.SubscriberCount(7))

	_, open := <-ch
	assert.False(t, open, "channel closed after cancel")

	// double cancel is a no-op
	cancel()
}

func TestHub_SlowSubscriberDropped(t *testing.T) {
	hub := NewHub()

	ch, cancel := hub.Subscribe(7)
	defer cancel()

	for i := 0; i < subscriberBuffer+5; i++ {
		hub.Publish(7, []dto.ProfileSummary{{ID: uint(i)}})
	}

	// only the buffered snapshots remain; publisher never blocked
	assert.Len(t, ch, subscriberBuffer)
}
