package events

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestPublishFansOut(t *testing.T) {
	bus := NewBus()
	a := make(chan Event, 1)
	b := make(chan Event, 1)
	bus.Subscribe(a)
	bus.Subscribe(b)

	ev := Event{Collection: "messages", Operation: OpCreated, ID: "msg_1"}
	bus.Publish(ev)

	assert.Equal(t, ev, <-a)
	assert.Equal(t, ev, <-b)
}

func TestUnsubscribe(t *testing.T) {
	bus := NewBus()
	ch := make(chan Event, 1)
	unsubscribe := bus.Subscribe(ch)
	assert.Equal(t, 1, bus.SubscriberCount())

	unsubscribe()
	unsubscribe()
	assert.Equal(t, 0, bus.SubscriberCount())

	bus.Publish(Event{Collection: "appStyles", Operation: OpSelected})
	assert.Empty(t, ch)
}

func TestSlowSubscriberDoesNotBlock(t *testing.T) {
	bus := NewBus()
	slow := make(chan Event) // unbuffered, nobody reading
	fast := make(chan Event, 4)
	bus.Subscribe(slow)
	bus.Subscribe(fast)

	for i := 0; i < 3; i++ {
		bus.Publish(Event{Collection: "tools", Operation: OpUpdated})
	}
	assert.Len(t, fast, 3)
}

func TestNilBusPublish(t *testing.T) {
	var bus *Bus
	assert.NotPanics(t, func() {
		bus.Publish(Event{Collection: "tools", Operation: OpCreated})
	})
}

func TestConcurrentSubscribeAndPublish(t *testing.T) {
	bus := NewBus()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			ch := make(chan Event, 16)
			unsubscribe := bus.Subscribe(ch)
			defer unsubscribe()
		}()
		go func() {
			defer wg.Done()
			bus.Publish(Event{Collection: "messages", Operation: OpCreated})
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, bus.SubscriberCount())
}
