package feed

import (
	"errors"
	"fmt"
	"sync"

	"github.com/zeusync/vrscene/internal/core/events"
	"github.com/zeusync/vrscene/internal/core/events/bus"
)

var ErrUnexpectedEvent = errors.New("unexpected event payload")

// Event is a manipulation change as sent to renderers.
type Event struct {
	Type   string `json:"type"`
	Frame  uint64 `json:"frame"`
	Object string `json:"object"`
	By     string `json:"by"`
}

// Journal buffers manipulation events published on the bus until the next
// snapshot drains them.
type Journal struct {
	mu     sync.Mutex
	events []Event
	subs   []bus.Subscription
}

func NewJournal(b bus.EventBus) (*Journal, error) {
	j := &Journal{}
	for _, typ := range []string{events.TypeGrabbed, events.TypeYanked, events.TypeReleased} {
		sub, err := b.Subscribe(typ, j.record)
		if err != nil {
			_ = j.Close()
			return nil, fmt.Errorf("subscribe %s: %w", typ, err)
		}
		j.subs = append(j.subs, sub)
	}
	return j, nil
}

func (j *Journal) record(ev bus.Event) error {
	m, ok := ev.Data().(events.Manipulation)
	if !ok {
		return fmt.Errorf("%w: %s carries %T", ErrUnexpectedEvent, ev.Type(), ev.Data())
	}
	j.mu.Lock()
	j.events = append(j.events, Event{Type: ev.Type(), Frame: m.Frame, Object: m.Object, By: m.By.String()})
	j.mu.Unlock()
	return nil
}

// Drain returns the buffered events in publish order and empties the journal.
func (j *Journal) Drain() []Event {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := j.events
	j.events = nil
	return out
}

func (j *Journal) Close() error {
	var all error
	for _, sub := range j.subs {
		all = errors.Join(all, sub.Cancel())
	}
	j.subs = nil
	return all
}
