package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/ritzau/graphrank/pkg/logging"
)

// TopicConfig controls buffering for a topic.
type TopicConfig struct {
	BufferSize int  // number of events to retain (0 = none)
	ReplayAll  bool // replay the whole buffer to new subscribers, or only the last event
}

// SSEPublisher is an in-process Publisher feeding SSE handlers.
type SSEPublisher struct {
	mu      sync.RWMutex
	subs    map[string]map[*subscription]bool
	version map[string]int
	buffer  map[string][]Event
	configs map[string]TopicConfig
	closed  bool
}

// NewSSEPublisher creates an SSE-backed publisher.
func NewSSEPublisher() *SSEPublisher {
	return &SSEPublisher{
		subs:    make(map[string]map[*subscription]bool),
		version: make(map[string]int),
		buffer:  make(map[string][]Event),
		configs: make(map[string]TopicConfig),
	}
}

// ConfigureTopic sets buffering behavior for a topic.
func (p *SSEPublisher) ConfigureTopic(topic string, config TopicConfig) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.configs[topic] = config
}

// Subscribe creates a new subscription to a topic. Buffered events are
// replayed to the new subscriber according to the topic configuration.
func (p *SSEPublisher) Subscribe(ctx context.Context, topic string) (Subscription, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, fmt.Errorf("publisher is closed")
	}

	sub := &subscription{
		topic:     topic,
		events:    make(chan Event, 100), // buffered so publishers never block
		publisher: p,
	}
	if p.subs[topic] == nil {
		p.subs[topic] = make(map[*subscription]bool)
	}
	p.subs[topic][sub] = true

	replay := make([]Event, len(p.buffer[topic]))
	copy(replay, p.buffer[topic])
	config := p.configs[topic]
	p.mu.Unlock()

	if !config.ReplayAll && len(replay) > 1 {
		replay = replay[len(replay)-1:]
	}
	for _, event := range replay {
		select {
		case sub.events <- event:
		default:
			logging.Warn("could not replay event to new subscriber", "topic", topic)
		}
	}

	go func() {
		<-ctx.Done()
		_ = sub.Close()
	}()

	return sub, nil
}

// Publish sends an event to all subscribers of a topic. Delivery is
// non-blocking; events are dropped for subscribers with full channels.
func (p *SSEPublisher) Publish(topic string, eventType string, data interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return fmt.Errorf("publisher is closed")
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	p.version[topic]++
	event := Event{
		Topic:   topic,
		Type:    eventType,
		Data:    jsonData,
		Version: p.version[topic],
	}

	if config := p.configs[topic]; config.BufferSize > 0 {
		buf := append(p.buffer[topic], event)
		if len(buf) > config.BufferSize {
			buf = buf[len(buf)-config.BufferSize:]
		}
		p.buffer[topic] = buf
	}

	for sub := range p.subs[topic] {
		select {
		case sub.events <- event:
		default:
			logging.Warn("subscription channel full, dropping event", "topic", topic)
		}
	}

	return nil
}

// Close shuts down the publisher and all subscriptions.
func (p *SSEPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	for _, subs := range p.subs {
		for sub := range subs {
			close(sub.events)
		}
	}
	p.subs = make(map[string]map[*subscription]bool)
	return nil
}

func (p *SSEPublisher) unsubscribe(sub *subscription) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if subs := p.subs[sub.topic]; subs != nil {
		delete(subs, sub)
		if len(subs) == 0 {
			delete(p.subs, sub.topic)
		}
	}
}

type subscription struct {
	topic     string
	events    chan Event
	publisher *SSEPublisher
	closed    bool
	mu        sync.Mutex
}

func (s *subscription) Topic() string {
	return s.topic
}

func (s *subscription) Events() <-chan Event {
	return s.events
}

func (s *subscription) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.publisher.unsubscribe(s)
	return nil
}

// WriteSSE writes an event in SSE wire format: "data: {json}\n\n".
func WriteSSE(w io.Writer, event Event) error {
	jsonData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	_, err = fmt.Fprintf(w, "data: %s\n\n", jsonData)
	return err
}
