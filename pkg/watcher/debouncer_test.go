package watcher

import (
	"context"
	"testing"
	"time"
)

func TestDebouncer_BatchesBurst(t *testing.T) {
	input := make(chan ChangeEvent)
	d := NewDebouncer(input, 50*time.Millisecond, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	// A burst of three events within the quiet period.
	for i := 0; i < 3; i++ {
		input <- ChangeEvent{Paths: []string{"edges.csv"}, Timestamp: time.Now()}
	}

	select {
	case event := <-d.Events():
		if len(event.Paths) != 3 {
			t.Errorf("Expected 3 accumulated paths, got %d", len(event.Paths))
		}
	case <-time.After(time.Second):
		t.Fatal("Timeout waiting for debounced event")
	}

	// No further output without further input.
	select {
	case event := <-d.Events():
		t.Errorf("Expected no more events, got %v", event.Paths)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDebouncer_FlushesOnInputClose(t *testing.T) {
	input := make(chan ChangeEvent, 1)
	d := NewDebouncer(input, time.Hour, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	input <- ChangeEvent{Paths: []string{"edges.csv"}, Timestamp: time.Now()}
	close(input)

	select {
	case event, ok := <-d.Events():
		if !ok {
			t.Fatal("Expected pending event before channel close")
		}
		if len(event.Paths) != 1 {
			t.Errorf("Expected 1 path, got %d", len(event.Paths))
		}
	case <-time.After(time.Second):
		t.Fatal("Timeout waiting for flush on close")
	}

	if _, ok := <-d.Events(); ok {
		t.Error("Expected output channel to be closed")
	}
}
