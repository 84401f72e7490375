package services

import (
	"context"
	"testing"
	"time"
)

func TestPacer_SpacesSuccessiveCalls(t *testing.T) {
	pacer := NewPacer(50 * time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := pacer.Wait(ctx); err != nil {
			t.Fatalf("Wait failed: %v", err)
		}
	}
	elapsed := time.Since(start)

	// First call is free, the next two block for ~50ms each
	if elapsed < 90*time.Millisecond {
		t.Errorf("Expected at least ~100ms across 3 calls, got %v", elapsed)
	}
}

func TestPacer_ZeroIntervalNeverBlocks(t *testing.T) {
	pacer := NewPacer(0)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 100; i++ {
		if err := pacer.Wait(ctx); err != nil {
			t.Fatalf("Wait failed: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("Expected no pacing, got %v", elapsed)
	}
}

func TestPacer_CancelledContext(t *testing.T) {
	pacer := NewPacer(time.Minute)
	ctx := context.Background()

	// Consume the initial token so the next Wait would block
	if err := pacer.Wait(ctx); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()

	if err := pacer.Wait(cancelled); err == nil {
		t.Fatal("Expected error from cancelled context")
	}
}
