package task

import (
	"context"
	"testing"
	"time"
)

func TestPoolCloseCancelsWaitingWork(t *testing.T) {
	p := NewPool(1)
	block := make(chan struct{})
	started := make(chan struct{})
	p.Go(p.Context(), func(ctx context.Context) {
		close(started)
		<-block
	})
	<-started

	waited := make(chan error, 1)
	p.Go(p.Context(), func(ctx context.Context) {
		waited <- ctx.Err()
	})

	closed := make(chan struct{})
	go func() {
		p.Close()
		close(closed)
	}()

	select {
	case err := <-waited:
		if err == nil {
			t.Fatal("queued work ran with a live context after Close")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("queued work never ran")
	}
	close(block)
	select {
	case <-closed:
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not return")
	}
}

func TestPoolGoAfterCloseIsRejected(t *testing.T) {
	p := NewPool(0)
	p.Close()
	p.Close()
	if p.Go(context.Background(), func(context.Context) { t.Error("ran after Close") }) {
		t.Fatal("Go returned true after Close")
	}
}
