package view

import (
	"fmt"
	"sync"
	"testing"
)

func TestPublisherCurrentReturnsInitial(t *testing.T) {
	p := NewPublisher(Loading("reading"))
	s := p.Current()
	if s.Len() != 1 || s.Line(0) != "reading" {
		t.Fatalf("Current() = %+v; want single loading line", s)
	}
	if p.Seq() != 0 {
		t.Fatalf("Seq() = %d; want 0", p.Seq())
	}
}

func TestPublisherPublishReplacesWholesale(t *testing.T) {
	p := NewPublisher(Loading("x"))
	p.Publish(State{Lines: []string{"a", "b"}, LineOffset: 1, XOffset: -8})

	s := p.Current()
	if s.Len() != 2 || s.LineOffset != 1 || s.XOffset != -8 {
		t.Fatalf("Current() = %+v; want published state", s)
	}
	if p.Seq() != 1 {
		t.Fatalf("Seq() = %d; want 1", p.Seq())
	}
}

func TestPublisherUpdateAppliesToLatest(t *testing.T) {
	p := NewPublisher(Lines("a", "b", "c"))
	got := p.Update(func(s State) State { return s.WithOffsets(2, 0) })
	if got.LineOffset != 2 || p.Current().LineOffset != 2 {
		t.Fatalf("Update() offset = %d; want 2", got.LineOffset)
	}
	if got.Len() != 3 {
		t.Fatalf("Update() lost lines: %+v", got)
	}
}

func TestPublisherReadersNeverSeePartialStates(t *testing.T) {
	const (
		writers   = 4
		perWriter = 500
	)
	p := NewPublisher(Lines())

	var wg sync.WaitGroup
	wg.Add(writers)
	for w := 0; w < writers; w++ {
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				n := 1 + (w+i)%7
				lines := make([]string, 0, n+1)
				lines = append(lines, fmt.Sprintf("%d", n))
				for j := 0; j < n; j++ {
					lines = append(lines, "row")
				}
				p.Publish(State{Lines: lines})
			}
		}(w)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	for {
		s := p.Current()
		if s.Len() > 0 {
			var n int
			if _, err := fmt.Sscanf(s.Line(0), "%d", &n); err != nil {
				t.Fatalf("header %q: %v", s.Line(0), err)
			}
			if s.Len() != n+1 {
				t.Fatalf("observed torn state: header says %d rows, have %d", n, s.Len()-1)
			}
		}
		select {
		case <-done:
			if p.Seq() != writers*perWriter {
				t.Fatalf("Seq() = %d; want %d", p.Seq(), writers*perWriter)
			}
			return
		default:
		}
	}
}

func TestStateMaxLineOffset(t *testing.T) {
	s := Lines("1", "2", "3", "4", "5")
	if got := s.MaxLineOffset(2); got != 3 {
		t.Fatalf("MaxLineOffset(2) = %d; want 3", got)
	}
	if got := s.MaxLineOffset(10); got != 0 {
		t.Fatalf("MaxLineOffset(10) = %d; want 0", got)
	}
	if got := s.MaxLineOffset(0); got != 0 {
		t.Fatalf("MaxLineOffset(0) = %d; want 0", got)
	}
}
