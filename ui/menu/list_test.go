package menu

import (
	"fmt"
	"testing"
)

func labels(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("item %d", i)
	}
	return out
}

func TestListUpDownStopAtEnds(t *testing.T) {
	var l List
	l.SetItems(labels(3))
	l.Up()
	if l.Index() != 0 {
		t.Fatalf("Index() = %d; want 0", l.Index())
	}
	for i := 0; i < 5; i++ {
		l.Down()
	}
	if l.Index() != 2 {
		t.Fatalf("Index() = %d; want 2", l.Index())
	}
}

func TestListClampScrollsSelectionIntoView(t *testing.T) {
	var l List
	l.SetItems(labels(10))
	for i := 0; i < 6; i++ {
		l.Down()
	}
	l.Clamp(4)
	if l.Scroll() != 3 {
		t.Fatalf("Scroll() = %d; want 3", l.Scroll())
	}
	for i := 0; i < 6; i++ {
		l.Up()
	}
	l.Clamp(4)
	if l.Scroll() != 0 {
		t.Fatalf("Scroll() = %d; want 0", l.Scroll())
	}
}

func TestListSetItemsKeepsSelectedLabel(t *testing.T) {
	var l List
	l.SetItems([]string{"a", "b", "c"})
	l.Select(2)
	l.SetItems([]string{"c", "x"})
	if got, _ := l.Selected(); got != "c" {
		t.Fatalf("Selected() = %q; want c", got)
	}
}

func TestListSetItemsClampsWhenLabelGone(t *testing.T) {
	var l List
	l.SetItems([]string{"a", "b", "c"})
	l.Select(2)
	l.SetItems([]string{"x"})
	if got, _ := l.Selected(); got != "x" {
		t.Fatalf("Selected() = %q; want x", got)
	}
	l.SetItems(nil)
	if l.Index() != -1 {
		t.Fatalf("Index() = %d; want -1", l.Index())
	}
	if _, ok := l.Selected(); ok {
		t.Fatal("Selected() ok on empty list")
	}
}
