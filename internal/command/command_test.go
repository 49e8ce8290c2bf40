package command

import "testing"

func TestQueue_FIFOOrder(t *testing.T) {
	q := NewQueue(8)

	posted := []Command{OpenSettings, ToggleAutoStart, OpenSettings, Exit}
	for _, c := range posted {
		if !q.Post(c) {
			t.Fatalf("Post(%v) dropped with room in buffer", c)
		}
	}

	for i, want := range posted {
		got := <-q.C()
		if got != want {
			t.Errorf("command %d = %v, want %v", i, got, want)
		}
	}
}

func TestQueue_PostDoesNotBlockWhenFull(t *testing.T) {
	q := NewQueue(1)

	if !q.Post(Exit) {
		t.Fatal("first Post should succeed")
	}
	// A full queue drops rather than blocking the producer thread.
	if q.Post(OpenSettings) {
		t.Error("Post on full queue should report a drop")
	}
	if got := <-q.C(); got != Exit {
		t.Errorf("drained %v, want Exit", got)
	}
}
