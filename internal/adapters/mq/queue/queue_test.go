package queue

import (
	"context"
	"testing"
	"time"
)

func TestInMemoryQueue_BasicOperations(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	// Test empty queue
	if l := q.Len(); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}

	// Test enqueue
	if !q.Enqueue(ctx, Job{Position: 1, Name: "Ann Lee", Email: "a.lee@co.com"}) {
		t.Error("expected enqueue to succeed")
	}

	if l := q.Len(); l != 1 {
		t.Errorf("expected length 1, got %d", l)
	}

	// Test dequeue
	job := <-q.Dequeue()
	if job.Position != 1 || job.Email != "a.lee@co.com" {
		t.Errorf("unexpected job %+v", job)
	}

	if l := q.Len(); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}
}

func TestInMemoryQueue_FullQueueWaitsForContext(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(1))

	if !q.Enqueue(context.Background(), Job{Position: 1}) {
		t.Fatal("expected enqueue to succeed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if q.Enqueue(ctx, Job{Position: 2}) {
		t.Error("expected enqueue on a full queue to give up when ctx ends")
	}
}

func TestInMemoryQueue_Close(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(4))
	ctx := context.Background()

	for i := 1; i <= 2; i++ {
		if !q.Enqueue(ctx, Job{Position: i}) {
			t.Fatalf("expected enqueue %d to succeed", i)
		}
	}

	if err := q.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !q.IsClosed() {
		t.Error("expected queue to report closed")
	}
	if err := q.Close(); err != nil {
		t.Errorf("second close should be a no-op, got %v", err)
	}
	if q.Enqueue(ctx, Job{Position: 3}) {
		t.Error("expected enqueue after close to fail")
	}

	// Queued jobs are still delivered, then the channel closes.
	var got []int
	for j := range q.Dequeue() {
		got = append(got, j.Position)
	}
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("expected [1 2], got %v", got)
	}
}

func TestInMemoryQueue_DefaultCapacity(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(0))
	if q.capacity != defaultQueueCapacity {
		t.Errorf("expected default capacity %d, got %d", defaultQueueCapacity, q.capacity)
	}
}
