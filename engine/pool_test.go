package engine

import (
	"sync/atomic"
	"testing"
)

func TestPoolRunsEveryTask(t *testing.T) {
	pool := NewPool(3)
	defer pool.Close()

	var ran atomic.Int64
	tasks := make([]func(), 100)
	for i := range tasks {
		tasks[i] = func() { ran.Add(1) }
	}
	pool.runAll(tasks)
	if got := ran.Load(); got != 100 {
		t.Errorf("ran %d tasks, want 100", got)
	}
}

func TestPoolReuseAcrossBatches(t *testing.T) {
	// One pool, many dispatch rounds: the create-once dispatch-many
	// lifecycle the engine relies on.
	pool := NewPool(2)
	defer pool.Close()

	var ran atomic.Int64
	for round := 0; round < 20; round++ {
		tasks := make([]func(), 10)
		for i := range tasks {
			tasks[i] = func() { ran.Add(1) }
		}
		pool.runAll(tasks)
	}
	if got := ran.Load(); got != 200 {
		t.Errorf("ran %d tasks, want 200", got)
	}
}

func TestPoolDefaultsToAllCores(t *testing.T) {
	pool := NewPool(0)
	defer pool.Close()
	if pool.Workers() < 1 {
		t.Errorf("Workers() = %d, want >= 1", pool.Workers())
	}
}

func TestPoolCloseTwice(t *testing.T) {
	pool := NewPool(1)
	pool.Close()
	pool.Close()
}
