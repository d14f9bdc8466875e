// Package fanout runs a fixed set of independent tasks concurrently and waits
// for every one of them to settle. A failing, panicking or hung task never
// cancels or blocks its siblings.
package fanout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrPanic is wrapped by the error reported for a task that panicked.
var ErrPanic = errors.New("task panicked")

// Task is one unit of work. Run should honour ctx; a task that does not is
// abandoned once its deadline passes.
type Task[T any] struct {
	Name string
	Run  func(ctx context.Context) (T, error)
}

// Result is the settled outcome of the task launched at the same index.
type Result[T any] struct {
	Name    string
	Value   T
	Err     error
	Elapsed time.Duration
}

// OK reports whether the task completed without error.
func (r Result[T]) OK() bool { return r.Err == nil }

type outcome[T any] struct {
	val T
	err error
}

// All launches every task in its own goroutine, each bounded by timeout
// (timeout <= 0 means only ctx bounds it), and returns once all have settled.
// results[i] always belongs to tasks[i], whatever the completion order.
func All[T any](ctx context.Context, timeout time.Duration, tasks []Task[T]) []Result[T] {
	results := make([]Result[T], len(tasks))
	var wg sync.WaitGroup

	for i, task := range tasks {
		wg.Add(1)
		go func(i int, task Task[T]) {
			defer wg.Done()
			results[i] = run(ctx, timeout, task)
		}(i, task)
	}

	wg.Wait()
	return results
}

func run[T any](ctx context.Context, timeout time.Duration, task Task[T]) Result[T] {
	tctx, cancel := ctx, context.CancelFunc(func() {})
	if timeout > 0 {
		tctx, cancel = context.WithTimeout(ctx, timeout)
	}
	defer cancel()

	start := time.Now()
	// buffered so an abandoned task can still deliver and exit
	done := make(chan outcome[T], 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome[T]{err: fmt.Errorf("%s: %w: %v", task.Name, ErrPanic, r)}
			}
		}()
		v, err := task.Run(tctx)
		done <- outcome[T]{val: v, err: err}
	}()

	res := Result[T]{Name: task.Name}
	select {
	case o := <-done:
		res.Value, res.Err = o.val, o.err
	case <-tctx.Done():
		res.Err = tctx.Err()
	}
	res.Elapsed = time.Since(start)
	return res
}
