package resilience_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonwraymond/typepipe/resilience"
)

func ExampleRetry_Execute() {
	r := resilience.NewRetry(resilience.RetryConfig{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
	})

	attempts := 0
	err := r.Execute(context.Background(), func(context.Context) error {
		attempts++
		if attempts < 2 {
			return resilience.MarkTransient(errors.New("code generator busy"))
		}
		return nil
	})
	fmt.Println("attempts:", attempts, "err:", err)
	// Output:
	// attempts: 2 err: <nil>
}

func ExampleIsTransient() {
	fmt.Println(resilience.IsTransient(resilience.MarkTransient(errors.New("busy"))))
	fmt.Println(resilience.IsTransient(errors.New("participant rejected type")))
	// Output:
	// true
	// false
}
