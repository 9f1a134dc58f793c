package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDo(t *testing.T) {
	Convey("Given a policy with an instrumented sleeper", t, func() {
		var slept []time.Duration
		p := Policy{
			MaxAttempts: 5,
			BaseDelay:   500 * time.Millisecond,
			Multiplier:  1.5,
			MaxDelay:    5 * time.Second,
			Retryable:   RateLimited,
			sleep: func(_ context.Context, d time.Duration) error {
				slept = append(slept, d)
				return nil
			},
		}

		Convey("A 429 is retried until the source recovers", func() {
			calls := 0
			status, err := p.Do(context.Background(), func() (int, error) {
				calls++
				if calls < 3 {
					return 429, nil
				}
				return 200, nil
			})
			So(err, ShouldBeNil)
			So(status, ShouldEqual, 200)
			So(calls, ShouldEqual, 3)
		})

		Convey("The delay grows geometrically and sleeps precede every attempt", func() {
			_, _ = p.Do(context.Background(), func() (int, error) {
				return 429, nil
			})
			So(slept, ShouldResemble, []time.Duration{
				500 * time.Millisecond,
				750 * time.Millisecond,
				1125 * time.Millisecond,
				1687500 * time.Microsecond,
				2531250 * time.Microsecond,
			})
		})

		Convey("The delay is capped at MaxDelay", func() {
			p.MaxDelay = time.Second
			_, _ = p.Do(context.Background(), func() (int, error) {
				return 429, nil
			})
			So(slept[len(slept)-1], ShouldEqual, time.Second)
		})

		Convey("Exhausting the budget returns the last outcome", func() {
			calls := 0
			status, err := p.Do(context.Background(), func() (int, error) {
				calls++
				return 429, nil
			})
			So(err, ShouldBeNil)
			So(status, ShouldEqual, 429)
			So(calls, ShouldEqual, p.MaxAttempts)
		})

		Convey("A transport error counts against the budget too", func() {
			boom := errors.New("connection reset")
			calls := 0
			_, err := p.Do(context.Background(), func() (int, error) {
				calls++
				return 0, boom
			})
			So(err, ShouldEqual, boom)
			So(calls, ShouldEqual, p.MaxAttempts)
		})

		Convey("A non-retryable failure status returns immediately", func() {
			calls := 0
			status, err := p.Do(context.Background(), func() (int, error) {
				calls++
				return 404, nil
			})
			So(err, ShouldBeNil)
			So(status, ShouldEqual, 404)
			So(calls, ShouldEqual, 1)
		})

		Convey("Context cancellation aborts between attempts", func() {
			p.sleep = func(ctx context.Context, _ time.Duration) error {
				return ctx.Err()
			}
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := p.Do(ctx, func() (int, error) {
				t.Fatal("fn must not run after cancellation")
				return 0, nil
			})
			So(err, ShouldEqual, context.Canceled)
		})
	})
}

func TestRetryablePredicates(t *testing.T) {
	Convey("Given the status predicates", t, func() {
		So(RateLimited(429), ShouldBeTrue)
		So(RateLimited(500), ShouldBeFalse)
		So(AnyFailure(500), ShouldBeTrue)
		So(AnyFailure(429), ShouldBeTrue)
		So(AnyFailure(200), ShouldBeFalse)
		So(AnyFailure(204), ShouldBeFalse)
	})
}
