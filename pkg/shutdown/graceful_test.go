package shutdown

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/sourcestack/pkg/logging"
)

type stoppable struct {
	called   chan struct{}
	deadline bool
	err      error
}

func (s *stoppable) Shutdown(ctx context.Context) error {
	_, s.deadline = ctx.Deadline()
	close(s.called)
	return s.err
}

func TestGraceful_StopsOnContextDone(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "clean", err: nil},
		{name: "shutdown error", err: errors.New("busy")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &stoppable{called: make(chan struct{}), err: tt.err}
			ctx, cancel := context.WithCancel(context.Background())

			done := make(chan struct{})
			go func() {
				Graceful(ctx, []os.Signal{os.Interrupt}, s, time.Second, logging.NewNop())
				close(done)
			}()

			cancel()

			select {
			case <-done:
			case <-time.After(2 * time.Second):
				require.FailNow(t, "Graceful did not return")
			}

			<-s.called
			assert.True(t, s.deadline)
		})
	}
}
