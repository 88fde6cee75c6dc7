package audit

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type PublisherSuite struct {
	suite.Suite
	ctx    context.Context
	logger *slog.Logger
}

func TestPublisherSuite(t *testing.T) {
	suite.Run(t, new(PublisherSuite))
}

func (s *PublisherSuite) SetupSuite() {
	s.ctx = context.Background()
	s.logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))
}

func (s *PublisherSuite) TestEmitFillsDefaults() {
	pub := NewPublisher(4, s.logger, nil)
	pub.Emit(s.ctx, Event{Action: ActionLogin, Email: "ada@example.com"})

	select {
	case event := <-pub.Inbox():
		s.NotEmpty(event.ID)
		s.False(event.Timestamp.IsZero())
		s.Equal(ActionLogin, event.Action)
	default:
		s.Fail("event never reached the inbox")
	}
}

func (s *PublisherSuite) TestEmitDropsOnOverflow() {
	pub := NewPublisher(2, s.logger, nil)
	for i := 0; i < 5; i++ {
		pub.Emit(s.ctx, Event{Action: ActionLogin})
	}

	// Only the buffer's worth of events survive; Emit never blocked.
	s.Len(pub.Inbox(), 2)
}

func (s *PublisherSuite) TestWorkerDrainsIntoSink() {
	pub := NewPublisher(8, s.logger, nil)
	sink := NewMemorySink()
	worker := NewWorker(sink, pub.Inbox(), s.logger)

	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()
	go func() { _ = worker.Run(ctx) }()

	pub.Emit(s.ctx, Event{Action: ActionSignup, Email: "ada@example.com"})
	pub.Emit(s.ctx, Event{Action: ActionLogout, Email: "ada@example.com"})

	events := sink.WaitFor(2, 2*time.Second)
	s.Require().Len(events, 2)
	s.Equal(ActionSignup, events[0].Action)
	s.Equal(ActionLogout, events[1].Action)
}

// failingSink always errors.
type failingSink struct{}

func (failingSink) Append(context.Context, Event) error { return errors.New("sink down") }

func (s *PublisherSuite) TestWorkerSurvivesSinkFailures() {
	pub := NewPublisher(8, s.logger, nil)
	worker := NewWorker(failingSink{}, pub.Inbox(), s.logger)

	ctx, cancel := context.WithCancel(s.ctx)
	go func() { _ = worker.Run(ctx) }()

	pub.Emit(s.ctx, Event{Action: ActionLogin})
	pub.Emit(s.ctx, Event{Action: ActionLogin})

	// The worker keeps draining despite append errors.
	deadline := time.Now().Add(2 * time.Second)
	for len(pub.Inbox()) > 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	s.Empty(pub.Inbox())
	cancel()
}
