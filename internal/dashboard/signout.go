package dashboard

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nfrund/taskboard/internal/domain"
	"github.com/nfrund/taskboard/internal/pubsub"
	"github.com/nfrund/taskboard/internal/topicmgr"
	"golang.org/x/sync/singleflight"
)

// EntryPath is where every sign-out lands.
const EntryPath = "/"

// Notices shown on the entry page after a sign-out.
const (
	NoticeSignedOut         = "You have been signed out."
	NoticeTerminationFailed = "We could not confirm your sign-out with the server. If this is a shared device, sign in and out again."
)

// SessionHandle is the capability the dashboard needs from the authentication
// provider: identify the session and end it.
type SessionHandle interface {
	Token() string
	User() domain.User
	End(ctx context.Context) error
}

// OutcomeStatus classifies how a sign-out attempt settled.
type OutcomeStatus int

const (
	// StatusSignedOut means the provider confirmed termination.
	StatusSignedOut OutcomeStatus = iota
	// StatusTerminationFailed means the provider call failed; navigation still happens.
	StatusTerminationFailed
	// StatusNoSession means there was nothing to end.
	StatusNoSession
)

// Outcome is the result of SignOutAndRedirect. Redirect is always EntryPath.
type Outcome struct {
	Status   OutcomeStatus
	Redirect string
	Notice   string
	Err      error
}

// Failed reports whether the notice describes a failure.
func (o Outcome) Failed() bool { return o.Status == StatusTerminationFailed }

// SignOut ends sessions and decides where the browser goes next.
type SignOut struct {
	publisher pubsub.Publisher
	timeout   time.Duration
	logger    *slog.Logger

	// attempts shares one termination call between concurrent sign-outs of
	// the same token.
	attempts singleflight.Group
}

// NewSignOut creates the flow. Each termination call is bounded by timeout.
func NewSignOut(publisher pubsub.Publisher, timeout time.Duration, logger *slog.Logger) *SignOut {
	if logger == nil {
		logger = slog.Default()
	}
	return &SignOut{
		publisher: publisher,
		timeout:   timeout,
		logger:    logger,
	}
}

// SignOutAndRedirect asks the provider to end the session, waits for the call
// to settle, and always directs the browser to EntryPath. A failed termination
// is logged, published and returned as a notice, never as an error page.
// Concurrent calls for the same session share one termination call and
// receive its outcome.
func (s *SignOut) SignOutAndRedirect(ctx context.Context, handle SessionHandle) Outcome {
	if handle == nil {
		return Outcome{Status: StatusNoSession, Redirect: EntryPath}
	}

	// The shared call must not die with whichever request started it.
	shared := context.WithoutCancel(ctx)
	ch := s.attempts.DoChan(handle.Token(), func() (any, error) {
		return s.end(shared, handle), nil
	})

	select {
	case res := <-ch:
		if res.Shared {
			s.logger.DebugContext(ctx, "Joined sign-out already in progress", "user_id", handle.User().ID)
		}
		return res.Val.(Outcome)
	case <-ctx.Done():
		return Outcome{
			Status:   StatusTerminationFailed,
			Redirect: EntryPath,
			Notice:   NoticeTerminationFailed,
			Err:      ctx.Err(),
		}
	}
}

// end performs one termination attempt and reports it.
func (s *SignOut) end(ctx context.Context, handle SessionHandle) Outcome {
	attempt := SessionExitEvent{AttemptID: uuid.NewString(), UserID: handle.User().ID}

	endCtx, cancel := context.WithTimeout(ctx, s.timeout)
	err := handle.End(endCtx)
	cancel()
	attempt.At = time.Now().UTC()

	if err != nil {
		attempt.Error = err.Error()
		s.logger.ErrorContext(ctx, "Session termination failed",
			"attempt_id", attempt.AttemptID, "user_id", attempt.UserID, "error", err)
		s.publish(ctx, TopicSessionEndFailed, attempt)
		return Outcome{
			Status:   StatusTerminationFailed,
			Redirect: EntryPath,
			Notice:   NoticeTerminationFailed,
			Err:      err,
		}
	}

	s.logger.InfoContext(ctx, "Session ended", "attempt_id", attempt.AttemptID, "user_id", attempt.UserID)
	s.publish(ctx, TopicSessionEnded, attempt)
	return Outcome{Status: StatusSignedOut, Redirect: EntryPath, Notice: NoticeSignedOut}
}

func (s *SignOut) publish(ctx context.Context, topic topicmgr.Topic, ev SessionExitEvent) {
	if s.publisher == nil {
		return
	}
	if err := publishExit(ctx, s.publisher, topic, ev); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish session exit event", "topic", topic.Name(), "error", err)
	}
}
