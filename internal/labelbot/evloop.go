package labelbot

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/simplesurance/labelbot/internal/labeler"
	"github.com/simplesurance/labelbot/internal/logfields"
	"github.com/simplesurance/labelbot/internal/provider/github"
)

const DefEventChannelBufferSize = 1024

const loggerName = "event_loop"

// EvLoop receives github webhook events and runs the matching routes.
// Events are processed one after the other, the routes of an event are run
// synchronously in the order they were passed to NewEventLoop.
// A route that fails with a goorderr.RetryableError is retried until the
// retry timeout expired.
type EvLoop struct {
	ch     chan *github.Event
	logger *zap.Logger
	routes Routes

	// repositories is the set of repository full names for which events
	// are processed, if it is empty events of all repositories are
	// processed.
	repositories map[string]struct{}

	retryTimeout time.Duration
	retryer      *Retryer

	ctx      context.Context
	cancelFn context.CancelFunc
	done     chan struct{}
}

type Option func(*EvLoop)

// WithRepositoryFilter restricts processing to events of the given
// repositories, in the format <owner>/<name>.
func WithRepositoryFilter(repositories []string) Option {
	return func(e *EvLoop) {
		for _, r := range repositories {
			e.repositories[r] = struct{}{}
		}
	}
}

func WithRetryTimeout(d time.Duration) Option {
	return func(e *EvLoop) {
		e.retryTimeout = d
	}
}

func NewEventLoop(routes Routes, opts ...Option) *EvLoop {
	ctx, cancelFn := context.WithCancel(context.Background())

	evl := EvLoop{
		ch:           make(chan *github.Event, DefEventChannelBufferSize),
		routes:       routes,
		repositories: map[string]struct{}{},
		retryTimeout: DefRetryTimeout,
		retryer:      NewRetryer(),
		ctx:          ctx,
		cancelFn:     cancelFn,
		done:         make(chan struct{}),
	}

	for _, opt := range opts {
		opt(&evl)
	}

	if evl.logger == nil {
		evl.logger = zap.L().Named(loggerName)
	}

	return &evl
}

// C returns the event channel.
// Events sent to this channel will be processed.
// The channel is closed when Stop() is called.
func (e *EvLoop) C() chan<- *github.Event {
	return e.ch
}

// Start processes events until the event channel is closed.
func (e *EvLoop) Start() {
	defer close(e.done)

	e.logger.Info(
		"ready to process events",
		logfields.Event("eventloop_started"),
		zap.String("routes", e.routes.String()),
	)

	for ev := range e.ch {
		e.processEvent(ev)
	}

	e.logger.Info(
		"event loop terminated, event channel was closed",
		logfields.Event("eventloop_terminated"),
	)
}

func (e *EvLoop) processEvent(ev *github.Event) {
	logger := e.logger.With(ev.LogFields...)

	logger.Debug("event received", logfields.Event("event_received"))
	metrics.ProcessedEventsInc(ev.Type)

	if !e.repositoryAllowed(ev) {
		logger.Debug(
			"skipping event, repository is not in the allow list",
			logfields.Event("event_repository_filtered"),
		)
		return
	}

	for _, route := range e.routes {
		if !route.Matches(ev.Type) {
			continue
		}

		e.runRoute(ev, route, logger.With(logfields.Route(route.name)))
	}
}

func (e *EvLoop) runRoute(ev *github.Event, route *Route, logger *zap.Logger) {
	ctx, cancelFn := context.WithTimeout(e.ctx, e.retryTimeout)
	defer cancelFn()

	err := e.retryer.Run(
		ctx,
		func(ctx context.Context) error {
			return route.fn(ctx, ev.Type, ev.Payload)
		},
		append(append([]zap.Field{}, ev.LogFields...), logfields.Route(route.name)),
	)
	if err == nil {
		metrics.RouteRunsInc(route.name, resultLabelSuccessVal)
		logger.Debug("route executed successfully", logfields.Event("route_executed"))
		return
	}

	if errors.Is(err, labeler.ErrMalformedPayload) {
		metrics.RouteRunsInc(route.name, resultLabelMalformedVal)
		logger.Warn(
			"route failed, event payload is malformed",
			logfields.Event("route_failed_malformed_payload"),
			zap.Error(err),
		)
		return
	}

	metrics.RouteRunsInc(route.name, resultLabelFailureVal)
	logger.Error(
		"route failed",
		logfields.Event("route_failed"),
		zap.Error(err),
	)
}

func (e *EvLoop) repositoryAllowed(ev *github.Event) bool {
	if len(e.repositories) == 0 {
		return true
	}

	fullName, err := labeler.RepositoryFullName(e.ctx, ev.Payload)
	if err != nil {
		// malformed payloads are reported when the routes are run
		return true
	}

	_, exists := e.repositories[fullName]
	return exists
}

// Stop closes the event channel (Evloop.C()) and waits until all queued
// events were processed.
// When ctx is done before, pending retries are cancelled and Stop waits only
// for the currently running route to return.
// Start() must have been called before.
func (e *EvLoop) Stop(ctx context.Context) {
	e.logger.Debug("event loop terminating", logfields.Event("eventloop_terminating"))
	close(e.ch)

	select {
	case <-e.done:
	case <-ctx.Done():
		e.logger.Info(
			"cancelling processing of queued events",
			logfields.Event("eventloop_terminating_cancelled"),
			zap.Error(ctx.Err()),
		)

		e.retryer.Stop()
		e.cancelFn()
		<-e.done
	}

	e.retryer.Stop()
	e.cancelFn()

	e.logger.Info("event loop terminated", logfields.Event("eventloop_terminated"))
}
