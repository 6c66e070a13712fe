package github

import (
	"net/http"

	"github.com/google/go-github/v43/github"
	"go.uber.org/zap"

	"github.com/simplesurance/labelbot/internal/labeler"
	"github.com/simplesurance/labelbot/internal/logfields"
)

const loggerName = "github_event_provider"

// DefaultEventTypes are the webhook event types that are forwarded when no
// other types are configured via WithEventTypes.
var DefaultEventTypes = []string{
	labeler.EventIssueComment,
	labeler.EventPullRequestReviewComment,
	labeler.EventPullRequest,
}

// Provider listens for github-webhook http-requests at a http-server handler,
// validates and converts the requests to Events and forwards them to event
// channels.
type Provider struct {
	logger        *zap.Logger
	webhookSecret []byte
	chans         []chan<- *Event
	eventTypes    map[string]struct{}
}

type option func(*Provider)

func WithPayloadSecret(secret string) option {
	return func(p *Provider) {
		p.webhookSecret = []byte(secret)
	}
}

// WithEventTypes restricts the forwarded events to the given webhook types.
func WithEventTypes(types []string) option {
	return func(p *Provider) {
		p.eventTypes = toSet(types)
	}
}

func New(eventChans []chan<- *Event, opts ...option) *Provider {
	p := Provider{
		chans:      eventChans,
		eventTypes: toSet(DefaultEventTypes),
	}

	for _, o := range opts {
		o(&p)
	}

	if p.logger == nil {
		p.logger = zap.L().Named(loggerName)
	}

	return &p
}

func toSet(vals []string) map[string]struct{} {
	result := make(map[string]struct{}, len(vals))
	for _, v := range vals {
		result[v] = struct{}{}
	}

	return result
}

func (p *Provider) HTTPHandler(resp http.ResponseWriter, req *http.Request) {
	deliveryID := github.DeliveryID(req)
	hookType := github.WebHookType(req)

	logFields := []zap.Field{
		logfields.EventProvider("github"),
		logfields.DeliveryID(deliveryID),
		logfields.WebhookType(hookType),
	}

	logger := p.logger.With(logFields...)

	payload, err := github.ValidatePayload(req, p.webhookSecret)
	if err != nil {
		logger.Info(
			"received invalid http request, payload validation failed",
			logfields.Event("github_http_request_validation_failed"),
			zap.Error(err),
		)
		http.Error(resp, err.Error(), http.StatusBadRequest)
		return
	}

	logger.Debug(
		"received http request",
		logfields.Event("github_event_received"),
		zap.ByteString("http_body", payload),
	)

	if _, supported := p.eventTypes[hookType]; !supported {
		logger.Debug(
			"ignoring event, event type is unsupported",
			logfields.Event("github_unsupported_event_received"),
		)
		return
	}

	decoded, err := labeler.DecodePayload(payload)
	if err != nil {
		logger.Info(
			"received invalid http request, parsing failed",
			logfields.Event("github_event_parsing_failed"),
			zap.Error(err),
		)
		http.Error(resp, err.Error(), http.StatusBadRequest)
		return
	}

	ev := Event{
		DeliveryID: deliveryID,
		Type:       hookType,
		JSON:       payload,
		Payload:    decoded,
		LogFields:  logFields,
	}

	for _, c := range p.chans {
		select {
		case c <- &ev:
			logger.Debug(
				"event forwarded to channel",
				logfields.Event("github_event_forwarded"),
			)

		default:
			logger.Warn(
				"event lost, forwarding event to channel failed",
				zap.String("error", "could not forward event to channel, send would have blocked"),
				logfields.Event("github_forwarding_event_failed"),
			)

			http.Error(resp, "queue full", http.StatusServiceUnavailable)
			return
		}
	}
}
