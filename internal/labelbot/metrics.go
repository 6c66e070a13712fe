package labelbot

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/simplesurance/labelbot/internal/logfields"
)

const metricNamespace = "labelbot"

const (
	githubEventsMetricName = "processed_github_events_total"
	routeRunsMetricName    = "route_runs_total"
)

const (
	eventTypeLabel = "event_type"
	routeLabel     = "route"
	resultLabel    = "result"
)

type resultLabelVal string

const (
	resultLabelSuccessVal   resultLabelVal = "success"
	resultLabelFailureVal   resultLabelVal = "failure"
	resultLabelMalformedVal resultLabelVal = "malformed"
)

type metricCollector struct {
	logger          *zap.Logger
	processedEvents *prometheus.CounterVec
	routeRuns       *prometheus.CounterVec
}

var metrics = newMetricCollector()

func newMetricCollector() *metricCollector {
	return &metricCollector{
		logger: zap.L().Named(loggerName).Named("metrics"),
		processedEvents: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricNamespace,
				Name:      githubEventsMetricName,
				Help:      "count of processed github webhook events",
			},
			[]string{eventTypeLabel},
		),
		routeRuns: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricNamespace,
				Name:      routeRunsMetricName,
				Help:      "count of label rule executions by result",
			},
			[]string{routeLabel, resultLabel},
		),
	}
}

func (m *metricCollector) logGetMetricFailed(metricName string, err error) {
	m.logger.Warn(
		"could not record metric",
		zap.String("metric", metricName),
		logfields.Event("recording_metric_failed"),
		zap.Error(err),
	)
}

func (m *metricCollector) ProcessedEventsInc(eventType string) {
	cnt, err := m.processedEvents.GetMetricWith(prometheus.Labels{eventTypeLabel: eventType})
	if err != nil {
		m.logGetMetricFailed(githubEventsMetricName, err)
		return
	}

	cnt.Inc()
}

func (m *metricCollector) RouteRunsInc(route string, result resultLabelVal) {
	cnt, err := m.routeRuns.GetMetricWith(prometheus.Labels{
		routeLabel:  route,
		resultLabel: string(result),
	})
	if err != nil {
		m.logGetMetricFailed(routeRunsMetricName, err)
		return
	}

	cnt.Inc()
}
