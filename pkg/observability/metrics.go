package observability

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// Metrics publishes application metrics to CloudWatch. Publishing runs
// asynchronously so a slow or failing metrics backend never delays a query.
type Metrics struct {
	namespace string
	client    *cloudwatch.Client
}

// NewMetrics creates a new metrics instance
func NewMetrics(namespace string, client *cloudwatch.Client) *Metrics {
	return &Metrics{
		namespace: namespace,
		client:    client,
	}
}

// Increment records a count of one for the metric
func (m *Metrics) Increment(metric, label string) {
	m.put(metric, label, 1, types.StandardUnitCount)
}

// StartTimer begins a duration measurement for the metric
func (m *Metrics) StartTimer(metric, label string) *TimerHandle {
	return &TimerHandle{
		metrics: m,
		metric:  metric,
		label:   label,
		start:   time.Now(),
	}
}

// put publishes one datum in the background
func (m *Metrics) put(metric, label string, value float64, unit types.StandardUnit) {
	if m.client == nil {
		return
	}

	datum := types.MetricDatum{
		MetricName: aws.String(metric),
		Value:      aws.Float64(value),
		Unit:       unit,
		Timestamp:  aws.Time(time.Now()),
		Dimensions: []types.Dimension{
			{
				Name:  aws.String("Label"),
				Value: aws.String(label),
			},
		},
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		// Errors are dropped; metrics must never fail a request
		_, _ = m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
			Namespace:  aws.String(m.namespace),
			MetricData: []types.MetricDatum{datum},
		})
	}()
}

// TimerHandle measures elapsed time until Stop
type TimerHandle struct {
	metrics *Metrics
	metric  string
	label   string
	start   time.Time
}

// Stop records the elapsed duration in milliseconds
func (t *TimerHandle) Stop() {
	elapsed := float64(time.Since(t.start).Milliseconds())
	t.metrics.put(t.metric, t.label, elapsed, types.StandardUnitMilliseconds)
}
