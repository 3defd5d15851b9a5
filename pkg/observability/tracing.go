package observability

import (
	"context"

	"github.com/aws/aws-xray-sdk-go/xray"
)

// Tracer opens X-Ray subsegments around analysis passes. Subsegments are
// named <service>.<pass> so graph and cluster timings separate in the
// trace view.
type Tracer struct {
	service string
}

// NewTracer creates a tracer for the named service
func NewTracer(service string) *Tracer {
	return &Tracer{service: service}
}

// TraceFunction runs fn inside a subsegment named after the analysis pass.
// Errors are recorded on the subsegment and returned unchanged.
func (t *Tracer) TraceFunction(ctx context.Context, pass string, fn func(context.Context) error) error {
	ctx, seg := xray.BeginSubsegment(ctx, t.service+"."+pass)
	defer seg.Close(nil)

	err := fn(ctx)
	if err != nil {
		seg.AddError(err)
	}

	return err
}

// Annotate attaches an indexed annotation to the active subsegment, so
// traces can be filtered by collection. No-op outside a trace.
func (t *Tracer) Annotate(ctx context.Context, key, value string) {
	if seg := xray.GetSegment(ctx); seg != nil {
		seg.AddAnnotation(key, value)
	}
}
