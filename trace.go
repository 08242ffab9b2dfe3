package metagrammar

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// CoreTracer is the tracer T() returns for this root package, following
// the same package-level-var convention as gtrace.SyntaxTracer. The
// sub-packages do not read CoreTracer: they trace through
// gtrace.SyntaxTracer directly. Hosts that want tracing output from the
// whole pipeline should call SetTracer before invoking any part of it.
var CoreTracer tracing.Trace = gtrace.SyntaxTracer

// SetTracer installs t both as CoreTracer (used by T()) and as
// gtrace.SyntaxTracer (used by every sub-package).
func SetTracer(t tracing.Trace) {
	CoreTracer = t
	gtrace.SyntaxTracer = t
}

// T returns the tracer currently installed for the metagrammar core.
func T() tracing.Trace {
	if CoreTracer == nil {
		return gtrace.SyntaxTracer
	}
	return CoreTracer
}
