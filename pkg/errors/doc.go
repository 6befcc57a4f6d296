// Package errors provides structured error types for better observability
// and programmatic error handling across hostid.
//
// Every failure the detector can surface has its own ErrorCode. Callers
// switch on CodeOf(err) rather than inspecting message text:
//
//	switch errors.CodeOf(err) {
//	case errors.ErrCodeDataIntegrity:
//	    // probes ran but the values are not plausible
//	case errors.ErrCodeArchDetection:
//	    // architecture probe failed or is gated off
//	}
//
// Wrapping with extra context:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeTimeout,
//	    "host identity detection timed out",
//	    ctx.Err(),
//	    map[string]any{
//	        "command": "lsb_release",
//	    },
//	)
package errors
