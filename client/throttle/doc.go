// Package throttle limits how hard a share host is hit, using the
// token-bucket limiter from [golang.org/x/time/rate].
//
// Two limits are available. [NewRoundTripper] caps the number of
// requests per second sent through an [http.RoundTripper]:
//
//	rt, err := throttle.NewRoundTripper(
//		2, // requests per second
//		1, // burst capacity
//		func() *slog.Logger { return slog.Default() },
//		http.DefaultTransport,
//	)
//	httpClient := &http.Client{Transport: rt}
//
// [NewReader] caps the bandwidth of a response body:
//
//	body, err := throttle.NewReader(ctx, resp.Body, 512<<10) // 512KiB/s
//
// Both block until tokens are available or the context ends.
package throttle
