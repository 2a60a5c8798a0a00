// Package api is the transport core shared by the Dappier sync and async
// clients.
//
// # Architecture
//
//   - session.go: Session, the reusable HTTP handle. It installs the API key
//     transport, optionally the debug logging transport, and performs one
//     JSON POST per call via PostJSON.
//   - errors.go: TransportError (network failure or non-2xx status),
//     ParseError (body is not the expected JSON) and ErrSessionClosed.
//   - metrics.go: Prometheus request counters and latency histograms.
//
// Session never retries. Each PostJSON is exactly one round trip.
//
// # Usage
//
//	s := api.NewSession(apiKey, constants.BaseURL, api.SessionOptions{})
//	defer s.Close()
//	var out Response
//	err := s.PostJSON(ctx, api.Request{
//	    Operation: "real_time_search",
//	    Path:      "/app/aimodel/" + modelID,
//	    Body:      map[string]string{"query": q},
//	}, &out)
package api
