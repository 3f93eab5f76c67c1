// Package metrics records build and stage timings.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so the one-shot `pagegen build` carries no metrics overhead.
// The preview server installs a PrometheusRecorder and serves it on /metrics:
//
//	reg := prometheus.NewRegistry()
//	recorder := metrics.NewPrometheusRecorder(reg)
//	mux.Handle("/metrics", metrics.HTTPHandler(reg))
package metrics
