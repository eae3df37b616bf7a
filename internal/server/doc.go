// Package server serves the dashboard over HTTP.
//
// The page at / holds the four selection controls and the three charts as
// inline SVG. Every request is a complete render of the submitted
// selections. The JSON endpoints under /api expose the same render model.
//
//	GET /                   dashboard page
//	GET /charts/{chart}.svg reference, inside or outside chart
//	GET /api/render         full render model
//	GET /api/reference      sorted reference table
//	GET /api/scenarios      the 16 scenario files
//	GET /healthz            liveness
//	GET /metrics            Prometheus metrics
package server
