// Package http provides the REST handlers for the drive server.
//
// Endpoints:
//   - GET  /              - Service banner
//   - GET  /health        - Liveness and headline drive numbers
//   - GET  /services      - Registered services (?category= filters)
//   - POST /services/discover - Rank services against a query
//   - POST /services/execute  - Run a tool ("provider.tool")
//   - POST /sessions      - Mint a session cursor
//   - GET  /sessions      - List session cursors
//   - GET  /sessions/:id  - Inspect one cursor
//   - DELETE /sessions/:id - Drop a cursor
//   - GET  /metrics/json  - Request totals and registry stats
//
// Tool failures are not transport errors: a tool that ran but could not
// do its work still returns 200 with success=false and a message. Only
// malformed requests and unknown tools map to 4xx.
package http
