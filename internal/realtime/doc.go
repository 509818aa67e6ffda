// Package realtime fans attendee count changes out to connected websocket clients.
//
// A single Hub goroutine owns the connection registry and every client's send
// buffer. Each connection runs a read pump that dispatches join_event and
// leave_event messages to the attendance service, and a write pump that drains
// the send buffer and keeps the connection alive with pings.
package realtime
