package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Realtime metrics
var (
	// WSConnections tracks currently registered websocket clients
	WSConnections = promauto.With(Registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ws_connections",
			Help:      "Current number of connected websocket clients",
		},
	)

	// WSMessagesReceived counts inbound websocket messages by event name
	WSMessagesReceived = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ws_messages_received_total",
			Help:      "Total number of websocket messages received",
		},
		[]string{"event"}, // event: join_event|leave_event|unknown|invalid
	)

	// WSBroadcasts counts attendee updates fanned out to all clients
	WSBroadcasts = promauto.With(Registry).NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ws_broadcasts_total",
			Help:      "Total number of update_attendees broadcasts",
		},
	)

	// WSSlowClientsDropped counts clients disconnected because their send buffer was full
	WSSlowClientsDropped = promauto.With(Registry).NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ws_slow_clients_dropped_total",
			Help:      "Total number of websocket clients dropped for not keeping up",
		},
	)
)
