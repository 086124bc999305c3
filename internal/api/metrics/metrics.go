// Package metrics defines and registers all custom Prometheus metrics for
// the pairchat service. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at package init;
// the /metrics route exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pairchat"

// ── Pairing metrics ──────────────────────────────────────────────────────────

// PairingsTotal counts pairing attempts by outcome.
// Label:
//   - result: "ok", "self", "unknown", or "error"
var PairingsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pairings_total",
		Help:      "Total number of pairing attempts, by outcome.",
	},
	[]string{"result"},
)

// ── Message metrics ──────────────────────────────────────────────────────────

// MessagesSentTotal counts messages accepted into a room log.
var MessagesSentTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_sent_total",
		Help:      "Total number of messages appended to room logs.",
	},
)

// ── Presence metrics ─────────────────────────────────────────────────────────

// PresenceUpdatesTotal counts presence flips by the new state.
// Label:
//   - state: "online" or "offline"
var PresenceUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "presence_updates_total",
		Help:      "Total number of presence flips, by resulting state.",
	},
	[]string{"state"},
)

// ── Subscription metrics ─────────────────────────────────────────────────────

// ActiveStreams tracks currently open subscription streams.
// Label:
//   - kind: "websocket"
var ActiveStreams = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_streams",
		Help:      "Number of currently open subscription streams, by kind.",
	},
	[]string{"kind"},
)

// ── Auth metrics ─────────────────────────────────────────────────────────────

// SignupsTotal counts successful account creations.
var SignupsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of accounts created.",
	},
)

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "ok" or "failed"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"result"},
)
