// Package metrics defines and registers the custom Prometheus metrics of the
// Sociopedia API. It is the single source of truth for metric names, labels,
// and help strings.
//
// All metrics are registered with the default Prometheus registry at package
// initialisation; HTTP request metrics come from echoprometheus in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sociopedia"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts registration and login outcomes.
// Labels:
//   - operation: "register" or "login"
//   - result: "success", "error", "unknown_user", "invalid_credentials"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of registration and login attempts, by outcome.",
	},
	[]string{"operation", "result"},
)

// TokenVerificationsTotal counts decisions of the identity verification middleware.
// Label:
//   - result: "ok", "missing", "invalid"
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of bearer token checks on protected routes.",
	},
	[]string{"result"},
)

// RateLimitedTotal counts requests rejected by the auth rate limiter.
var RateLimitedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected with 429.",
	},
)

// ── Social metrics ────────────────────────────────────────────────────────────

// PostsCreatedTotal counts newly created posts.
var PostsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_created_total",
		Help:      "Total number of posts created.",
	},
)

// FriendshipChangesTotal counts friend toggles.
// Label:
//   - action: "added" or "removed"
var FriendshipChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "friendship_changes_total",
		Help:      "Total number of friendships added or removed.",
	},
	[]string{"action"},
)

// UploadsTotal counts picture uploads.
// Labels:
//   - driver: "local" or "s3"
//   - result: "success" or "error"
var UploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total number of picture uploads, by storage driver and result.",
	},
	[]string{"driver", "result"},
)

// UploadBytes observes the size of stored pictures.
var UploadBytes = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upload_size_bytes",
		Help:      "Size of uploaded pictures in bytes.",
		Buckets:   prometheus.ExponentialBuckets(16*1024, 4, 6), // 16KiB … 16MiB
	},
)
