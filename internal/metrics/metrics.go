package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Domain counters, exposed on /metrics next to the HTTP collectors.
var (
	CodeRedemptions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "guau",
		Name:      "code_redemptions_total",
		Help:      "Entry code redemption attempts by result",
	}, []string{"result"})

	EventRegistrations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "guau",
		Name:      "event_registrations_total",
		Help:      "Event registration attempts by result",
	}, []string{"result"})

	AttendanceConfirmations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "guau",
		Name:      "attendance_confirmations_total",
		Help:      "Attendance confirmation attempts by result",
	}, []string{"result"})

	AchievementsUnlocked = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "guau",
		Name:      "achievements_unlocked_total",
		Help:      "Achievements granted by achievement type",
	}, []string{"type"})

	KilometersCredited = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "guau",
		Name:      "kilometers_credited_total",
		Help:      "Kilometers credited to the progress ledger by source",
	}, []string{"source"})
)

// Result labels
const (
	ResultOK       = "ok"
	ResultRejected = "rejected"
	ResultError    = "error"
)
