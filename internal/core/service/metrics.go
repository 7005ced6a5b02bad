package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	liveCallsGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "callsim",
		Name:      "live_calls",
		Help:      "Number of live (active, ringing, dialing) calls.",
	})

	callsPlacedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "callsim",
		Name:      "calls_placed_total",
		Help:      "Outgoing calls successfully placed.",
	})

	disconnectsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "callsim",
		Name:      "disconnects_total",
		Help:      "Disconnect notifications sent, by cause.",
	}, []string{"cause"})

	compatibilityTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "callsim",
		Name:      "compatibility_checks_total",
		Help:      "Compatibility probes answered, by result.",
	}, []string{"compatible"})

	simulatedCrashesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "callsim",
		Name:      "simulated_crashes_total",
		Help:      "Calls placed to the crash sentinel number.",
	})
)
