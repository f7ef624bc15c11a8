package worker

import (
	"github.com/gridsnake/engine/rules"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	gameTicks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "snake",
			Subsystem: "game",
			Name:      "ticks_total",
			Help:      "Ticks processed by the game.",
		},
	)
	gameEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "snake",
			Subsystem: "game",
			Name:      "events_total",
			Help:      "Game events by kind.",
		},
		[]string{"event"},
	)
	gameRounds = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "snake",
			Subsystem: "game",
			Name:      "rounds_total",
			Help:      "Rounds started after the first one.",
		},
	)
	snakeLength = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "snake",
			Subsystem: "game",
			Name:      "snake_length",
			Help:      "Current length of the snake.",
		},
	)
)

func init() {
	prometheus.MustRegister(gameTicks, gameEvents, gameRounds, snakeLength)
}

func recordEvent(event rules.Event, frame *rules.Frame) {
	if event != rules.EventReset {
		gameTicks.Inc()
	}
	gameEvents.WithLabelValues(string(event)).Inc()
	if event.Restarted() {
		gameRounds.Inc()
	}
	snakeLength.Set(float64(len(frame.Snake)))
}
