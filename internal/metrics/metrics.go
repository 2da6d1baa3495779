package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
)

const outcomeDraw = "draw"

type Game struct {
	moves    prometheus.Counter
	resets   prometheus.Counter
	finished *prometheus.CounterVec
}

func NewGame(reg prometheus.Registerer) *Game {
	factory := promauto.With(reg)

	return &Game{
		moves: factory.NewCounter(prometheus.CounterOpts{
			Name: "tictactoe_moves_total",
			Help: "Total number of applied moves",
		}),
		resets: factory.NewCounter(prometheus.CounterOpts{
			Name: "tictactoe_resets_total",
			Help: "Total number of game resets",
		}),
		finished: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tictactoe_games_finished_total",
			Help: "Finished games by outcome",
		}, []string{"outcome"}), // outcome=x|o|draw
	}
}

// Observe is a tictactoe.Subscriber.
func (that *Game) Observe(transition tictactoe.Transition) {
	switch transition.Kind {
	case tictactoe.TransitionReset:
		that.resets.Inc()
	case tictactoe.TransitionMove:
		that.moves.Inc()

		if transition.Game.IsFinished() {
			that.finished.WithLabelValues(outcome(transition.Game.Winner)).Inc()
		}
	}
}

func outcome(winner entity.Mark) string {
	if winner == entity.PlayerTie {
		return outcomeDraw
	}
	return strings.ToLower(string(winner))
}
