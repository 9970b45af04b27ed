package autopilot

import (
	"context"
	"time"

	"github.com/vovakirdan/space-defender/internal/engine"
)

// Round is the result of one finished round in a simulation.
type Round struct {
	Number  int
	Outcome engine.Outcome
	Score   int
	Elapsed time.Duration
}

// Summary aggregates the rounds a simulation played.
type Summary struct {
	Rounds []Round
	Frames uint64
}

// Wins returns how many rounds were won.
func (s Summary) Wins() int {
	n := 0
	for _, r := range s.Rounds {
		if r.Outcome == engine.OutcomeWon {
			n++
		}
	}
	return n
}

// Best returns the highest round score.
func (s Summary) Best() int {
	best := 0
	for _, r := range s.Rounds {
		best = max(best, r.Score)
	}
	return best
}

// AvgScore returns the mean round score, 0 without rounds.
func (s Summary) AvgScore() float64 {
	if len(s.Rounds) == 0 {
		return 0
	}
	total := 0
	for _, r := range s.Rounds {
		total += r.Score
	}
	return float64(total) / float64(len(s.Rounds))
}

// SimOptions configures Simulate.
type SimOptions struct {
	FPS     int           // Frame rate of the headless loop (default 60)
	Rounds  int           // Stop after this many finished rounds, 0 = until ctx is done
	OnRound func(r Round) // Called once per finished round
}

// Simulate runs the frame loop without a terminal: it starts eng, integrates
// frames at the given rate and feeds each snapshot to the pilot. It returns
// when ctx is done or enough rounds finished. The engine is shut down on return.
func Simulate(ctx context.Context, eng *engine.Engine, p *Pilot, opts SimOptions) (Summary, error) {
	defer eng.Shutdown()

	if err := eng.Start(ctx); err != nil {
		return Summary{}, err
	}

	fps := opts.FPS
	if fps <= 0 {
		fps = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	var sum Summary
	recorded := 0
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return sum, nil
		case <-eng.Done():
			return sum, nil
		case now := <-ticker.C:
			snap := eng.Frame(now.Sub(last))
			last = now
			sum.Frames++

			if snap.Terminal() && snap.Round != recorded {
				recorded = snap.Round
				r := Round{Number: snap.Round, Outcome: snap.Outcome, Score: snap.Score, Elapsed: snap.Elapsed}
				sum.Rounds = append(sum.Rounds, r)
				if opts.OnRound != nil {
					opts.OnRound(r)
				}
				if opts.Rounds > 0 && len(sum.Rounds) >= opts.Rounds {
					return sum, nil
				}
			}

			for _, a := range p.Next(snap) {
				eng.Dispatch(a)
			}
		}
	}
}
