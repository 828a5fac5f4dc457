// Package automation performs routine game-page actions on the user's
// behalf: starting a match from the lobby and replaying once it finishes.
// It is frame-driven; call Update once per frame from the UI loop.
package automation

import (
	"fmt"
	"log/slog"
	"time"
)

// Phase is the state of the game page as far as automation cares.
type Phase uint8

const (
	PhaseUnknown  Phase = iota // page not recognised, or loading
	PhaseLobby                 // waiting to start
	PhasePlaying               // match in progress
	PhaseFinished              // results shown, replay possible
)

func (p Phase) String() string {
	switch p {
	case PhaseLobby:
		return "lobby"
	case PhasePlaying:
		return "playing"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Page is the game page being automated.
type Page interface {
	Phase() Phase
	Start() error
	Replay() error
}

// Config controls which actions run and when.
type Config struct {
	Enabled bool `yaml:"enabled"`

	AutoStart  bool          `yaml:"autoStart"`
	StartDelay time.Duration `yaml:"startDelay"`

	AutoReplay  bool          `yaml:"autoReplay"`
	ReplayDelay time.Duration `yaml:"replayDelay"`
	// MaxReplays caps automatic replays; 0 means no cap.
	MaxReplays int `yaml:"maxReplays"`
}

// DefaultConfig returns automation switched off with conservative delays.
func DefaultConfig() Config {
	return Config{
		StartDelay:  2 * time.Second,
		ReplayDelay: 3 * time.Second,
	}
}

// Validate rejects negative delays and caps.
func (c Config) Validate() error {
	if c.StartDelay < 0 {
		return fmt.Errorf("automation: negative startDelay %v", c.StartDelay)
	}
	if c.ReplayDelay < 0 {
		return fmt.Errorf("automation: negative replayDelay %v", c.ReplayDelay)
	}
	if c.MaxReplays < 0 {
		return fmt.Errorf("automation: negative maxReplays %d", c.MaxReplays)
	}
	return nil
}

// Automator watches a Page and acts at most once per visit to a phase.
type Automator struct {
	page Page
	cfg  Config
	log  *slog.Logger

	phase   Phase
	inPhase time.Duration
	acted   bool
	replays int
}

// New creates an Automator for page. A nil logger uses slog.Default.
func New(page Page, cfg Config, log *slog.Logger) *Automator {
	if log == nil {
		log = slog.Default()
	}
	return &Automator{
		page: page,
		cfg:  cfg,
		log:  log.With("component", "automation"),
	}
}

// SetEnabled switches all automatic actions on or off.
func (a *Automator) SetEnabled(on bool) {
	if a.cfg.Enabled == on {
		return
	}
	a.cfg.Enabled = on
	a.log.Info("automation toggled", "enabled", on)
}

// Enabled reports whether automatic actions run.
func (a *Automator) Enabled() bool { return a.cfg.Enabled }

// Config returns the active configuration.
func (a *Automator) Config() Config { return a.cfg }

// Replays returns how many automatic replays have been issued.
func (a *Automator) Replays() int { return a.replays }

// ResetReplays clears the replay count, restoring the MaxReplays budget.
func (a *Automator) ResetReplays() { a.replays = 0 }

// Update advances the automator by dt. The frame that enters a phase counts
// as its first dt of that phase; once the configured delay has elapsed the
// matching action runs.
// A failed action is logged and not retried until the page leaves and
// re-enters the phase.
func (a *Automator) Update(dt time.Duration) {
	ph := a.page.Phase()
	if ph != a.phase {
		a.log.Debug("phase changed", "from", a.phase, "to", ph)
		a.phase = ph
		a.inPhase = dt
		a.acted = false
	} else {
		a.inPhase += dt
	}

	if !a.cfg.Enabled || a.acted {
		return
	}

	switch ph {
	case PhaseLobby:
		if a.cfg.AutoStart && a.inPhase >= a.cfg.StartDelay {
			a.acted = true
			a.run("start", a.page.Start)
		}
	case PhaseFinished:
		if !a.cfg.AutoReplay || a.inPhase < a.cfg.ReplayDelay {
			return
		}
		a.acted = true
		if a.cfg.MaxReplays > 0 && a.replays >= a.cfg.MaxReplays {
			a.log.Info("replay budget exhausted", "max", a.cfg.MaxReplays)
			return
		}
		a.replays++
		a.run("replay", a.page.Replay)
	}
}

func (a *Automator) run(action string, fn func() error) {
	if err := fn(); err != nil {
		a.log.Warn("automatic action failed", "action", action, "err", err)
		return
	}
	a.log.Debug("automatic action done", "action", action, "after", a.inPhase)
}
