package session

import (
	"time"

	sess "github.com/evalyze/evalyze/internal/session"
)

// loadedMsg carries the generated questions back to the screen.
type loadedMsg sess.Loaded

// timerTickMsg is sent every second to drive the countdown.
type timerTickMsg time.Time
