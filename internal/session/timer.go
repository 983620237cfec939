package session

// Timer is a per-question countdown driven by Tick calls, one per
// wall-clock second. It is not safe for concurrent use; the controller
// owns it and feeds it ticks from its event loop.
type Timer struct {
	budget    int
	remaining int
	active    bool
	onExpire  func()
}

// NewTimer creates an idle timer that calls onExpire when a countdown
// reaches zero.
func NewTimer(onExpire func()) *Timer {
	return &Timer{onExpire: onExpire}
}

// Start begins a countdown of budget seconds, replacing any pending one.
// A budget of zero or less expires immediately.
func (t *Timer) Start(budget int) {
	if budget < 0 {
		budget = 0
	}
	t.budget = budget
	t.remaining = budget
	t.active = true
	if budget == 0 {
		t.expire()
	}
}

// Reset cancels the pending countdown and starts a new one.
func (t *Timer) Reset(budget int) {
	t.Cancel()
	t.Start(budget)
}

// Cancel stops the countdown. Cancelling an idle or expired timer is a no-op.
func (t *Timer) Cancel() {
	t.active = false
}

// Tick advances the countdown by one second.
func (t *Timer) Tick() {
	if !t.active {
		return
	}
	if t.remaining > 0 {
		t.remaining--
	}
	if t.remaining == 0 {
		t.expire()
	}
}

// expire must be the last thing a caller does: onExpire may restart the timer.
func (t *Timer) expire() {
	t.active = false
	if t.onExpire != nil {
		t.onExpire()
	}
}

// Active reports whether a countdown is running.
func (t *Timer) Active() bool { return t.active }

// Remaining returns the seconds left on the current countdown.
func (t *Timer) Remaining() int { return t.remaining }

// Elapsed returns the seconds consumed from the current budget.
func (t *Timer) Elapsed() int { return t.budget - t.remaining }
