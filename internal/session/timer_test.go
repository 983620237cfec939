package session

import "testing"

func TestTimer_ExpiresOnceAtZero(t *testing.T) {
	fired := 0
	tm := NewTimer(func() { fired++ })
	tm.Start(3)

	tm.Tick()
	tm.Tick()
	if fired != 0 {
		t.Fatalf("fired early after 2 ticks")
	}
	if tm.Remaining() != 1 {
		t.Fatalf("remaining = %d, want 1", tm.Remaining())
	}
	tm.Tick()
	if fired != 1 {
		t.Fatalf("fired = %d, want 1", fired)
	}
	tm.Tick()
	tm.Tick()
	if fired != 1 {
		t.Fatalf("fired again after expiry: %d", fired)
	}
	if tm.Elapsed() != 3 {
		t.Errorf("elapsed = %d, want 3", tm.Elapsed())
	}
}

func TestTimer_ZeroBudgetFiresImmediately(t *testing.T) {
	fired := 0
	tm := NewTimer(func() { fired++ })
	tm.Start(0)
	if fired != 1 {
		t.Fatalf("fired = %d, want 1", fired)
	}
	if tm.Remaining() != 0 {
		t.Fatalf("remaining = %d, want 0", tm.Remaining())
	}
	tm.Tick()
	if tm.Remaining() != 0 || fired != 1 {
		t.Fatalf("tick after zero-budget expiry changed state: remaining=%d fired=%d", tm.Remaining(), fired)
	}
}

func TestTimer_ResetReplacesCountdown(t *testing.T) {
	fired := 0
	tm := NewTimer(func() { fired++ })
	tm.Start(2)
	tm.Tick()
	tm.Reset(5)
	if tm.Remaining() != 5 {
		t.Fatalf("remaining = %d, want 5", tm.Remaining())
	}
	tm.Tick()
	tm.Tick()
	if fired != 0 {
		t.Fatal("old countdown fired after reset")
	}
}

func TestTimer_CancelIsIdempotent(t *testing.T) {
	fired := 0
	tm := NewTimer(func() { fired++ })
	tm.Start(1)
	tm.Cancel()
	tm.Cancel()
	tm.Tick()
	if fired != 0 {
		t.Fatal("cancelled timer fired")
	}
	if tm.Active() {
		t.Fatal("cancelled timer still active")
	}

	tm.Start(1)
	tm.Tick()
	tm.Cancel()
	if fired != 1 {
		t.Fatalf("fired = %d, want 1", fired)
	}
}

func TestTimer_ExpiryCallbackMayRestart(t *testing.T) {
	var tm *Timer
	fired := 0
	tm = NewTimer(func() {
		fired++
		if fired < 3 {
			tm.Reset(1)
		}
	})
	tm.Start(1)
	tm.Tick()
	tm.Tick()
	tm.Tick()
	tm.Tick()
	if fired != 3 {
		t.Fatalf("fired = %d, want 3", fired)
	}
	if tm.Active() {
		t.Fatal("timer should be idle after last expiry")
	}
}
