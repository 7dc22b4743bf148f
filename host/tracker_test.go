package host

import (
	"testing"
	"time"

	"smartfan/protocol"
)

func newTestTracker(responses ...protocol.Status) (*Tracker, *fakeExchanger) {
	fake := &fakeExchanger{}
	for _, s := range responses {
		fake.responses = append(fake.responses, byte(s))
	}
	tr := NewTracker(NewClient(fake), DefaultTrackerConfig())
	return tr, fake
}

// armTracker walks a fresh tracker through arming and the fan start.
func armTracker(t *testing.T, tr *Tracker, fake *fakeExchanger, now time.Time) {
	t.Helper()
	fake.responses = append(fake.responses,
		byte(protocol.StatusReady),   // poll sees READY
		byte(protocol.StatusReady),   // start reply (pipelined)
	)
	if err := tr.Step(nil, now); err != nil {
		t.Fatalf("arming step: %v", err)
	}
	if tr.State() != StateIdle {
		t.Fatalf("state after arming = %v, want IDLE", tr.State())
	}
}

func TestTrackerWaitsForButton(t *testing.T) {
	tr, fake := newTestTracker(protocol.StatusHomingOff)

	if err := tr.Step(nil, time.Now()); err != nil {
		t.Fatalf("step: %v", err)
	}
	if tr.State() != StateWaitingButton {
		t.Errorf("state = %v, want WAITING_BUTTON", tr.State())
	}
	if len(fake.sent) != 1 || fake.sent[0] != protocol.CmdPoll {
		t.Errorf("sent = %v, want a single poll", fake.sent)
	}
}

func TestTrackerStartsFanWhenReady(t *testing.T) {
	tr, fake := newTestTracker()
	armTracker(t, tr, fake, time.Now())

	if len(fake.sent) != 2 || fake.sent[1] != protocol.CmdStart {
		t.Errorf("sent = %v, want poll then start", fake.sent)
	}
	if tr.Angle() != centerAngle {
		t.Errorf("angle = %d, want %d", tr.Angle(), centerAngle)
	}
}

func TestTrackerIdleHoldsCenter(t *testing.T) {
	tr, fake := newTestTracker()
	now := time.Now()
	armTracker(t, tr, fake, now)

	fake.responses = append(fake.responses, byte(protocol.StatusRunning))
	if err := tr.Step(nil, now); err != nil {
		t.Fatalf("step: %v", err)
	}
	if tr.State() != StateIdle {
		t.Errorf("state = %v, want IDLE", tr.State())
	}
	if got := fake.sent[len(fake.sent)-1]; got != centerAngle {
		t.Errorf("commanded angle = %d, want %d", got, centerAngle)
	}
}

func TestTrackerSteersTowardSubject(t *testing.T) {
	tests := []struct {
		name      string
		centerX   int
		wantAngle int
	}{
		{"far right of dead zone", 600, centerAngle + 3},
		{"far left of dead zone", 40, centerAngle - 3},
		// The 0.275 ratio spans the whole zone, so at 640 px steering
		// starts 88 px off center.
		{"just right of dead zone", 420, centerAngle + 3},
		{"just left of dead zone", 220, centerAngle - 3},
		{"at dead zone edge", 408, centerAngle},
		{"inside dead zone", 330, centerAngle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, fake := newTestTracker()
			now := time.Now()
			armTracker(t, tr, fake, now)

			fake.responses = append(fake.responses, byte(protocol.StatusRunning))
			err := tr.Step([]Detection{{CenterX: tt.centerX, Area: 100}}, now)
			if err != nil {
				t.Fatalf("step: %v", err)
			}
			if tr.State() != StateTracking {
				t.Errorf("state = %v, want TRACKING", tr.State())
			}
			if tr.Angle() != tt.wantAngle {
				t.Errorf("angle = %d, want %d", tr.Angle(), tt.wantAngle)
			}
		})
	}
}

func TestTrackerPrefersLargestSubject(t *testing.T) {
	tr, fake := newTestTracker()
	now := time.Now()
	armTracker(t, tr, fake, now)

	fake.responses = append(fake.responses, byte(protocol.StatusRunning))
	detections := []Detection{
		{CenterX: 40, Area: 50},   // small, left
		{CenterX: 600, Area: 900}, // large, right
	}
	if err := tr.Step(detections, now); err != nil {
		t.Fatalf("step: %v", err)
	}
	if tr.Angle() != centerAngle+3 {
		t.Errorf("angle = %d, want %d (steered toward the larger subject)",
			tr.Angle(), centerAngle+3)
	}
}

func TestTrackerSearchesAfterLoss(t *testing.T) {
	tr, fake := newTestTracker()
	now := time.Now()
	armTracker(t, tr, fake, now)

	// Track rightward once, then lose the subject.
	fake.responses = append(fake.responses, byte(protocol.StatusRunning))
	if err := tr.Step([]Detection{{CenterX: 600, Area: 100}}, now); err != nil {
		t.Fatalf("tracking step: %v", err)
	}

	fake.responses = append(fake.responses, byte(protocol.StatusRunning))
	if err := tr.Step(nil, now); err != nil {
		t.Fatalf("search step: %v", err)
	}
	if tr.State() != StateSearching {
		t.Errorf("state = %v, want SEARCHING", tr.State())
	}
	if tr.Angle() != centerAngle+6 {
		t.Errorf("angle = %d, want %d (sweep continues rightward)",
			tr.Angle(), centerAngle+6)
	}
}

func TestTrackerStopsAfterWaitTimeout(t *testing.T) {
	tr, fake := newTestTracker()
	now := time.Now()
	armTracker(t, tr, fake, now)

	// Track rightward once, then sweep to the limit.
	fake.responses = append(fake.responses, byte(protocol.StatusRunning))
	if err := tr.Step([]Detection{{CenterX: 600, Area: 100}}, now); err != nil {
		t.Fatalf("tracking step: %v", err)
	}
	for tr.State() == StateSearching || tr.State() == StateTracking {
		fake.responses = append(fake.responses, byte(protocol.StatusRunning))
		if err := tr.Step(nil, now); err != nil {
			t.Fatalf("sweep step: %v", err)
		}
	}
	if tr.State() != StateWaiting {
		t.Fatalf("state = %v, want WAITING", tr.State())
	}
	if tr.Angle() != int(protocol.AngleMax) {
		t.Errorf("angle = %d, want %d", tr.Angle(), protocol.AngleMax)
	}

	// Before the timeout the tracker keeps holding.
	fake.responses = append(fake.responses, byte(protocol.StatusRunning))
	if err := tr.Step(nil, now.Add(time.Second)); err != nil {
		t.Fatalf("holding step: %v", err)
	}
	if tr.State() != StateWaiting {
		t.Errorf("state = %v, want WAITING before the timeout", tr.State())
	}

	// After the timeout it resets the device and stops.
	fake.responses = append(fake.responses, byte(protocol.StatusRunning))
	if err := tr.Step(nil, now.Add(6*time.Second)); err != nil {
		t.Fatalf("timeout step: %v", err)
	}
	if tr.State() != StateStopped {
		t.Errorf("state = %v, want STOPPED after the timeout", tr.State())
	}
	if got := fake.sent[len(fake.sent)-1]; got != protocol.CmdReset {
		t.Errorf("last command = %d, want reset", got)
	}
}

func TestTrackerDetectsManualStop(t *testing.T) {
	tr, fake := newTestTracker()
	now := time.Now()
	armTracker(t, tr, fake, now)

	// A HOMING_OFF reply to steering means the power button stopped
	// the fan at the device.
	fake.responses = append(fake.responses, byte(protocol.StatusHomingOff))
	if err := tr.Step(nil, now); err != nil {
		t.Fatalf("step: %v", err)
	}
	if tr.State() != StateStopped {
		t.Errorf("state = %v, want STOPPED", tr.State())
	}

	// Re-arming at the device restarts the fan right away.
	fake.responses = append(fake.responses,
		byte(protocol.StatusReady), // poll sees READY
		byte(protocol.StatusReady), // start reply (pipelined)
	)
	if err := tr.Step(nil, now); err != nil {
		t.Fatalf("re-arm step: %v", err)
	}
	if tr.State() != StateIdle {
		t.Errorf("state = %v, want IDLE after re-arm", tr.State())
	}
	if got := fake.sent[len(fake.sent)-1]; got != protocol.CmdStart {
		t.Errorf("last command = %d, want start after re-arm", got)
	}
}

func TestTrackerReacquiresWhileSearching(t *testing.T) {
	tr, fake := newTestTracker()
	now := time.Now()
	armTracker(t, tr, fake, now)

	fake.responses = append(fake.responses, byte(protocol.StatusRunning))
	if err := tr.Step([]Detection{{CenterX: 600, Area: 100}}, now); err != nil {
		t.Fatalf("tracking step: %v", err)
	}
	fake.responses = append(fake.responses, byte(protocol.StatusRunning))
	if err := tr.Step(nil, now); err != nil {
		t.Fatalf("search step: %v", err)
	}

	fake.responses = append(fake.responses, byte(protocol.StatusRunning))
	if err := tr.Step([]Detection{{CenterX: 320, Area: 100}}, now); err != nil {
		t.Fatalf("reacquire step: %v", err)
	}
	if tr.State() != StateTracking {
		t.Errorf("state = %v, want TRACKING after reacquisition", tr.State())
	}
}
