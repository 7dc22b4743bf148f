package host

import (
	"time"

	"smartfan/protocol"
)

// TrackerState enumerates the supervisor states.
type TrackerState uint8

const (
	// StateWaitingButton waits for the user to arm the device with the
	// power button; the supervisor starts the fan as soon as it sees
	// READY.
	StateWaitingButton TrackerState = iota

	// StateStopped means the fan was stopped (manually or by a reset
	// timeout); the supervisor waits for the user to re-arm.
	StateStopped

	// StateIdle runs the fan centered with nobody detected yet.
	StateIdle

	// StateTracking steers the fan toward the detected subject.
	StateTracking

	// StateSearching lost the subject and sweeps onward in the last
	// known direction.
	StateSearching

	// StateWaiting reached a sweep limit without reacquiring; after the
	// reset timeout the supervisor stops the fan.
	StateWaiting
)

func (s TrackerState) String() string {
	switch s {
	case StateWaitingButton:
		return "WAITING_BUTTON"
	case StateStopped:
		return "STOPPED"
	case StateIdle:
		return "IDLE"
	case StateTracking:
		return "TRACKING"
	case StateSearching:
		return "SEARCHING"
	case StateWaiting:
		return "WAITING"
	}
	return "UNKNOWN"
}

// Detection is one detected subject in the camera frame. CenterX is
// the horizontal center in pixels; Area ranks candidates when several
// are present.
type Detection struct {
	CenterX int
	Area    int
}

// TrackerConfig tunes the supervisor.
type TrackerConfig struct {
	// FrameWidth is the camera frame width in pixels.
	FrameWidth int

	// DeadZoneRatio is the full width of the centered dead zone as a
	// fraction of the frame width. Subjects inside it need no steering.
	DeadZoneRatio float64

	// MoveStep is the angle increment in degrees per supervisor step.
	MoveStep int

	// ResetTimeout is how long WAITING holds at a sweep limit before
	// stopping the fan.
	ResetTimeout time.Duration
}

// DefaultTrackerConfig matches the deployed tuning.
func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{
		FrameWidth:    640,
		DeadZoneRatio: 0.275,
		MoveStep:      3,
		ResetTimeout:  5 * time.Second,
	}
}

const centerAngle = 90

// Tracker drives the device from periodic detection input. Call Step
// once per frame; it polls or steers the device as its state requires.
type Tracker struct {
	client *Client
	cfg    TrackerConfig

	state TrackerState
	angle int

	// lastDirection is -1 toward AngleMin, +1 toward AngleMax, 0 when
	// no sweep direction is established yet.
	lastDirection int
	waitStart     time.Time

	logf func(format string, args ...interface{})
}

// NewTracker creates a supervisor in WAITING_BUTTON.
func NewTracker(client *Client, cfg TrackerConfig) *Tracker {
	return &Tracker{
		client: client,
		cfg:    cfg,
		state:  StateWaitingButton,
		angle:  centerAngle,
		logf:   func(string, ...interface{}) {},
	}
}

// SetLogf installs a log sink; nil silences logging.
func (t *Tracker) SetLogf(logf func(format string, args ...interface{})) {
	if logf == nil {
		logf = func(string, ...interface{}) {}
	}
	t.logf = logf
}

// State reports the current supervisor state.
func (t *Tracker) State() TrackerState { return t.state }

// Angle reports the last commanded angle in degrees.
func (t *Tracker) Angle() int { return t.angle }

// Step advances the supervisor by one frame. detections holds the
// subjects found in the frame, now is the frame timestamp.
func (t *Tracker) Step(detections []Detection, now time.Time) error {
	switch t.state {
	case StateWaitingButton, StateStopped:
		return t.awaitArm()
	}

	detected := len(detections) > 0

	// Reacquisition or loss flips the tracking states before steering.
	if detected && t.state != StateTracking {
		t.logf("subject acquired, tracking")
		t.state = StateTracking
	} else if !detected && t.state == StateTracking {
		t.logf("subject lost, searching")
		t.state = StateSearching
	}

	target := t.angle
	switch t.state {
	case StateIdle:
		target = centerAngle

	case StateTracking:
		target = t.steer(largest(detections))

	case StateSearching:
		target = t.sweep(now)

	case StateWaiting:
		if now.Sub(t.waitStart) >= t.cfg.ResetTimeout {
			t.logf("wait expired, stopping fan")
			if _, err := t.client.Reset(); err != nil {
				return err
			}
			t.state = StateStopped
			t.angle = centerAngle
			t.lastDirection = 0
			return nil
		}
	}

	return t.command(target)
}

// awaitArm polls until the user arms the device, then starts the fan.
// STOPPED takes the same path, so a re-arm after a manual stop
// restarts the fan immediately.
func (t *Tracker) awaitArm() error {
	status, err := t.client.Poll()
	if err != nil {
		return err
	}
	if status != protocol.StatusReady {
		return nil
	}
	t.logf("device ready, starting fan")
	if _, err := t.client.Start(); err != nil {
		return err
	}
	t.state = StateIdle
	t.angle = centerAngle
	t.lastDirection = 0
	return nil
}

// steer computes the next angle toward the chosen subject. Subjects
// inside the dead zone hold the current angle.
func (t *Tracker) steer(d Detection) int {
	frameCenter := t.cfg.FrameWidth / 2
	// DeadZoneRatio spans the whole zone; steering kicks in half a
	// zone width away from center.
	deadZone := int(float64(t.cfg.FrameWidth) * t.cfg.DeadZoneRatio / 2)

	offset := d.CenterX - frameCenter
	switch {
	case offset > deadZone:
		t.lastDirection = 1
		return t.clampAngle(t.angle + t.cfg.MoveStep)
	case offset < -deadZone:
		t.lastDirection = -1
		return t.clampAngle(t.angle - t.cfg.MoveStep)
	}
	return t.angle
}

// sweep continues in the last steering direction; hitting a limit
// moves the supervisor into WAITING.
func (t *Tracker) sweep(now time.Time) int {
	if t.lastDirection == 0 {
		t.lastDirection = 1
	}
	next := t.clampAngle(t.angle + t.lastDirection*t.cfg.MoveStep)
	if next == t.angle {
		t.logf("sweep limit reached, waiting %s", t.cfg.ResetTimeout)
		t.state = StateWaiting
		t.waitStart = now
	}
	return next
}

func (t *Tracker) clampAngle(deg int) int {
	if deg < int(protocol.AngleMin) {
		return int(protocol.AngleMin)
	}
	if deg > int(protocol.AngleMax) {
		return int(protocol.AngleMax)
	}
	return deg
}

// command sends the angle and reconciles against the reported status.
// A HOMING_OFF reply means the user stopped the fan at the device.
func (t *Tracker) command(target int) error {
	status, err := t.client.SetAngle(target)
	if err != nil {
		return err
	}
	switch status {
	case protocol.StatusRunning:
		t.angle = target
	case protocol.StatusHomingOff:
		t.logf("fan stopped at the device")
		t.state = StateStopped
		t.angle = centerAngle
		t.lastDirection = 0
	case protocol.StatusReady:
		// Armed but not running; the start command was lost or the
		// device rebooted. Drop back and re-start on the next step.
		t.logf("device armed but not running, restarting")
		t.state = StateWaitingButton
	}
	return nil
}

// largest picks the biggest detection, favoring the nearest subject.
func largest(detections []Detection) Detection {
	best := detections[0]
	for _, d := range detections[1:] {
		if d.Area > best.Area {
			best = d
		}
	}
	return best
}
