// Fan speed control: three levels driven through an inverted-duty PWM
// channel, with cumulative indicator outputs.

package core

// FanPWMTop is the fan PWM period top value (8 kHz at the configured
// timer clock).
const FanPWMTop = 1999

// fanDutyTable maps speed level to the fan PWM compare value. Duty
// control is inverted (larger value = less power). The numeric mapping
// is kept exactly as the hardware was validated with, even though the
// level ordering reads backwards against the inverted duty sense; do
// not "fix" it without bench time.
var fanDutyTable = [3]uint16{
	FanPWMTop * 6 / 10, // level 0: 60% of the period
	FanPWMTop * 4 / 10, // level 1: 40%
	FanPWMTop * 2 / 10, // level 2: 20%
}

// indicatorTable maps speed level to the set of lit indicators,
// cumulative by level: each level lights its own indicator plus all
// lower ones.
var indicatorTable = [3][3]bool{
	{true, false, false},
	{true, true, false},
	{true, true, true},
}

// cycleSpeed advances the speed level 0 -> 1 -> 2 -> 0 and applies the
// matching duty value. Only called while the fan is running.
func (c *Controller) cycleSpeed() {
	c.state.speedLevel = (c.state.speedLevel + 1) % 3
	c.applySpeed(c.state.speedLevel)
	DebugPrintln("fan speed level " + itoa(int(c.state.speedLevel)))
}

// applySpeed writes the duty value for level and refreshes the
// indicators.
func (c *Controller) applySpeed(level uint8) {
	_ = MustFanPWM().SetDuty(fanDutyTable[level])
	c.updateIndicators()
}

// updateIndicators drives the three indicator outputs from the lookup
// table. Nothing is lit while the fan is stopped.
func (c *Controller) updateIndicators() {
	gpio := MustGPIO()
	pins := [3]GPIOPin{c.pins.IndicatorLow, c.pins.IndicatorMedium, c.pins.IndicatorHigh}

	if !c.state.motorRunning {
		for _, pin := range pins {
			_ = gpio.SetPin(pin, false)
		}
		return
	}

	lit := indicatorTable[c.state.speedLevel]
	for i, pin := range pins {
		_ = gpio.SetPin(pin, lit[i])
	}
}
