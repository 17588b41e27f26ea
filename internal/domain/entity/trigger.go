package entity

// NeverAge is the age of a trigger whose event has not happened yet.
const NeverAge = 1000.0

// BufferedTrigger remembers how long ago an event happened and whether that
// was recent enough to still count. Jump buffering, coyote time and dash
// buffering all use it.
type BufferedTrigger struct {
	age    float64
	window float64
}

// NewBufferedTrigger creates a trigger that has never fired.
func NewBufferedTrigger(window float64) BufferedTrigger {
	return BufferedTrigger{age: NeverAge, window: window}
}

// Arm marks the event as happening right now.
func (t *BufferedTrigger) Arm() {
	t.age = 0
}

// Consume moves the age exactly onto the window boundary so Ready reports
// false until the trigger is armed again.
func (t *BufferedTrigger) Consume() {
	t.age = t.window
}

// Tick ages the trigger by dt seconds.
func (t *BufferedTrigger) Tick(dt float64) {
	t.age += dt
}

// Ready reports whether the event is still inside its window.
func (t BufferedTrigger) Ready() bool {
	return t.age < t.window
}

// Expired reports whether the age has gone strictly past the window.
// A consumed trigger sits on the boundary and is not expired.
func (t BufferedTrigger) Expired() bool {
	return t.age > t.window
}

// Age returns seconds since the trigger was last armed.
func (t BufferedTrigger) Age() float64 {
	return t.age
}

// Window returns the trigger's window in seconds.
func (t BufferedTrigger) Window() float64 {
	return t.window
}
