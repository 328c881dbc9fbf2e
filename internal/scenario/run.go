package scenario

import "testing"

// Run runs fn as a subtest of t once per device, named after the device.
// Subtests are sequential: each gets its own shell, and their cleanups run
// before the next device starts.
func Run(t *testing.T, devices []Device, fn func(t *testing.T, d Device)) {
	t.Helper()
	if len(devices) == 0 {
		t.Skip("no devices selected")
	}
	for _, d := range devices {
		t.Run(d.Name, func(t *testing.T) {
			fn(t, d)
		})
	}
}
