package cmd

import "testing"

func TestNowMinuteMatchesLogResolution(t *testing.T) {
	now := nowMinute()
	if now.Second() != 0 || now.Nanosecond() != 0 {
		t.Errorf("nowMinute = %v, want a bare minute; sub-minute precision would drift from the log", now)
	}
}
