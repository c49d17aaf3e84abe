// file: internals/configs/config_test.go
package configs

import (
	"testing"
	"time"
)

func TestGetEnvDefault(t *testing.T) {
	t.Setenv("SACEL_TEST_KEY", "")
	if got := GetEnv("SACEL_TEST_MISSING", "fallback"); got != "fallback" {
		t.Errorf("GetEnv missing = %q, want fallback", got)
	}

	t.Setenv("SACEL_TEST_KEY", "value")
	if got := GetEnv("SACEL_TEST_KEY", "fallback"); got != "value" {
		t.Errorf("GetEnv set = %q, want value", got)
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("REMINDER_TICK_INTERVAL", "45s")
	if got := GetEnvDuration("REMINDER_TICK_INTERVAL", 30*time.Second); got != 45*time.Second {
		t.Errorf("duration = %v, want 45s", got)
	}

	t.Setenv("REMINDER_TICK_INTERVAL", "bukan-durasi")
	if got := GetEnvDuration("REMINDER_TICK_INTERVAL", 30*time.Second); got != 30*time.Second {
		t.Errorf("invalid duration should fall back, got %v", got)
	}

	// durasi negatif/nol juga jatuh ke default
	t.Setenv("REMINDER_TICK_INTERVAL", "-5s")
	if got := GetEnvDuration("REMINDER_TICK_INTERVAL", 30*time.Second); got != 30*time.Second {
		t.Errorf("non-positive duration should fall back, got %v", got)
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("SACEL_TEST_INT", "7")
	if got := GetEnvInt("SACEL_TEST_INT", 3); got != 7 {
		t.Errorf("int = %d, want 7", got)
	}
	t.Setenv("SACEL_TEST_INT", "x")
	if got := GetEnvInt("SACEL_TEST_INT", 3); got != 3 {
		t.Errorf("invalid int should fall back, got %d", got)
	}
}
