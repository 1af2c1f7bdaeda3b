package config

import (
	"os"
	"testing"
	"time"
)

func TestGetenv(t *testing.T) {
	// Test with empty environment variable
	os.Unsetenv("TEST_GETENV")
	result := getenv("TEST_GETENV", "default")
	if result != "default" {
		t.Errorf("Expected default value 'default', got '%s'", result)
	}

	// Test with set environment variable
	os.Setenv("TEST_GETENV", "test-value")
	result = getenv("TEST_GETENV", "default")
	if result != "test-value" {
		t.Errorf("Expected 'test-value', got '%s'", result)
	}

	// Clean up
	os.Unsetenv("TEST_GETENV")
}

func TestGetenvInt(t *testing.T) {
	os.Unsetenv("TEST_GETENV_INT")
	result := getenvInt("TEST_GETENV_INT", 42)
	if result != 42 {
		t.Errorf("Expected default value 42, got %d", result)
	}

	os.Setenv("TEST_GETENV_INT", "100")
	result = getenvInt("TEST_GETENV_INT", 42)
	if result != 100 {
		t.Errorf("Expected 100, got %d", result)
	}

	os.Setenv("TEST_GETENV_INT", "not-an-int")
	result = getenvInt("TEST_GETENV_INT", 42)
	if result != 42 {
		t.Errorf("Expected default value 42, got %d", result)
	}

	os.Unsetenv("TEST_GETENV_INT")
}

func TestGetenvBool(t *testing.T) {
	os.Unsetenv("TEST_GETENV_BOOL")
	result := getenvBool("TEST_GETENV_BOOL", true)
	if result != true {
		t.Errorf("Expected default value true, got %v", result)
	}

	os.Setenv("TEST_GETENV_BOOL", "false")
	result = getenvBool("TEST_GETENV_BOOL", true)
	if result != false {
		t.Errorf("Expected false, got %v", result)
	}

	os.Setenv("TEST_GETENV_BOOL", "not-a-bool")
	result = getenvBool("TEST_GETENV_BOOL", true)
	if result != true {
		t.Errorf("Expected default value true, got %v", result)
	}

	os.Unsetenv("TEST_GETENV_BOOL")
}

func TestGetenvDuration(t *testing.T) {
	t.Setenv("TEST_GETENV_DURATION", "")
	if d := getenvDuration("TEST_GETENV_DURATION", time.Second); d != time.Second {
		t.Errorf("Expected default 1s, got %v", d)
	}

	t.Setenv("TEST_GETENV_DURATION", "250ms")
	if d := getenvDuration("TEST_GETENV_DURATION", time.Second); d != 250*time.Millisecond {
		t.Errorf("Expected 250ms, got %v", d)
	}

	t.Setenv("TEST_GETENV_DURATION", "-5s")
	if d := getenvDuration("TEST_GETENV_DURATION", time.Second); d != time.Second {
		t.Errorf("Expected default for negative duration, got %v", d)
	}

	t.Setenv("TEST_GETENV_DURATION", "soon")
	if d := getenvDuration("TEST_GETENV_DURATION", time.Second); d != time.Second {
		t.Errorf("Expected default for invalid duration, got %v", d)
	}
}

func TestLoad(t *testing.T) {
	envVars := []string{
		"APP_ID", "APP_NAME_US", "LOG_LEVEL", "HTTP_ADDR",
		"MEH_BASE_URL", "MEH_API_KEY", "WOOT_BASE_URL", "WOOT_API_KEY", "FEED_TIMEOUT",
		"TRACKER", "VOICELABS_URL", "VI_TOKEN", "AMQP_URL", "AMQP_QUEUE", "TRACKING_TIMEOUT",
		"SFTP_HOST", "SFTP_PORT", "SFTP_USER", "SFTP_PASS", "SFTP_DIR", "SFTP_INSECURE_IGNORE_HOSTKEY", "SFTP_KNOWN_HOSTS",
	}
	for _, env := range envVars {
		t.Setenv(env, "")
	}

	t.Setenv("APP_ID", "amzn1.ask.skill.test")
	t.Setenv("MEH_API_KEY", "meh-key")
	t.Setenv("WOOT_API_KEY", "woot-key")
	t.Setenv("WOOT_BASE_URL", "https://woot.test/events.json")
	t.Setenv("FEED_TIMEOUT", "3s")
	t.Setenv("TRACKER", " AMQP ")
	t.Setenv("SFTP_PORT", "2222")
	t.Setenv("SFTP_INSECURE_IGNORE_HOSTKEY", "false")
	t.Setenv("SFTP_KNOWN_HOSTS", "/etc/ssh/ssh_known_hosts")

	cfg := Load()

	if cfg.AppID != "amzn1.ask.skill.test" {
		t.Errorf("Expected AppID to be set, got '%s'", cfg.AppID)
	}
	if cfg.MehAPIKey != "meh-key" || cfg.WootAPIKey != "woot-key" {
		t.Errorf("Expected api keys to be loaded, got meh=%q woot=%q", cfg.MehAPIKey, cfg.WootAPIKey)
	}
	if cfg.WootBaseURL != "https://woot.test/events.json" {
		t.Errorf("Expected WootBaseURL override, got '%s'", cfg.WootBaseURL)
	}
	if cfg.FeedTimeout != 3*time.Second {
		t.Errorf("Expected FeedTimeout 3s, got %v", cfg.FeedTimeout)
	}
	if cfg.Tracker != "amqp" {
		t.Errorf("Expected Tracker 'amqp', got %q", cfg.Tracker)
	}
	if cfg.SFTPPort != 2222 {
		t.Errorf("Expected SFTPPort to be 2222, got %d", cfg.SFTPPort)
	}
	if cfg.SFTPInsecureIgnoreHostKey != false {
		t.Errorf("Expected SFTPInsecureIgnoreHostKey to be false, got %v", cfg.SFTPInsecureIgnoreHostKey)
	}
	if cfg.SFTPKnownHosts != "/etc/ssh/ssh_known_hosts" {
		t.Errorf("Expected SFTPKnownHosts to be set, got %q", cfg.SFTPKnownHosts)
	}

	// Test default values
	t.Setenv("SFTP_PORT", "")
	t.Setenv("SFTP_INSECURE_IGNORE_HOSTKEY", "")
	t.Setenv("FEED_TIMEOUT", "")

	cfg = Load()
	if cfg.AppName != "Bargain Buddy" {
		t.Errorf("Expected default AppName 'Bargain Buddy', got '%s'", cfg.AppName)
	}
	if cfg.MehBaseURL != "https://api.meh.com/1/current.json" {
		t.Errorf("Expected default MehBaseURL, got '%s'", cfg.MehBaseURL)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("Expected default HTTPAddr ':8080', got '%s'", cfg.HTTPAddr)
	}
	if cfg.FeedTimeout != 8*time.Second {
		t.Errorf("Expected default FeedTimeout 8s, got %v", cfg.FeedTimeout)
	}
	if cfg.SFTPPort != 22 {
		t.Errorf("Expected default SFTPPort to be 22, got %d", cfg.SFTPPort)
	}
	if cfg.SFTPDir != "/inbound" {
		t.Errorf("Expected default SFTPDir to be '/inbound', got '%s'", cfg.SFTPDir)
	}
	if cfg.SFTPInsecureIgnoreHostKey != true {
		t.Errorf("Expected default SFTPInsecureIgnoreHostKey to be true, got %v", cfg.SFTPInsecureIgnoreHostKey)
	}
	if cfg.VoiceLabsURL != "" {
		t.Errorf("Expected no default VoiceLabsURL, got '%s'", cfg.VoiceLabsURL)
	}
}
