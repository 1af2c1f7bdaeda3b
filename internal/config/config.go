package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Skill
	AppID    string
	AppName  string
	LogLevel string
	HTTPAddr string

	// Feeds
	MehBaseURL  string
	MehAPIKey   string
	WootBaseURL string
	WootAPIKey  string
	FeedTimeout time.Duration

	// Usage tracking
	Tracker         string // "", "voicelabs" or "amqp"
	VoiceLabsURL    string
	VoiceLabsToken  string
	AMQPURL         string
	AMQPQueue       string
	TrackingTimeout time.Duration

	// SFTP (deal digest upload)
	SFTPHost                  string
	SFTPPort                  int
	SFTPUser                  string
	SFTPPass                  string
	SFTPDir                   string
	SFTPInsecureIgnoreHostKey bool
	SFTPKnownHosts            string
}

// Load reads the process environment. A .env file in the working directory,
// when present, fills variables that are not already set.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		// Skill
		AppID:    os.Getenv("APP_ID"),
		AppName:  getenv("APP_NAME_US", "Bargain Buddy"),
		LogLevel: getenv("LOG_LEVEL", "info"),
		HTTPAddr: getenv("HTTP_ADDR", ":8080"),

		// Feeds
		MehBaseURL:  getenv("MEH_BASE_URL", "https://api.meh.com/1/current.json"),
		MehAPIKey:   os.Getenv("MEH_API_KEY"),
		WootBaseURL: getenv("WOOT_BASE_URL", "https://api.woot.com/2/events.json"),
		WootAPIKey:  os.Getenv("WOOT_API_KEY"),
		FeedTimeout: getenvDuration("FEED_TIMEOUT", 8*time.Second),

		// Usage tracking
		Tracker:         strings.ToLower(strings.TrimSpace(os.Getenv("TRACKER"))),
		VoiceLabsURL:    os.Getenv("VOICELABS_URL"),
		VoiceLabsToken:  os.Getenv("VI_TOKEN"),
		AMQPURL:         os.Getenv("AMQP_URL"),
		AMQPQueue:       getenv("AMQP_QUEUE", "skill.usage"),
		TrackingTimeout: getenvDuration("TRACKING_TIMEOUT", 2*time.Second),

		// SFTP
		SFTPHost:                  os.Getenv("SFTP_HOST"),
		SFTPPort:                  getenvInt("SFTP_PORT", 22),
		SFTPUser:                  os.Getenv("SFTP_USER"),
		SFTPPass:                  os.Getenv("SFTP_PASS"),
		SFTPDir:                   getenv("SFTP_DIR", "/inbound"),
		SFTPInsecureIgnoreHostKey: getenvBool("SFTP_INSECURE_IGNORE_HOSTKEY", true),
		SFTPKnownHosts:            os.Getenv("SFTP_KNOWN_HOSTS"),
	}
}

func getenv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func getenvInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getenvBool(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getenvDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
