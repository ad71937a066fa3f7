package main

import (
	"bitbucket.org/sotavant/moodle-alexa-skill/internal/store/moodle"
	"bitbucket.org/sotavant/moodle-alexa-skill/internal/verify"
	"errors"
	"flag"
	"github.com/joho/godotenv"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultRedirectURIs = "https://pitangui.amazon.com/api/skill/link/," +
	"https://layla.amazon.com/api/skill/link/," +
	"https://alexa.amazon.co.jp/api/skill/link/"

var flagRunAddr string
var flagLogLevel string
var flagMoodleURL string
var flagMoodleService string
var flagSiteName string
var flagTimezone string
var flagApplicationID string
var flagTrustedHost string
var flagVerifyChain bool
var flagSkipSignature bool
var flagRedisAddr string
var flagRedisPassword string
var flagRedisDB int
var flagCertCacheTTL time.Duration
var flagHTTPTimeout time.Duration
var flagRedirectURIs string

func parseFlags() {
	// .env не обязателен
	_ = godotenv.Load()

	flag.StringVar(&flagRunAddr, "a", ":8080", "address and port")
	flag.StringVar(&flagLogLevel, "l", "info", "log level")
	flag.StringVar(&flagMoodleURL, "m", "http://localhost", "moodle site URL")
	flag.StringVar(&flagMoodleService, "s", moodle.DefaultService, "moodle web service short name")
	flag.StringVar(&flagSiteName, "n", "", "site name spoken in the welcome message")
	flag.StringVar(&flagTimezone, "tz", "UTC", "timezone for spoken due dates")
	flag.StringVar(&flagApplicationID, "app-id", "", "alexa skill application id")
	flag.StringVar(&flagTrustedHost, "cert-host", verify.DefaultTrustedHost, "required subjectAltName of the signing certificate")
	flag.BoolVar(&flagVerifyChain, "verify-chain", true, "verify signing certificate chain against system roots")
	flag.BoolVar(&flagSkipSignature, "skip-signature", false, "disable request signature verification (local testing only)")
	flag.StringVar(&flagRedisAddr, "r", "", "redis address, empty keeps caches in memory")
	flag.StringVar(&flagRedisPassword, "redis-password", "", "redis password")
	flag.IntVar(&flagRedisDB, "redis-db", 0, "redis database")
	flag.DurationVar(&flagCertCacheTTL, "cert-ttl", time.Hour, "signing certificate cache TTL")
	flag.DurationVar(&flagHTTPTimeout, "t", 5*time.Second, "outgoing HTTP timeout")
	flag.StringVar(&flagRedirectURIs, "redirect-uris", defaultRedirectURIs, "comma separated account linking redirect URI prefixes")
	flag.Parse()

	if envRunAddr := os.Getenv("RUN_ADDR"); envRunAddr != "" {
		flagRunAddr = envRunAddr
	}

	if envLogLevel := os.Getenv("LOG_LEVEL"); envLogLevel != "" {
		flagLogLevel = envLogLevel
	}

	if envMoodleURL := os.Getenv("MOODLE_URL"); envMoodleURL != "" {
		flagMoodleURL = envMoodleURL
	}

	if envMoodleService := os.Getenv("MOODLE_SERVICE"); envMoodleService != "" {
		flagMoodleService = envMoodleService
	}

	if envSiteName := os.Getenv("SITE_NAME"); envSiteName != "" {
		flagSiteName = envSiteName
	}

	if envTimezone := os.Getenv("TIMEZONE"); envTimezone != "" {
		flagTimezone = envTimezone
	}

	if envApplicationID := os.Getenv("ALEXA_APPLICATION_ID"); envApplicationID != "" {
		flagApplicationID = envApplicationID
	}

	if envTrustedHost := os.Getenv("ALEXA_CERT_HOST"); envTrustedHost != "" {
		flagTrustedHost = envTrustedHost
	}

	if v, ok := envBool("ALEXA_VERIFY_CHAIN"); ok {
		flagVerifyChain = v
	}

	if v, ok := envBool("ALEXA_SKIP_SIGNATURE"); ok {
		flagSkipSignature = v
	}

	if envRedisAddr := os.Getenv("REDIS_ADDR"); envRedisAddr != "" {
		flagRedisAddr = envRedisAddr
	}

	if envRedisPassword := os.Getenv("REDIS_PASSWORD"); envRedisPassword != "" {
		flagRedisPassword = envRedisPassword
	}

	if raw := os.Getenv("REDIS_DB"); raw != "" {
		if db, err := strconv.Atoi(raw); err == nil {
			flagRedisDB = db
		}
	}

	if v, ok := envDuration("CERT_CACHE_TTL"); ok {
		flagCertCacheTTL = v
	}

	if v, ok := envDuration("HTTP_TIMEOUT"); ok {
		flagHTTPTimeout = v
	}

	if envRedirectURIs := os.Getenv("REDIRECT_URIS"); envRedirectURIs != "" {
		flagRedirectURIs = envRedirectURIs
	}
}

var errNoApplicationID = errors.New("alexa application id is not configured (-app-id or ALEXA_APPLICATION_ID)")

// validateFlags не даёт запустить сервер, который отклонит каждый запрос.
func validateFlags() error {
	if strings.TrimSpace(flagApplicationID) == "" {
		return errNoApplicationID
	}
	return nil
}

func envBool(key string) (bool, bool) {
	raw := os.Getenv(key)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	return v, err == nil
}

func envDuration(key string) (time.Duration, bool) {
	raw := os.Getenv(key)
	if raw == "" {
		return 0, false
	}
	v, err := time.ParseDuration(raw)
	return v, err == nil
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
