package env

import (
	"encoding/base64"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/anima-music/anima/internal/envparse"
	"github.com/anima-music/anima/internal/envutil"
	"github.com/joho/godotenv"
)

var (
	databaseUrl              string
	databaseMaxConns         *int
	jwtSecret                []byte
	aesKey                   string
	host                     string
	port                     int
	mailerConfig             MailerConfig
	resetCodeTTL             time.Duration
	resetCodeMaxAttempts     int
	resetRevealUnknown       bool
	sessionTokenValidFor     time.Duration
	awsRegion                string
	spotifyClientID          string
	spotifyClientSecret      string
	spotifyMarket            string
	spotifyFallbackOverrides map[string]string
	sentryDSN                string
	sentryDebug              bool
	sentryEnvironment        string
	enableQueryLogging       bool
	cleanupStaleAnalysesCron *string
	staleAnalysisMaxAge      time.Duration
	serverShutdownTimeout    time.Duration
)

// moods that may carry an editorial fallback playlist override via SPOTIFY_FALLBACK_<MOOD>
var fallbackMoods = []string{
	"HAPPY", "SAD", "CALM", "ANGRY", "SURPRISED", "CONFUSED", "FEAR", "DISGUSTED", "UNKNOWN",
}

func Initialize() {
	if currentEnv, ok := os.LookupEnv("ANIMA_ENV"); ok {
		fmt.Fprintf(os.Stderr, "environment=%v\n", currentEnv)
		if err := godotenv.Load(currentEnv); err != nil {
			fmt.Fprintf(os.Stderr, "environment %v not loaded: %v\n", currentEnv, err)
		}
	}

	databaseUrl = envutil.RequireEnv("DATABASE_URL")
	databaseMaxConns = envutil.GetEnvParsedOrNil("DATABASE_MAX_CONNS", strconv.Atoi)
	jwtSecret = envutil.RequireEnvParsed("JWT_SECRET", base64.StdEncoding.DecodeString)
	aesKey = envutil.RequireEnv("AES_KEY")
	host = envutil.GetEnvOrDefault("HOST", "")
	port = envutil.GetEnvParsedOrDefault("PORT", strconv.Atoi, 4000)
	enableQueryLogging = envutil.GetEnvParsedOrDefault("ENABLE_QUERY_LOGGING", strconv.ParseBool, false)

	resetCodeTTL = envutil.GetEnvParsedOrDefault("RESET_CODE_TTL", envparse.PositiveDuration, 10*time.Minute)
	resetCodeMaxAttempts = envutil.GetEnvParsedOrDefault("RESET_CODE_MAX_ATTEMPTS", envparse.NonNegativeNumber, 5)
	resetRevealUnknown = envutil.GetEnvParsedOrDefault("RESET_REVEAL_UNKNOWN_ACCOUNT", strconv.ParseBool, false)
	sessionTokenValidFor = envutil.GetEnvParsedOrDefault(
		"SESSION_TOKEN_VALID_DURATION", envparse.PositiveDuration, 7*24*time.Hour,
	)

	mailerConfig.Type = envutil.GetEnvParsedOrDefault("MAILER_TYPE", parseMailerType, MailerTypeUnspecified)
	if mailerConfig.Type != MailerTypeUnspecified {
		mailerConfig.FromAddress = envutil.RequireEnvParsed("MAILER_FROM_ADDRESS", envparse.MailAddress)
	}
	if mailerConfig.Type == MailerTypeSMTP {
		mailerConfig.SmtpConfig = &MailerSMTPConfig{
			Host:        envutil.GetEnv("MAILER_SMTP_HOST"),
			Port:        envutil.RequireEnvParsed("MAILER_SMTP_PORT", strconv.Atoi),
			Username:    envutil.GetEnv("MAILER_SMTP_USERNAME"),
			Password:    envutil.GetEnv("MAILER_SMTP_PASSWORD"),
			ImplicitTLS: envutil.GetEnvParsedOrDefault("MAILER_SMTP_IMPLICIT_TLS", strconv.ParseBool, false),
		}
	}

	awsRegion = envutil.GetEnv("AWS_REGION")
	spotifyClientID = envutil.GetEnv("SPOTIFY_CLIENT_ID")
	spotifyClientSecret = envutil.GetEnv("SPOTIFY_CLIENT_SECRET")
	spotifyMarket = envutil.GetEnvOrDefault("SPOTIFY_MARKET", "US")
	spotifyFallbackOverrides = map[string]string{}
	for _, mood := range fallbackMoods {
		if id := envutil.GetEnvOrNil("SPOTIFY_FALLBACK_" + mood); id != nil {
			spotifyFallbackOverrides[mood] = *id
		}
	}

	sentryDSN = envutil.GetEnv("SENTRY_DSN")
	sentryDebug = envutil.GetEnvParsedOrDefault("SENTRY_DEBUG", strconv.ParseBool, false)
	sentryEnvironment = envutil.GetEnv("SENTRY_ENVIRONMENT")

	cleanupStaleAnalysesCron = envutil.GetEnvOrNil("CLEANUP_STALE_ANALYSES_CRON")
	staleAnalysisMaxAge = envutil.GetEnvParsedOrDefault(
		"STALE_ANALYSIS_MAX_AGE", envparse.PositiveDuration, 24*time.Hour,
	)
	serverShutdownTimeout = envutil.GetEnvParsedOrDefault(
		"SERVER_SHUTDOWN_TIMEOUT", envparse.PositiveDuration, 10*time.Second,
	)
}

func DatabaseUrl() string {
	return databaseUrl
}

// DatabaseMaxConns allows to override the MaxConns parameter of the pgx pool config.
func DatabaseMaxConns() *int {
	return databaseMaxConns
}

func JWTSecret() []byte {
	return jwtSecret
}

// AESKey is the symmetric key handed to the pgcrypto functions that encrypt and
// verify credentials inside Postgres. It never participates in Go-side crypto.
func AESKey() string {
	return aesKey
}

func Host() string { return host }

func Port() int { return port }

func GetMailerConfig() MailerConfig {
	return mailerConfig
}

func ResetCodeTTL() time.Duration {
	return resetCodeTTL
}

// ResetCodeMaxAttempts is the number of failed verifications after which a reset
// code is invalidated. Zero disables the cap.
func ResetCodeMaxAttempts() int {
	return resetCodeMaxAttempts
}

// ResetRevealUnknownAccount controls whether forgot-password answers 404 for an
// unknown account. Off by default so account existence cannot be enumerated.
func ResetRevealUnknownAccount() bool {
	return resetRevealUnknown
}

func SessionTokenValidDuration() time.Duration {
	return sessionTokenValidFor
}

func AWSRegion() string {
	return awsRegion
}

func SpotifyClientID() string {
	return spotifyClientID
}

func SpotifyClientSecret() string {
	return spotifyClientSecret
}

func SpotifyMarket() string {
	return spotifyMarket
}

func SpotifyFallbackOverrides() map[string]string {
	return spotifyFallbackOverrides
}

func SentryDSN() string {
	return sentryDSN
}

func SentryDebug() bool {
	return sentryDebug
}

func SentryEnvironment() string {
	return sentryEnvironment
}

func EnableQueryLogging() bool {
	return enableQueryLogging
}

func CleanupStaleAnalysesCron() *string {
	return cleanupStaleAnalysesCron
}

func StaleAnalysisMaxAge() time.Duration {
	return staleAnalysisMaxAge
}

func ServerShutdownTimeout() time.Duration {
	return serverShutdownTimeout
}
