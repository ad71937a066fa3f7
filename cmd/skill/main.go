package main

import (
	"bitbucket.org/sotavant/moodle-alexa-skill/internal/logger"
	"bitbucket.org/sotavant/moodle-alexa-skill/internal/skill"
	"bitbucket.org/sotavant/moodle-alexa-skill/internal/store/kv"
	"bitbucket.org/sotavant/moodle-alexa-skill/internal/store/moodle"
	"bitbucket.org/sotavant/moodle-alexa-skill/internal/verify"
	"context"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"net/http"
	"time"
)

func main() {
	parseFlags()
	if err := run(); err != nil {
		panic(err)
	}
}

func run() error {
	if err := logger.Initialize(flagLogLevel); err != nil {
		return err
	}

	if err := validateFlags(); err != nil {
		return err
	}

	loc, err := time.LoadLocation(flagTimezone)
	if err != nil {
		return err
	}

	ctx := context.Background()

	var rdb *redis.Client
	if flagRedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     flagRedisAddr,
			Password: flagRedisPassword,
			DB:       flagRedisDB,
		})
		defer rdb.Close()
	}

	lms := moodle.New(flagMoodleURL, flagHTTPTimeout, moodle.WithService(flagMoodleService))
	profiles := kv.New(ctx, rdb)

	gate := &verify.Gate{ApplicationID: flagApplicationID}
	if flagSkipSignature {
		logger.Log.Warn("request signature verification is disabled")
	} else {
		opts := []verify.Option{
			verify.WithTrustedHost(flagTrustedHost),
			verify.WithCache(verify.NewCache(ctx, rdb), flagCertCacheTTL),
		}
		if flagVerifyChain {
			opts = append(opts, verify.WithChainVerification(nil))
		}
		gate.Verifier = verify.NewVerifier(verify.NewHTTPFetcher(flagHTTPTimeout), opts...)
	}

	a := &app{
		gate: gate,
		skill: skill.New(skill.Config{
			SiteName: flagSiteName,
			Store:    lms,
			Profiles: profiles,
			Location: loc,
		}),
		issuer:       lms,
		directory:    lms,
		profiles:     profiles,
		redirectURIs: splitList(flagRedirectURIs),
	}

	logger.Log.Info("Running server",
		zap.String("address", flagRunAddr),
		zap.String("moodle", flagMoodleURL),
		zap.Bool("redis", rdb != nil),
	)

	return http.ListenAndServe(flagRunAddr, a.routes())
}
