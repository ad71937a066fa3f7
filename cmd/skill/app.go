package main

import (
	"bitbucket.org/sotavant/moodle-alexa-skill/internal/logger"
	"bitbucket.org/sotavant/moodle-alexa-skill/internal/models"
	"bitbucket.org/sotavant/moodle-alexa-skill/internal/skill"
	"bitbucket.org/sotavant/moodle-alexa-skill/internal/store"
	"bitbucket.org/sotavant/moodle-alexa-skill/internal/verify"
	"encoding/json"
	"errors"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"io"
	"net/http"
)

// запросы платформы заметно меньше
const maxBodySize = 128 << 10

type app struct {
	gate         *verify.Gate
	skill        *skill.Skill
	issuer       store.TokenIssuer
	directory    store.Directory
	profiles     store.ProfileStore
	redirectURIs []string
}

func (a *app) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(logger.RequestLogger)
	r.Use(gzipMiddleware)

	r.HandleFunc("/alexa", a.webhook)
	r.HandleFunc("/account/link", a.linkAccount)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

func (a *app) webhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		logger.Log.Debug("got request with bad method", zap.String("method", r.Method))

		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		logger.Log.Debug("cannot read request body", zap.Error(err))

		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	// подпись проверяется по сырому телу, до декодирования
	if err := a.gate.CheckSignature(ctx, r.Header, body); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	logger.Log.Debug("decoding request")
	var req models.Request
	if err := json.Unmarshal(body, &req); err != nil {
		logger.Log.Debug("cannot decode request JSON body", zap.Error(err))

		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if err := a.gate.CheckRequest(req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	in, err := skill.Parse(req)
	if err != nil {
		logger.Log.Debug("malformed request", zap.Error(err))

		w.WriteHeader(http.StatusBadRequest)
		return
	}

	resp := a.skill.Dispatch(ctx, in)

	w.Header().Set("Content-Type", "application/json")

	enc := json.NewEncoder(w)
	if err := enc.Encode(resp); err != nil {
		logger.Log.Debug("error encoding response", zap.Error(err))
		return
	}

	logger.Log.Debug("sending HTTP 200 response",
		zap.Stringer("type", in.Type),
		zap.Stringer("intent", in.Intent),
	)
}
