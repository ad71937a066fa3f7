package main

import (
	"bitbucket.org/sotavant/moodle-alexa-skill/internal/logger"
	"bitbucket.org/sotavant/moodle-alexa-skill/internal/store"
	"errors"
	"go.uber.org/zap"
	"net/http"
	"net/url"
	"strings"
)

// linkAccount обменивает логин и пароль Moodle на токен и возвращает его
// платформе через фрагмент redirect_uri (implicit grant).
func (a *app) linkAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseForm(); err != nil {
		logger.Log.Debug("cannot parse link form", zap.Error(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	redirectURI := r.PostForm.Get("redirect_uri")
	target, ok := a.allowedRedirect(redirectURI)
	if !ok {
		logger.Log.Warn("redirect uri is not allowed", zap.String("redirect_uri", redirectURI))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	username := strings.TrimSpace(r.PostForm.Get("username"))
	password := r.PostForm.Get("password")
	pin := strings.TrimSpace(r.PostForm.Get("pin"))
	if username == "" || password == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if pin != "" && (!store.ValidPIN(pin) || a.profiles == nil) {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	token, err := a.issuer.IssueToken(ctx, username, password)
	if errors.Is(err, store.ErrInvalidCredentials) {
		logger.Log.Info("account link rejected", zap.String("username", username))
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	if err != nil {
		logger.Log.Error("cannot issue token", zap.Error(err))
		w.WriteHeader(http.StatusBadGateway)
		return
	}

	if pin != "" {
		user, err := a.directory.WhoAmI(ctx, token)
		if err != nil {
			logger.Log.Error("cannot resolve linked user", zap.Error(err))
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		if err := a.profiles.SetPIN(ctx, user.ID, pin); err != nil {
			logger.Log.Error("cannot store pin", zap.Int64("user_id", user.ID), zap.Error(err))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}

	fragment := url.Values{}
	fragment.Set("state", r.PostForm.Get("state"))
	fragment.Set("access_token", token)
	fragment.Set("token_type", "Bearer")
	target.Fragment = ""
	target.RawFragment = ""

	logger.Log.Info("account linked", zap.String("username", username))
	http.Redirect(w, r, target.String()+"#"+fragment.Encode(), http.StatusFound)
}

// allowedRedirect пропускает только https адреса из настроенного списка префиксов.
func (a *app) allowedRedirect(raw string) (*url.URL, bool) {
	if raw == "" {
		return nil, false
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "https" || u.Host == "" {
		return nil, false
	}
	for _, prefix := range a.redirectURIs {
		if strings.HasPrefix(raw, prefix) {
			return u, true
		}
	}
	return nil, false
}
