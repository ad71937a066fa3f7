// Package skill разбирает запросы голосовой платформы и собирает ответы из данных LMS.
package skill

import (
	"bitbucket.org/sotavant/moodle-alexa-skill/internal/logger"
	"bitbucket.org/sotavant/moodle-alexa-skill/internal/models"
	"bitbucket.org/sotavant/moodle-alexa-skill/internal/store"
	"context"
	"crypto/subtle"
	"fmt"
	"go.uber.org/zap"
	"time"
)

const (
	DefaultSiteName = "Moodle"

	textFallback    = "Working on it."
	textGoodbye     = "Goodbye."
	textLinkAccount = "Please use the Alexa app to link your account."
	textAskPIN      = "Please say your four digit PIN."
	textBadPIN      = "That PIN is incorrect."
	textChoices     = "You can say site announcements, course announcements, grades, or due dates. Which would you like?"
)

type Config struct {
	SiteName string
	Store    store.Store
	// Profiles == nil отключает проверку PIN.
	Profiles store.ProfileStore
	Location *time.Location
	Now      func() time.Time
}

type handler func(ctx context.Context, req Request) models.Response

type Skill struct {
	site     string
	store    store.Store
	profiles store.ProfileStore
	loc      *time.Location
	now      func() time.Time
	handlers [intentCount]handler
}

func New(cfg Config) *Skill {
	s := &Skill{
		site:     cfg.SiteName,
		store:    cfg.Store,
		profiles: cfg.Profiles,
		loc:      cfg.Location,
		now:      cfg.Now,
	}
	if s.site == "" {
		s.site = DefaultSiteName
	}
	if s.loc == nil {
		s.loc = time.UTC
	}
	if s.now == nil {
		s.now = time.Now
	}

	s.handlers = [intentCount]handler{
		IntentUnrecognized:        s.unrecognized,
		IntentSiteAnnouncements:   s.linked(s.siteAnnouncements),
		IntentCourseAnnouncements: s.linked(s.courseAnnouncements),
		IntentGrades:              s.linked(s.pinProtected(s.grades)),
		IntentDueDates:            s.linked(s.pinProtected(s.dueDates)),
		IntentHelp:                s.help,
		IntentStop:                s.goodbye,
		IntentCancel:              s.goodbye,
	}
	return s
}

// Dispatch всегда возвращает ровно один ответ с непустым текстом.
func (s *Skill) Dispatch(ctx context.Context, req Request) models.Response {
	switch req.Type {
	case RequestLaunch:
		return s.launch()
	case RequestIntent:
		return s.handlers[s.route(req.Intent)](ctx, req)
	case RequestSessionEnded:
		return s.sessionEnded(req)
	}

	logger.Log.Debug("unsupported request type", zap.Stringer("type", req.Type))
	return models.NewResponse(textFallback, true)
}

func (s *Skill) route(i Intent) Intent {
	if i < 0 || i >= intentCount {
		return IntentUnrecognized
	}
	return i
}

func (s *Skill) launch() models.Response {
	text := fmt.Sprintf("Welcome to %s. You can get site announcements, course announcements, grades, or due dates. Which would you like?", s.site)
	return models.NewResponse(text, false).WithReprompt(textChoices)
}

func (s *Skill) help(context.Context, Request) models.Response {
	text := "You can ask for the site announcements, the announcements of one of your courses, your grades, or your upcoming due dates. Which would you like?"
	return models.NewResponse(text, false).WithReprompt(textChoices)
}

func (s *Skill) goodbye(context.Context, Request) models.Response {
	return models.NewResponse(textGoodbye, true)
}

func (s *Skill) unrecognized(_ context.Context, req Request) models.Response {
	logger.Log.Debug("unrecognized intent", zap.String("intent", req.IntentName))
	return models.NewResponse(textFallback, false).WithReprompt(textChoices)
}

func (s *Skill) sessionEnded(req Request) models.Response {
	if req.ErrorMessage != "" {
		return models.NewResponse(req.ErrorMessage, true)
	}
	return models.NewResponse(textGoodbye, true)
}

// linked требует привязанный аккаунт: без токена данные LMS недоступны.
func (s *Skill) linked(next handler) handler {
	return func(ctx context.Context, req Request) models.Response {
		if req.AccessToken == "" {
			return models.NewResponse(textLinkAccount, true).
				WithCard(models.Card{Type: models.CardLinkAccount})
		}
		return next(ctx, req)
	}
}

// pinProtected спрашивает PIN, если пользователь его задал при привязке.
func (s *Skill) pinProtected(next handler) handler {
	return func(ctx context.Context, req Request) models.Response {
		if s.profiles == nil {
			return next(ctx, req)
		}

		u, err := s.store.WhoAmI(ctx, req.AccessToken)
		if err != nil {
			return s.upstreamFailure(err)
		}

		pin, err := s.profiles.PIN(ctx, u.ID)
		if err != nil {
			return s.upstreamFailure(err)
		}
		if pin == "" {
			return next(ctx, req)
		}

		said := req.Slot(SlotPIN)
		if said == "" {
			return models.NewResponse(textAskPIN, false).WithReprompt(textAskPIN)
		}
		if subtle.ConstantTimeCompare([]byte(said), []byte(pin)) != 1 {
			logger.Log.Info("wrong pin", zap.Int64("user_id", u.ID))
			return models.NewResponse(textBadPIN, true)
		}
		return next(ctx, req)
	}
}

func (s *Skill) upstreamFailure(err error) models.Response {
	logger.Log.Warn("cannot load data from lms", zap.Error(err))
	return models.NewResponse(fmt.Sprintf("Sorry, I could not reach %s right now.", s.site), true)
}
