package skill

import (
	"bitbucket.org/sotavant/moodle-alexa-skill/internal/models"
	"errors"
	"strings"
)

type RequestType int

const (
	RequestUnknown RequestType = iota
	RequestLaunch
	RequestIntent
	RequestSessionEnded
)

func (t RequestType) String() string {
	switch t {
	case RequestLaunch:
		return models.TypeLaunchRequest
	case RequestIntent:
		return models.TypeIntentRequest
	case RequestSessionEnded:
		return models.TypeSessionEndedRequest
	}
	return "Unknown"
}

// Intent перечисляет интенты, которые умеет обрабатывать навык.
type Intent int

const (
	IntentUnrecognized Intent = iota
	IntentSiteAnnouncements
	IntentCourseAnnouncements
	IntentGrades
	IntentDueDates
	IntentHelp
	IntentStop
	IntentCancel

	intentCount
)

var intentNames = [intentCount]string{
	IntentUnrecognized:        "",
	IntentSiteAnnouncements:   "GetSiteAnnouncementsIntent",
	IntentCourseAnnouncements: "GetCourseAnnouncementsIntent",
	IntentGrades:              "GetGradesIntent",
	IntentDueDates:            "GetDueDatesIntent",
	IntentHelp:                "AMAZON.HelpIntent",
	IntentStop:                "AMAZON.StopIntent",
	IntentCancel:              "AMAZON.CancelIntent",
}

func ParseIntent(name string) Intent {
	if name == "" {
		return IntentUnrecognized
	}
	for i, n := range intentNames {
		if n == name {
			return Intent(i)
		}
	}
	return IntentUnrecognized
}

func (i Intent) String() string {
	if i <= IntentUnrecognized || i >= intentCount {
		return "Unrecognized"
	}
	return intentNames[i]
}

const (
	SlotCourse = "course"
	SlotPIN    = "pin"
)

var ErrMissingIntentName = errors.New("intent request without intent name")

// Request хранит разобранный входящий запрос. Создаётся на каждый вызов и передаётся явно.
type Request struct {
	Type          RequestType
	Intent        Intent
	IntentName    string
	Slots         map[string]string
	ApplicationID string
	Timestamp     string
	SessionID     string
	AccessToken   string
	ErrorMessage  string
}

func Parse(req models.Request) (Request, error) {
	r := Request{
		ApplicationID: req.ApplicationID(),
		Timestamp:     req.Request.Timestamp,
		SessionID:     req.Session.SessionID,
		AccessToken:   req.AccessToken(),
	}

	switch req.Request.Type {
	case models.TypeLaunchRequest:
		r.Type = RequestLaunch
	case models.TypeIntentRequest:
		r.Type = RequestIntent
		r.IntentName = strings.TrimSpace(req.Request.Intent.Name)
		if r.IntentName == "" {
			return Request{}, ErrMissingIntentName
		}
		r.Intent = ParseIntent(r.IntentName)
		if len(req.Request.Intent.Slots) > 0 {
			r.Slots = make(map[string]string, len(req.Request.Intent.Slots))
			for name, slot := range req.Request.Intent.Slots {
				if slot.Value != "" {
					r.Slots[name] = strings.TrimSpace(slot.Value)
				}
			}
		}
	case models.TypeSessionEndedRequest:
		r.Type = RequestSessionEnded
		if req.Request.Error != nil {
			r.ErrorMessage = req.Request.Error.Message
		}
	default:
		r.Type = RequestUnknown
	}

	return r, nil
}

func (r Request) Slot(name string) string {
	return r.Slots[name]
}
