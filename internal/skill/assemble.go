package skill

import (
	"bitbucket.org/sotavant/moodle-alexa-skill/internal/models"
	"bitbucket.org/sotavant/moodle-alexa-skill/internal/store"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"strings"
)

const (
	textNoSiteAnnouncements = "There are no site announcements."
	textNoGrades            = "You have no course grades."
	textNoDueDates          = "You have no upcoming due dates."
	textAskCourse           = "Which course would you like announcements for?"

	dueDateLayout = "Monday, January 2 at 3:04 PM"
)

func (s *Skill) siteAnnouncements(ctx context.Context, req Request) models.Response {
	posts, err := s.store.SiteAnnouncements(ctx, req.AccessToken)
	if err != nil {
		return s.upstreamFailure(err)
	}
	if len(posts) == 0 {
		return models.NewResponse(textNoSiteAnnouncements, true)
	}
	return announcements("Here are the latest site announcements.", posts)
}

func (s *Skill) courseAnnouncements(ctx context.Context, req Request) models.Response {
	course := req.Slot(SlotCourse)
	if course == "" {
		return models.NewResponse(textAskCourse, false).WithReprompt(textAskCourse)
	}

	posts, err := s.store.CourseAnnouncements(ctx, req.AccessToken, course)
	switch {
	case errors.Is(err, store.ErrCourseNotFound):
		return models.NewResponse(fmt.Sprintf("I could not find a course named %s.", course), true)
	case err != nil:
		return s.upstreamFailure(err)
	case len(posts) == 0:
		return models.NewResponse(fmt.Sprintf("There are no announcements for %s.", course), true)
	}
	return announcements(fmt.Sprintf("Here are the latest announcements for %s.", course), posts)
}

// announcements озвучивает посты в порядке источника, с паузой между ними.
func announcements(intro string, posts []store.Announcement) models.Response {
	text := []string{intro}
	var ssml strings.Builder
	ssml.WriteString("<speak>")
	ssml.WriteString(escape(intro))

	for _, p := range posts {
		var parts []string
		if p.Subject != "" {
			parts = append(parts, sentence(p.Subject))
		}
		if p.Message != "" {
			parts = append(parts, sentence(p.Message))
		}
		if len(parts) == 0 {
			continue
		}
		item := strings.Join(parts, " ")
		text = append(text, item)

		ssml.WriteString(`<break time="500ms"/>`)
		ssml.WriteString(escape(item))
	}
	ssml.WriteString("</speak>")

	return models.NewSSMLResponse(strings.Join(text, " "), ssml.String(), true)
}

func (s *Skill) grades(ctx context.Context, req Request) models.Response {
	grades, err := s.store.CourseGrades(ctx, req.AccessToken)
	if err != nil {
		return s.upstreamFailure(err)
	}
	if len(grades) == 0 {
		return models.NewResponse(textNoGrades, true)
	}

	lines := make([]string, 0, len(grades))
	for _, g := range grades {
		lines = append(lines, sentence(fmt.Sprintf("Your grade in %s is %s", g.Course, g.Grade)))
	}
	return models.NewResponse(strings.Join(lines, " "), true)
}

func (s *Skill) dueDates(ctx context.Context, req Request) models.Response {
	dates, err := s.store.DueDates(ctx, req.AccessToken, s.now())
	if err != nil {
		return s.upstreamFailure(err)
	}
	if len(dates) == 0 {
		return models.NewResponse(textNoDueDates, true)
	}

	lines := []string{"Here are your upcoming due dates."}
	for _, d := range dates {
		line := d.Name
		if d.Course != "" {
			line += " in " + d.Course
		}
		line += " on " + d.Due.In(s.loc).Format(dueDateLayout)
		lines = append(lines, sentence(line))
	}
	return models.NewResponse(strings.Join(lines, " "), true)
}

// sentence добавляет точку, если фраза не заканчивается знаком препинания.
func sentence(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasSuffix(s, ".") || strings.HasSuffix(s, "!") || strings.HasSuffix(s, "?") {
		return s
	}
	return s + "."
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
