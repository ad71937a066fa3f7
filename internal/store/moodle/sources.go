package moodle

import (
	"bitbucket.org/sotavant/moodle-alexa-skill/internal/store"
	"context"
	"golang.org/x/net/html"
	"strings"
	"time"
)

func (c *Client) SiteAnnouncements(ctx context.Context, token string) ([]store.Announcement, error) {
	return c.courseNews(ctx, token, siteCourseID)
}

// CourseAnnouncements ищет курс по полному или короткому названию без учёта регистра.
func (c *Client) CourseAnnouncements(ctx context.Context, token, name string) ([]store.Announcement, error) {
	u, err := c.WhoAmI(ctx, token)
	if err != nil {
		return nil, err
	}

	courses, err := c.userCourses(ctx, token, u.ID)
	if err != nil {
		return nil, err
	}

	crs, ok := matchCourse(courses, name)
	if !ok {
		return nil, store.ErrCourseNotFound
	}
	return c.courseNews(ctx, token, crs.ID)
}

func (c *Client) courseNews(ctx context.Context, token string, courseID int64) ([]store.Announcement, error) {
	var forums []struct {
		ID     int64  `json:"id"`
		Course int64  `json:"course"`
		Type   string `json:"type"`
	}
	err := c.call(ctx, token, "mod_forum_get_forums_by_courses", map[string]string{
		"courseids[0]": itoa(courseID),
	}, &forums)
	if err != nil {
		return nil, err
	}

	var forumID int64
	for _, f := range forums {
		if f.Type == "news" && f.Course == courseID {
			forumID = f.ID
			break
		}
	}
	if forumID == 0 {
		return nil, nil
	}

	var out struct {
		Discussions []struct {
			Subject string `json:"subject"`
			Message string `json:"message"`
			Created int64  `json:"created"`
		} `json:"discussions"`
	}
	err = c.call(ctx, token, "mod_forum_get_forum_discussions", map[string]string{
		"forumid": itoa(forumID),
		"page":    "0",
		"perpage": itoa(int64(c.limit)),
	}, &out)
	if err != nil {
		return nil, err
	}

	posts := make([]store.Announcement, 0, len(out.Discussions))
	for _, d := range out.Discussions {
		posts = append(posts, store.Announcement{
			Subject: plainText(d.Subject),
			Message: plainText(d.Message),
			Time:    time.Unix(d.Created, 0),
		})
	}
	return posts, nil
}

// CourseGrades возвращает оценки в порядке записи на курсы; курсы без оценки пропускаются.
func (c *Client) CourseGrades(ctx context.Context, token string) ([]store.Grade, error) {
	u, err := c.WhoAmI(ctx, token)
	if err != nil {
		return nil, err
	}

	courses, err := c.userCourses(ctx, token, u.ID)
	if err != nil {
		return nil, err
	}

	var out struct {
		Grades []struct {
			CourseID int64  `json:"courseid"`
			Grade    string `json:"grade"`
		} `json:"grades"`
	}
	err = c.call(ctx, token, "gradereport_overview_get_course_grades", map[string]string{
		"userid": itoa(u.ID),
	}, &out)
	if err != nil {
		return nil, err
	}

	byCourse := make(map[int64]string, len(out.Grades))
	for _, g := range out.Grades {
		byCourse[g.CourseID] = strings.TrimSpace(g.Grade)
	}

	var grades []store.Grade
	for _, crs := range courses {
		g, ok := byCourse[crs.ID]
		if !ok || g == "" || g == "-" {
			continue
		}
		grades = append(grades, store.Grade{Course: plainText(crs.FullName), Grade: g})
	}
	return grades, nil
}

func (c *Client) DueDates(ctx context.Context, token string, from time.Time) ([]store.DueDate, error) {
	var out struct {
		Events []struct {
			Name     string `json:"name"`
			TimeSort int64  `json:"timesort"`
			Course   *struct {
				FullName string `json:"fullname"`
			} `json:"course"`
		} `json:"events"`
	}
	err := c.call(ctx, token, "core_calendar_get_action_events_by_timesort", map[string]string{
		"timesortfrom": itoa(from.Unix()),
		"limitnum":     itoa(int64(c.limit)),
	}, &out)
	if err != nil {
		return nil, err
	}

	dates := make([]store.DueDate, 0, len(out.Events))
	for _, e := range out.Events {
		d := store.DueDate{Name: plainText(e.Name), Due: time.Unix(e.TimeSort, 0)}
		if e.Course != nil {
			d.Course = plainText(e.Course.FullName)
		}
		dates = append(dates, d)
	}
	return dates, nil
}

func matchCourse(courses []course, name string) (course, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return course{}, false
	}
	for _, crs := range courses {
		if strings.EqualFold(crs.FullName, name) || strings.EqualFold(crs.ShortName, name) {
			return crs, true
		}
	}
	lower := strings.ToLower(name)
	for _, crs := range courses {
		if strings.Contains(strings.ToLower(crs.FullName), lower) {
			return crs, true
		}
	}
	return course{}, false
}

var blockTags = map[string]bool{
	"p": true, "br": true, "div": true, "li": true, "ul": true, "ol": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"tr": true, "td": true, "th": true, "blockquote": true, "hr": true,
}

// plainText превращает HTML поста в текст для озвучивания.
func plainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.Join(strings.Fields(s), " ")
	}

	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	skip := 0
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		case html.StartTagToken, html.SelfClosingTagToken, html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if tag == "script" || tag == "style" {
				switch {
				case tt == html.StartTagToken:
					skip++
				case tt == html.EndTagToken && skip > 0:
					skip--
				}
			}
			if blockTags[tag] {
				b.WriteByte(' ')
			}
		}
	}
}
