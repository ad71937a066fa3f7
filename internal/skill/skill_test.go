package skill

import (
	"bitbucket.org/sotavant/moodle-alexa-skill/internal/models"
	"bitbucket.org/sotavant/moodle-alexa-skill/internal/store"
	"bitbucket.org/sotavant/moodle-alexa-skill/internal/store/mock"
	"context"
	"errors"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

const token = "ws-token"

var now = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

func newTestSkill(t *testing.T) (*Skill, *mock.MockStore, *mock.MockProfileStore) {
	ctrl := gomock.NewController(t)
	s := mock.NewMockStore(ctrl)
	p := mock.NewMockProfileStore(ctrl)

	sk := New(Config{
		SiteName: "Test Academy",
		Store:    s,
		Profiles: p,
		Now:      func() time.Time { return now },
	})
	return sk, s, p
}

func intent(i Intent, slots map[string]string) Request {
	return Request{
		Type:        RequestIntent,
		Intent:      i,
		IntentName:  i.String(),
		Slots:       slots,
		AccessToken: token,
	}
}

func TestHandlerTableIsComplete(t *testing.T) {
	sk := New(Config{})
	for i := Intent(0); i < intentCount; i++ {
		assert.NotNil(t, sk.handlers[i], i.String())
	}
	assert.Equal(t, DefaultSiteName, sk.site)
}

func TestLaunch(t *testing.T) {
	sk, _, _ := newTestSkill(t)

	resp := sk.Dispatch(context.Background(), Request{Type: RequestLaunch})

	assert.Contains(t, resp.Text(), "Which would you like?")
	assert.Contains(t, resp.Text(), "Welcome to Test Academy.")
	assert.False(t, resp.Response.ShouldEndSession)
	require.NotNil(t, resp.Response.Reprompt)
	assert.Equal(t, models.Version, resp.Version)
}

func TestSessionEnded(t *testing.T) {
	sk, _, _ := newTestSkill(t)

	resp := sk.Dispatch(context.Background(), Request{Type: RequestSessionEnded, ErrorMessage: "Skill timed out."})
	assert.Equal(t, "Skill timed out.", resp.Text())
	assert.True(t, resp.Response.ShouldEndSession)

	resp = sk.Dispatch(context.Background(), Request{Type: RequestSessionEnded})
	assert.Equal(t, textGoodbye, resp.Text())
}

func TestUnknownRequestType(t *testing.T) {
	sk, _, _ := newTestSkill(t)

	resp := sk.Dispatch(context.Background(), Request{Type: RequestUnknown})
	assert.Equal(t, textFallback, resp.Text())
	assert.True(t, resp.Response.ShouldEndSession)
}

func TestUnrecognizedIntent(t *testing.T) {
	sk, _, _ := newTestSkill(t)

	resp := sk.Dispatch(context.Background(), Request{Type: RequestIntent, Intent: IntentUnrecognized, IntentName: "OrderPizzaIntent"})
	assert.Equal(t, textFallback, resp.Text())
	assert.False(t, resp.Response.ShouldEndSession)

	resp = sk.Dispatch(context.Background(), Request{Type: RequestIntent, Intent: Intent(99)})
	assert.Equal(t, textFallback, resp.Text())
}

func TestBuiltInIntents(t *testing.T) {
	sk, _, _ := newTestSkill(t)

	resp := sk.Dispatch(context.Background(), intent(IntentHelp, nil))
	assert.Contains(t, resp.Text(), "Which would you like?")
	assert.False(t, resp.Response.ShouldEndSession)

	for _, i := range []Intent{IntentStop, IntentCancel} {
		resp = sk.Dispatch(context.Background(), intent(i, nil))
		assert.Equal(t, textGoodbye, resp.Text())
		assert.True(t, resp.Response.ShouldEndSession)
	}
}

func TestSiteAnnouncements(t *testing.T) {
	ctx := context.Background()

	t.Run("none", func(t *testing.T) {
		sk, s, _ := newTestSkill(t)
		s.EXPECT().SiteAnnouncements(gomock.Any(), token).Return(nil, nil)

		resp := sk.Dispatch(ctx, intent(IntentSiteAnnouncements, nil))
		assert.Equal(t, "There are no site announcements.", resp.Text())
		assert.Equal(t, models.SpeechPlainText, resp.Response.OutputSpeech.Type)
		assert.True(t, resp.Response.ShouldEndSession)
	})

	t.Run("keeps_source_order", func(t *testing.T) {
		sk, s, _ := newTestSkill(t)
		s.EXPECT().SiteAnnouncements(gomock.Any(), token).Return([]store.Announcement{
			{Subject: "Exams", Message: "Exams start Monday"},
			{Subject: "Library", Message: "Closed on <Friday> & Saturday!"},
		}, nil)

		resp := sk.Dispatch(ctx, intent(IntentSiteAnnouncements, nil))
		assert.Equal(t, "Here are the latest site announcements. Exams. Exams start Monday. Library. Closed on <Friday> & Saturday!", resp.Text())
		assert.Equal(t, models.SpeechSSML, resp.Response.OutputSpeech.Type)
		assert.Equal(t,
			`<speak>Here are the latest site announcements.<break time="500ms"/>Exams. Exams start Monday.<break time="500ms"/>Library. Closed on &lt;Friday&gt; &amp; Saturday!</speak>`,
			resp.Response.OutputSpeech.SSML)
	})

	t.Run("upstream_failure", func(t *testing.T) {
		sk, s, _ := newTestSkill(t)
		s.EXPECT().SiteAnnouncements(gomock.Any(), token).Return(nil, errors.New("timeout"))

		resp := sk.Dispatch(ctx, intent(IntentSiteAnnouncements, nil))
		assert.Equal(t, "Sorry, I could not reach Test Academy right now.", resp.Text())
		assert.True(t, resp.Response.ShouldEndSession)
	})

	t.Run("not_linked", func(t *testing.T) {
		sk, _, _ := newTestSkill(t)
		req := intent(IntentSiteAnnouncements, nil)
		req.AccessToken = ""

		resp := sk.Dispatch(ctx, req)
		assert.Equal(t, textLinkAccount, resp.Text())
		require.NotNil(t, resp.Response.Card)
		assert.Equal(t, models.CardLinkAccount, resp.Response.Card.Type)
		assert.True(t, resp.Response.ShouldEndSession)
	})
}

func TestCourseAnnouncements(t *testing.T) {
	ctx := context.Background()

	t.Run("asks_for_course", func(t *testing.T) {
		sk, _, _ := newTestSkill(t)

		resp := sk.Dispatch(ctx, intent(IntentCourseAnnouncements, nil))
		assert.Equal(t, textAskCourse, resp.Text())
		assert.False(t, resp.Response.ShouldEndSession)
	})

	t.Run("found", func(t *testing.T) {
		sk, s, _ := newTestSkill(t)
		s.EXPECT().CourseAnnouncements(gomock.Any(), token, "chemistry").Return([]store.Announcement{
			{Subject: "Lab", Message: "Bring goggles."},
		}, nil)

		resp := sk.Dispatch(ctx, intent(IntentCourseAnnouncements, map[string]string{SlotCourse: "chemistry"}))
		assert.Equal(t, "Here are the latest announcements for chemistry. Lab. Bring goggles.", resp.Text())
	})

	t.Run("empty", func(t *testing.T) {
		sk, s, _ := newTestSkill(t)
		s.EXPECT().CourseAnnouncements(gomock.Any(), token, "chemistry").Return(nil, nil)

		resp := sk.Dispatch(ctx, intent(IntentCourseAnnouncements, map[string]string{SlotCourse: "chemistry"}))
		assert.Equal(t, "There are no announcements for chemistry.", resp.Text())
	})

	t.Run("unknown_course", func(t *testing.T) {
		sk, s, _ := newTestSkill(t)
		s.EXPECT().CourseAnnouncements(gomock.Any(), token, "astronomy").Return(nil, store.ErrCourseNotFound)

		resp := sk.Dispatch(ctx, intent(IntentCourseAnnouncements, map[string]string{SlotCourse: "astronomy"}))
		assert.Equal(t, "I could not find a course named astronomy.", resp.Text())
	})
}

func TestGrades(t *testing.T) {
	ctx := context.Background()
	user := store.User{ID: 5}

	t.Run("no_pin", func(t *testing.T) {
		sk, s, p := newTestSkill(t)
		gomock.InOrder(
			s.EXPECT().WhoAmI(gomock.Any(), token).Return(user, nil),
			p.EXPECT().PIN(gomock.Any(), int64(5)).Return("", nil),
			s.EXPECT().CourseGrades(gomock.Any(), token).Return([]store.Grade{
				{Course: "Biology 101", Grade: "92.00 %"},
				{Course: "Chemistry", Grade: "B+"},
			}, nil),
		)

		resp := sk.Dispatch(ctx, intent(IntentGrades, nil))
		assert.Equal(t, "Your grade in Biology 101 is 92.00 %. Your grade in Chemistry is B+.", resp.Text())
		assert.True(t, resp.Response.ShouldEndSession)
	})

	t.Run("none", func(t *testing.T) {
		sk, s, p := newTestSkill(t)
		s.EXPECT().WhoAmI(gomock.Any(), token).Return(user, nil)
		p.EXPECT().PIN(gomock.Any(), int64(5)).Return("", nil)
		s.EXPECT().CourseGrades(gomock.Any(), token).Return(nil, nil)

		resp := sk.Dispatch(ctx, intent(IntentGrades, nil))
		assert.Equal(t, "You have no course grades.", resp.Text())
	})

	t.Run("asks_for_pin", func(t *testing.T) {
		sk, s, p := newTestSkill(t)
		s.EXPECT().WhoAmI(gomock.Any(), token).Return(user, nil)
		p.EXPECT().PIN(gomock.Any(), int64(5)).Return("1234", nil)

		resp := sk.Dispatch(ctx, intent(IntentGrades, nil))
		assert.Equal(t, textAskPIN, resp.Text())
		assert.False(t, resp.Response.ShouldEndSession)
	})

	t.Run("wrong_pin", func(t *testing.T) {
		sk, s, p := newTestSkill(t)
		s.EXPECT().WhoAmI(gomock.Any(), token).Return(user, nil)
		p.EXPECT().PIN(gomock.Any(), int64(5)).Return("1234", nil)

		resp := sk.Dispatch(ctx, intent(IntentGrades, map[string]string{SlotPIN: "4321"}))
		assert.Equal(t, textBadPIN, resp.Text())
		assert.True(t, resp.Response.ShouldEndSession)
	})

	t.Run("right_pin", func(t *testing.T) {
		sk, s, p := newTestSkill(t)
		s.EXPECT().WhoAmI(gomock.Any(), token).Return(user, nil)
		p.EXPECT().PIN(gomock.Any(), int64(5)).Return("1234", nil)
		s.EXPECT().CourseGrades(gomock.Any(), token).Return([]store.Grade{{Course: "Art", Grade: "A"}}, nil)

		resp := sk.Dispatch(ctx, intent(IntentGrades, map[string]string{SlotPIN: "1234"}))
		assert.Equal(t, "Your grade in Art is A.", resp.Text())
	})

	t.Run("profile_store_down", func(t *testing.T) {
		sk, s, p := newTestSkill(t)
		s.EXPECT().WhoAmI(gomock.Any(), token).Return(user, nil)
		p.EXPECT().PIN(gomock.Any(), int64(5)).Return("", errors.New("redis down"))

		resp := sk.Dispatch(ctx, intent(IntentGrades, nil))
		assert.Equal(t, "Sorry, I could not reach Test Academy right now.", resp.Text())
	})

	t.Run("without_profiles", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		s := mock.NewMockStore(ctrl)
		s.EXPECT().CourseGrades(gomock.Any(), token).Return(nil, nil)

		sk := New(Config{Store: s})
		resp := sk.Dispatch(ctx, intent(IntentGrades, nil))
		assert.Equal(t, "You have no course grades.", resp.Text())
	})
}

func TestDueDates(t *testing.T) {
	ctx := context.Background()

	t.Run("none", func(t *testing.T) {
		sk, s, p := newTestSkill(t)
		s.EXPECT().WhoAmI(gomock.Any(), token).Return(store.User{ID: 1}, nil)
		p.EXPECT().PIN(gomock.Any(), int64(1)).Return("", nil)
		s.EXPECT().DueDates(gomock.Any(), token, now).Return(nil, nil)

		resp := sk.Dispatch(ctx, intent(IntentDueDates, nil))
		assert.Equal(t, "You have no upcoming due dates.", resp.Text())
	})

	t.Run("keeps_source_order", func(t *testing.T) {
		sk, s, p := newTestSkill(t)
		s.EXPECT().WhoAmI(gomock.Any(), token).Return(store.User{ID: 1}, nil)
		p.EXPECT().PIN(gomock.Any(), int64(1)).Return("", nil)
		s.EXPECT().DueDates(gomock.Any(), token, now).Return([]store.DueDate{
			{Name: "Essay is due", Course: "Art History", Due: time.Date(2026, 10, 20, 15, 4, 0, 0, time.UTC)},
			{Name: "Quiz closes", Due: time.Date(2026, 10, 21, 9, 30, 0, 0, time.UTC)},
		}, nil)

		resp := sk.Dispatch(ctx, intent(IntentDueDates, nil))
		assert.Equal(t, "Here are your upcoming due dates. Essay is due in Art History on Tuesday, October 20 at 3:04 PM. Quiz closes on Wednesday, October 21 at 9:30 AM.", resp.Text())
		assert.True(t, resp.Response.ShouldEndSession)
	})
}

func TestEveryPathSpeaks(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := mock.NewMockStore(ctrl)
	s.EXPECT().WhoAmI(gomock.Any(), gomock.Any()).Return(store.User{ID: 1}, nil).AnyTimes()
	s.EXPECT().SiteAnnouncements(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	s.EXPECT().CourseAnnouncements(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	s.EXPECT().CourseGrades(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	s.EXPECT().DueDates(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	sk := New(Config{Store: s})
	ctx := context.Background()

	requests := []Request{
		{Type: RequestLaunch},
		{Type: RequestSessionEnded},
		{Type: RequestUnknown},
	}
	for i := Intent(0); i < intentCount; i++ {
		requests = append(requests,
			intent(i, nil),
			intent(i, map[string]string{SlotCourse: "x", SlotPIN: "0000"}),
			Request{Type: RequestIntent, Intent: i},
		)
	}

	for _, req := range requests {
		resp := sk.Dispatch(ctx, req)
		assert.NotEmpty(t, resp.Text(), "%s %s", req.Type, req.Intent)
		assert.Equal(t, models.Version, resp.Version)
	}
}

func TestSentence(t *testing.T) {
	assert.Equal(t, "Hi.", sentence("Hi"))
	assert.Equal(t, "Hi!", sentence(" Hi! "))
	assert.Equal(t, "Why?", sentence("Why?"))
	assert.Equal(t, "", sentence(""))
}
