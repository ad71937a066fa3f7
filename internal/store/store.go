package store

import (
	"context"
	"errors"
	"time"
)

//go:generate mockgen -destination=mock/store.go -package=mock . Store,ProfileStore,TokenIssuer

// ErrInvalidCredentials: выдача токена отклонена из-за логина или пароля.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrCourseNotFound: пользователь не записан на курс с таким названием.
var ErrCourseNotFound = errors.New("course not found")

// TokenIssuer обменивает логин и пароль на токен веб-сервиса.
type TokenIssuer interface {
	IssueToken(ctx context.Context, username, password string) (string, error)
}

// ProfileStore хранит четырёхзначный PIN пользователя. Пустая строка означает, что PIN не задан.
type ProfileStore interface {
	PIN(ctx context.Context, userID int64) (string, error)
	SetPIN(ctx context.Context, userID int64, pin string) error
}

type Directory interface {
	WhoAmI(ctx context.Context, token string) (User, error)
}

type AnnouncementSource interface {
	SiteAnnouncements(ctx context.Context, token string) ([]Announcement, error)
	CourseAnnouncements(ctx context.Context, token, course string) ([]Announcement, error)
}

type GradeSource interface {
	CourseGrades(ctx context.Context, token string) ([]Grade, error)
}

type CalendarSource interface {
	DueDates(ctx context.Context, token string, from time.Time) ([]DueDate, error)
}

// Store объединяет всё, что навык читает из LMS от имени пользователя.
type Store interface {
	Directory
	AnnouncementSource
	GradeSource
	CalendarSource
}

type User struct {
	ID       int64
	FullName string
	SiteName string
}

// Announcement уже очищен от разметки и готов к озвучиванию.
type Announcement struct {
	Subject string
	Message string
	Time    time.Time
}

type Grade struct {
	Course string
	Grade  string
}

type DueDate struct {
	Name   string
	Course string
	Due    time.Time
}

// ValidPIN проверяет, что pin состоит ровно из четырёх цифр.
func ValidPIN(pin string) bool {
	if len(pin) != 4 {
		return false
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
