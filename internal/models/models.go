package models

const (
	TypeLaunchRequest       = "LaunchRequest"
	TypeIntentRequest       = "IntentRequest"
	TypeSessionEndedRequest = "SessionEndedRequest"
)

const (
	SpeechPlainText = "PlainText"
	SpeechSSML      = "SSML"
)

const (
	CardSimple      = "Simple"
	CardLinkAccount = "LinkAccount"
)

const Version = "1.0"

// Request описывает запрос голосовой платформы.
// https://developer.amazon.com/docs/custom-skills/request-and-response-json-reference.html
type Request struct {
	Version string      `json:"version"`
	Session Session     `json:"session"`
	Context Context     `json:"context"`
	Request RequestBody `json:"request"`
}

type Session struct {
	New         bool        `json:"new"`
	SessionID   string      `json:"sessionId"`
	Application Application `json:"application"`
	User        User        `json:"user"`
}

type Application struct {
	ApplicationID string `json:"applicationId"`
}

// User.AccessToken появляется после привязки аккаунта.
type User struct {
	UserID      string `json:"userId"`
	AccessToken string `json:"accessToken,omitempty"`
}

type Context struct {
	System System `json:"System"`
}

type System struct {
	Application Application `json:"application"`
	User        User        `json:"user"`
}

type RequestBody struct {
	Type      string `json:"type"`
	RequestID string `json:"requestId"`
	Timestamp string `json:"timestamp"`
	Locale    string `json:"locale"`
	Intent    Intent `json:"intent"`
	Reason    string `json:"reason,omitempty"`
	Error     *Error `json:"error,omitempty"`
}

type Intent struct {
	Name  string          `json:"name"`
	Slots map[string]Slot `json:"slots,omitempty"`
}

type Slot struct {
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
}

type Error struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// ApplicationID возвращает идентификатор навыка из сессии, а если её нет, из контекста.
func (r Request) ApplicationID() string {
	if id := r.Session.Application.ApplicationID; id != "" {
		return id
	}
	return r.Context.System.Application.ApplicationID
}

func (r Request) AccessToken() string {
	if t := r.Session.User.AccessToken; t != "" {
		return t
	}
	return r.Context.System.User.AccessToken
}

// Response описывает ответ навыка.
type Response struct {
	Version  string          `json:"version"`
	Response ResponsePayload `json:"response"`
}

type ResponsePayload struct {
	OutputSpeech     OutputSpeech `json:"outputSpeech"`
	Reprompt         *Reprompt    `json:"reprompt,omitempty"`
	Card             *Card        `json:"card,omitempty"`
	ShouldEndSession bool         `json:"shouldEndSession"`
}

// OutputSpeech.Text заполнен всегда, даже для SSML: это текстовая версия того же ответа.
type OutputSpeech struct {
	Type string `json:"type"`
	Text string `json:"text"`
	SSML string `json:"ssml,omitempty"`
}

type Reprompt struct {
	OutputSpeech OutputSpeech `json:"outputSpeech"`
}

type Card struct {
	Type    string `json:"type"`
	Title   string `json:"title,omitempty"`
	Content string `json:"content,omitempty"`
}

func NewResponse(text string, endSession bool) Response {
	return Response{
		Version: Version,
		Response: ResponsePayload{
			OutputSpeech:     OutputSpeech{Type: SpeechPlainText, Text: text},
			ShouldEndSession: endSession,
		},
	}
}

func NewSSMLResponse(text, ssml string, endSession bool) Response {
	return Response{
		Version: Version,
		Response: ResponsePayload{
			OutputSpeech:     OutputSpeech{Type: SpeechSSML, Text: text, SSML: ssml},
			ShouldEndSession: endSession,
		},
	}
}

func (r Response) WithReprompt(text string) Response {
	r.Response.Reprompt = &Reprompt{
		OutputSpeech: OutputSpeech{Type: SpeechPlainText, Text: text},
	}
	return r
}

func (r Response) WithCard(c Card) Response {
	r.Response.Card = &c
	return r
}

// Text возвращает текст ответа, который будет произнесён.
func (r Response) Text() string {
	return r.Response.OutputSpeech.Text
}
