package verify

import "time"

// MaxRequestAge: сколько живёт запрос с момента подписи платформой.
const MaxRequestAge = 150 * time.Second

// ValidTimestamp проверяет свежесть запроса. Пустая или нечитаемая метка означает отказ, а не панику.
func ValidTimestamp(ts string, now time.Time) bool {
	if ts == "" {
		return false
	}

	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return false
	}

	age := now.Sub(t)
	return age >= 0 && age < MaxRequestAge
}

// ValidApplicationID сравнивает идентификатор навыка из запроса с настроенным.
func ValidApplicationID(got, want string) bool {
	return got != "" && want != "" && got == want
}
