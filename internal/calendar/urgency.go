package calendar

import "time"

// Urgency: насколько близка запись относительно "сейчас".
type Urgency string

const (
	UrgencyPast     Urgency = "past"
	UrgencyVerySoon Urgency = "very-soon"
	UrgencySoon     Urgency = "soon"
	UrgencyFuture   Urgency = "future"
)

// Пороги классификации в минутах.
const (
	VerySoonMinutes = 60
	SoonMinutes     = 240
)

// Classification: результат Classify.
type Classification struct {
	State        Urgency `json:"state"`
	MinutesUntil float64 `json:"minutesUntil"`
}

// Classify определяет состояние записи по разнице at-now в минутах.
// Границы 60 и 240 включительно относятся к более срочному состоянию.
func Classify(at, now time.Time) Classification {
	minutes := at.Sub(now).Minutes()
	return Classification{State: classifyMinutes(minutes), MinutesUntil: minutes}
}

func classifyMinutes(minutes float64) Urgency {
	switch {
	case minutes < 0:
		return UrgencyPast
	case minutes <= VerySoonMinutes:
		return UrgencyVerySoon
	case minutes <= SoonMinutes:
		return UrgencySoon
	default:
		return UrgencyFuture
	}
}

// IsPast: сокращение для Classify(at, now).State == UrgencyPast.
func IsPast(at, now time.Time) bool {
	return at.Before(now)
}
