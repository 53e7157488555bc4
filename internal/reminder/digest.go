package reminder

import (
	"fmt"
	"strings"
	"time"

	"github.com/Leganyst/salon-booking/internal/model"
)

const noNameLabel = "No name"

// FormatDigest собирает текст дайджеста. Время записей выводится в loc.
func FormatDigest(kind Kind, day time.Time, list []model.Appointment, loc *time.Location) string {
	if len(list) == 0 {
		return fmt.Sprintf("No pending appointments for %s.", kind)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Pending appointments for %s (%s):\n", kind, day.Format("02/01/2006"))
	for _, a := range list {
		name := a.DisplayName()
		if name == "" {
			name = noNameLabel
		}
		fmt.Fprintf(&b, "%s – %s\n", a.Date.In(loc).Format("15:04"), name)
	}
	fmt.Fprintf(&b, "Total: %d", len(list))
	return b.String()
}
