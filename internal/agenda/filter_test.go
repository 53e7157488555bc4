package agenda

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/Leganyst/salon-booking/internal/calendar"
	"github.com/Leganyst/salon-booking/internal/model"
)

var business = time.FixedZone("UTC-3", -3*3600)

func at(day, hour int) time.Time {
	return time.Date(2025, 3, day, hour, 0, 0, 0, business)
}

func appt(name string, date time.Time) model.Appointment {
	return model.Appointment{ClientName: name, Date: date}
}

func names(list []model.Appointment) []string {
	out := make([]string, len(list))
	for i, a := range list {
		out[i] = a.ClientName
	}
	return out
}

func TestFilterAndSort_DefaultDropsPastDays(t *testing.T) {
	now := at(14, 12)
	list := []model.Appointment{
		appt("future", at(20, 10)),
		appt("yesterday", at(13, 18)),
		appt("earlier-today", at(14, 9)),
		appt("soon", at(14, 13)),
		appt("invalid", time.Time{}),
	}

	got := names(FilterAndSort(list, Options{}, now))
	want := []string{"soon", "future", "earlier-today"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestFilterAndSort_IncludePastOrdering(t *testing.T) {
	now := at(14, 12)
	list := []model.Appointment{
		appt("invalid", time.Time{}),
		appt("past-2", at(10, 10)),
		appt("future-2", at(20, 10)),
		appt("past-1", at(2, 10)),
		appt("future-1", at(15, 10)),
	}

	got := names(FilterAndSort(list, Options{IncludePast: true}, now))
	want := []string{"future-1", "future-2", "past-1", "past-2", "invalid"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestFilterAndSort_QuickRanges(t *testing.T) {
	now := at(14, 12)
	list := []model.Appointment{
		appt("today-morning", at(14, 0)),
		appt("today-late", time.Date(2025, 3, 14, 23, 59, 59, 0, business)),
		appt("tomorrow", at(15, 9)),
		appt("day+7-evening", at(21, 22)),
		appt("day+8", at(22, 0)),
		appt("invalid", time.Time{}),
	}

	cases := []struct {
		r    QuickRange
		want []string
	}{
		{RangeToday, []string{"today-late", "today-morning"}},
		{RangeTomorrow, []string{"tomorrow"}},
		{RangeWeek, []string{"today-late", "tomorrow", "day+7-evening", "today-morning"}},
		{RangeAll, []string{"today-late", "tomorrow", "day+7-evening", "day+8", "today-morning"}},
	}
	for _, tc := range cases {
		got := names(FilterAndSort(list, Options{Range: tc.r}, now))
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("range %s: expected %v, got %v", tc.r, tc.want, got)
		}
	}
}

func TestFilterAndSort_DayAndRangeCompose(t *testing.T) {
	now := at(14, 12)
	list := []model.Appointment{
		appt("a", at(15, 9)),
		appt("b", at(16, 9)),
	}
	day := at(16, 0)

	if got := names(FilterAndSort(list, Options{Day: &day}, now)); !reflect.DeepEqual(got, []string{"b"}) {
		t.Fatalf("expected only b, got %v", got)
	}
	if got := FilterAndSort(list, Options{Range: RangeTomorrow, Day: &day}, now); len(got) != 0 {
		t.Fatalf("expected AND of tomorrow and day 16 to be empty, got %v", names(got))
	}
}

func TestFilterAndSort_DoesNotMutateInput(t *testing.T) {
	now := at(14, 12)
	list := []model.Appointment{appt("b", at(20, 10)), appt("a", at(15, 10))}
	_ = FilterAndSort(list, Options{}, now)
	if list[0].ClientName != "b" {
		t.Fatalf("input slice was reordered")
	}
}

func TestSort_Idempotent(t *testing.T) {
	now := at(14, 12)
	list := []model.Appointment{
		appt("p", at(1, 10)),
		appt("f", at(18, 10)),
		appt("x", time.Time{}),
		appt("g", at(14, 12)),
		appt("q", at(14, 11)),
	}
	Sort(list, now)
	first := names(list)
	Sort(list, now)
	if second := names(list); !reflect.DeepEqual(first, second) {
		t.Fatalf("sorting twice changed order: %v vs %v", first, second)
	}

	seenPast := false
	for _, a := range list {
		if !a.HasValidDate() {
			continue
		}
		past := calendar.IsPast(a.Date, now)
		if seenPast && !past {
			t.Fatalf("non-past item after past item: %v", first)
		}
		seenPast = seenPast || past
	}
}

func TestParseQuickRange(t *testing.T) {
	for in, want := range map[string]QuickRange{"": RangeAll, "ALL": RangeAll, " today ": RangeToday, "tomorrow": RangeTomorrow, "week": RangeWeek} {
		got, err := ParseQuickRange(in)
		if err != nil || got != want {
			t.Fatalf("ParseQuickRange(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseQuickRange("month"); !errors.Is(err, ErrUnknownRange) {
		t.Fatalf("expected ErrUnknownRange, got %v", err)
	}
}

func TestAnnotate(t *testing.T) {
	now := at(14, 12)
	items := Annotate([]model.Appointment{appt("a", now.Add(30*time.Minute))}, now)
	if len(items) != 1 || items[0].Urgency.State != calendar.UrgencyVerySoon {
		t.Fatalf("unexpected annotation %+v", items)
	}
}
