// file: internals/features/calendar/recurrence/recurrence.go
package recurrence

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"

	helper "sacel_backend/internals/helpers"

	evmodel "sacel_backend/internals/features/calendar/events/model"
)

// Batas aman supaya rule ekstrem tidak meledakkan memori.
const maxOccurrencesPerEvent = 5000

// Occurrence: satu instance konkret hasil ekspansi event.
// Semua instant dalam UTC.
type Occurrence struct {
	EventID    uuid.UUID `json:"event_id"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Overridden bool      `json:"overridden"` // diganti oleh exception (bukan dari rule murni)
}

var rruleWeekdays = []rrule.Weekday{
	rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA, rrule.SU,
}

// WeekdayIndex: time.Weekday (0=Minggu) → konvensi 0=Senin..6=Minggu.
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// ValidateRule memeriksa rule sebelum dipersist. Rule tanpa batas
// (tanpa until & count) ditolak di sini; ekspansi sendiri selalu dibatasi
// window sehingga tetap aman untuk rule lama yang terlanjur tak berbatas.
func ValidateRule(r *evmodel.RecurrenceRule) error {
	if r == nil {
		return nil
	}
	switch r.Freq {
	case evmodel.RecurrenceDaily, evmodel.RecurrenceWeekly, evmodel.RecurrenceMonthly:
	default:
		return helper.NewServiceError(helper.ErrKindInvalidRecurrenceRule, "freq",
			"freq harus daily/weekly/monthly")
	}
	if r.Interval < 1 {
		return helper.NewServiceError(helper.ErrKindInvalidRecurrenceRule, "interval",
			"interval minimal 1")
	}
	if r.Freq == evmodel.RecurrenceWeekly && len(r.ByWeekday) == 0 {
		return helper.NewServiceError(helper.ErrKindInvalidRecurrenceRule, "by_weekday",
			"rule weekly butuh minimal satu hari")
	}
	for _, wd := range r.ByWeekday {
		if wd < 0 || wd > 6 {
			return helper.NewServiceError(helper.ErrKindInvalidRecurrenceRule, "by_weekday",
				"weekday harus 0 (Senin) sampai 6 (Minggu)")
		}
	}
	if r.WeekOfMonth != nil {
		n := *r.WeekOfMonth
		if n == 0 || n < -1 || n > 5 {
			return helper.NewServiceError(helper.ErrKindInvalidRecurrenceRule, "week_of_month",
				"week_of_month harus 1..5 atau -1 (pekan terakhir)")
		}
	}
	if r.Until == nil && r.Count == nil {
		return helper.NewServiceError(helper.ErrKindInvalidRecurrenceRule, "until",
			"rule tanpa batas: isi until atau count")
	}
	if r.Count != nil && *r.Count < 1 {
		return helper.NewServiceError(helper.ErrKindInvalidRecurrenceRule, "count",
			"count minimal 1")
	}
	return nil
}

// buildRRule menerjemahkan RecurrenceRule + anchor event ke rrule.RRule.
// Dtstart dipakai dalam zona event supaya semantik hari mengikuti waktu lokal.
func buildRRule(r *evmodel.RecurrenceRule, dtstart time.Time) (*rrule.RRule, error) {
	opt := rrule.ROption{
		Interval: r.Interval,
		Dtstart:  dtstart,
	}
	if opt.Interval < 1 {
		opt.Interval = 1
	}

	switch r.Freq {
	case evmodel.RecurrenceDaily:
		opt.Freq = rrule.DAILY
	case evmodel.RecurrenceWeekly:
		opt.Freq = rrule.WEEKLY
		for _, wd := range r.ByWeekday {
			opt.Byweekday = append(opt.Byweekday, rruleWeekdays[wd])
		}
	case evmodel.RecurrenceMonthly:
		opt.Freq = rrule.MONTHLY
		// monthly-by-weekday: "Selasa kedua" dst. Kalau tidak dispesifikasikan,
		// turunkan dari anchor event.
		wd := WeekdayIndex(dtstart)
		if len(r.ByWeekday) > 0 {
			wd = r.ByWeekday[0]
		}
		nth := (dtstart.Day()-1)/7 + 1
		if r.WeekOfMonth != nil {
			nth = *r.WeekOfMonth
		}
		opt.Byweekday = []rrule.Weekday{rruleWeekdays[wd].Nth(nth)}
	default:
		return nil, helper.NewServiceError(helper.ErrKindInvalidRecurrenceRule, "freq",
			"freq harus daily/weekly/monthly")
	}

	if r.Until != nil {
		opt.Until = r.Until.In(dtstart.Location())
	}
	if r.Count != nil {
		opt.Count = *r.Count
	}

	return rrule.NewRRule(opt)
}

// Expand menghasilkan occurrence yang start-nya jatuh di window tertutup
// [windowStart, windowEnd], urut naik. Murni fungsi dari (event, exceptions,
// window) — tidak ada state kursor, aman dipanggil ulang.
func Expand(ev *evmodel.EventModel, excs []evmodel.EventExceptionModel, windowStart, windowEnd time.Time) ([]Occurrence, error) {
	if windowEnd.Before(windowStart) {
		return nil, helper.NewServiceError(helper.ErrKindInvalidInterval, "window",
			"windowEnd sebelum windowStart")
	}

	rule := ev.RecurrenceRuleOrNil()
	dur := ev.Duration()

	// Non-recurring: event-nya sendiri adalah satu-satunya occurrence.
	if rule == nil {
		s := ev.EventStart.UTC()
		if s.Before(windowStart.UTC()) || s.After(windowEnd.UTC()) {
			return nil, nil
		}
		return []Occurrence{{EventID: ev.EventID, Start: s, End: s.Add(dur)}}, nil
	}

	loc := time.UTC
	if ev.EventTimezone != "" {
		if l, err := time.LoadLocation(ev.EventTimezone); err == nil {
			loc = l
		}
	}

	rr, err := buildRRule(rule, ev.EventStart.In(loc))
	if err != nil {
		return nil, err
	}

	starts := rr.Between(windowStart.UTC(), windowEnd.UTC(), true)
	if len(starts) > maxOccurrencesPerEvent {
		starts = starts[:maxOccurrencesPerEvent]
	}

	// exception di-index per start asli (UTC)
	excByStart := make(map[int64]*evmodel.EventExceptionModel, len(excs))
	for i := range excs {
		excByStart[excs[i].EventExceptionOriginalStart.UTC().Unix()] = &excs[i]
	}

	out := make([]Occurrence, 0, len(starts))
	for _, s := range starts {
		su := s.UTC()
		occ := Occurrence{EventID: ev.EventID, Start: su, End: su.Add(dur)}
		if exc, ok := excByStart[su.Unix()]; ok {
			if exc.EventExceptionCancelled {
				continue
			}
			if exc.EventExceptionNewStart != nil {
				occ.Start = exc.EventExceptionNewStart.UTC()
				occ.End = occ.Start.Add(dur)
			}
			if exc.EventExceptionNewEnd != nil {
				occ.End = exc.EventExceptionNewEnd.UTC()
			}
			occ.Overridden = true
			// start pengganti bisa keluar window; occurrence tetap milik window asal
		}
		out = append(out, occ)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

// Overlaps: perbandingan interval half-open dalam UTC.
// Endpoint yang bersentuhan tidak dianggap overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.UTC().Before(bEnd.UTC()) && bStart.UTC().Before(aEnd.UTC())
}
