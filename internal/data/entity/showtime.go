package entity

// SoldOutLevel values seen in the feed. The field is passed through as-is.
const (
	SoldOutLevelNormal  = "Normal"
	SoldOutLevelWarning = "Warning"
	SoldOutLevelSoldOut = "SoldOut"
)

// Showtime is one performance of a film. Time is HH:MM.
type Showtime struct {
	Time          string
	Screen        *string
	BookingURL    *string
	SoldOutLevel  *string
	TicketsSold   *string
	PassesAllowed *string
}

// ShowtimesByDate maps a date key to its showtimes, keeping dates in the order
// they were first added and showtimes in the order they were appended.
type ShowtimesByDate struct {
	dates  []string
	byDate map[string][]Showtime
}

func NewShowtimesByDate() *ShowtimesByDate {
	return &ShowtimesByDate{byDate: make(map[string][]Showtime)}
}

// Add appends st to the bucket for date, creating the bucket on first use.
func (s *ShowtimesByDate) Add(date string, st Showtime) {
	if s.byDate == nil {
		s.byDate = make(map[string][]Showtime)
	}
	if _, ok := s.byDate[date]; !ok {
		s.dates = append(s.dates, date)
	}
	s.byDate[date] = append(s.byDate[date], st)
}

// Dates returns the date keys in insertion order.
func (s *ShowtimesByDate) Dates() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.dates))
	copy(out, s.dates)
	return out
}

func (s *ShowtimesByDate) Get(date string) []Showtime {
	if s == nil {
		return nil
	}
	return s.byDate[date]
}

// Len is the number of dates.
func (s *ShowtimesByDate) Len() int {
	if s == nil {
		return 0
	}
	return len(s.dates)
}
