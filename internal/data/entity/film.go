package entity

// Film is one listed film, keyed by the vendor film code. Optional fields are
// nil when the feed value is missing, blank or "none".
type Film struct {
	Code         string
	Title        *string
	Synopsis     *string
	Certificate  *string
	CertImageURL *string
	Genre        *string
	RunningTime  *string
	Directors    *string
	Actors       *string
	StartDate    *string
	EndDate      *string
	PosterURL    *string
	YoutubeID    *string
	Showtimes    *ShowtimesByDate
}

// HasShowtimes reports whether at least one showtime was aggregated.
func (f *Film) HasShowtimes() bool {
	return f != nil && f.Showtimes.Len() > 0
}
