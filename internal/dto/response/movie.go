package response

import (
	"bytes"

	"cinema-listing/internal/data/entity"

	"github.com/goccy/go-json"
)

type MovieResponse struct {
	Code            string                  `json:"code"`
	Title           *string                 `json:"title"`
	Synopsis        *string                 `json:"synopsis"`
	Certificate     *string                 `json:"certificate"`
	CertImageURL    *string                 `json:"certImageUrl"`
	Genre           *string                 `json:"genre"`
	RunningTime     *string                 `json:"runningTime"`
	Directors       *string                 `json:"directors"`
	Actors          *string                 `json:"actors"`
	StartDate       *string                 `json:"startDate"`
	EndDate         *string                 `json:"endDate"`
	PosterURL       *string                 `json:"posterUrl"`
	YoutubeID       *string                 `json:"youtubeId"`
	ShowtimesByDate ShowtimesByDateResponse `json:"showtimesByDate"`
}

type ShowtimeResponse struct {
	Time          string  `json:"time"`
	Screen        *string `json:"screen"`
	BookingURL    *string `json:"bookingUrl"`
	SoldOutLevel  *string `json:"soldOutLevel"`
	TicketsSold   *string `json:"ticketsSold"`
	PassesAllowed *string `json:"passesAllowed"`
}

type DateShowtimes struct {
	Date      string
	Showtimes []ShowtimeResponse
}

// ShowtimesByDateResponse encodes as a JSON object whose keys keep the order
// of the slice.
type ShowtimesByDateResponse []DateShowtimes

func (s ShowtimesByDateResponse) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, d := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(d.Date)
		if err != nil {
			return nil, err
		}
		showtimes := d.Showtimes
		if showtimes == nil {
			showtimes = []ShowtimeResponse{}
		}
		val, err := json.Marshal(showtimes)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Helper converters
func MovieToResponse(film entity.Film) MovieResponse {
	dates := film.Showtimes.Dates()
	byDate := make(ShowtimesByDateResponse, 0, len(dates))
	for _, date := range dates {
		showtimes := film.Showtimes.Get(date)
		items := make([]ShowtimeResponse, len(showtimes))
		for i, st := range showtimes {
			items[i] = ShowtimeResponse{
				Time:          st.Time,
				Screen:        st.Screen,
				BookingURL:    st.BookingURL,
				SoldOutLevel:  st.SoldOutLevel,
				TicketsSold:   st.TicketsSold,
				PassesAllowed: st.PassesAllowed,
			}
		}
		byDate = append(byDate, DateShowtimes{Date: date, Showtimes: items})
	}

	return MovieResponse{
		Code:            film.Code,
		Title:           film.Title,
		Synopsis:        film.Synopsis,
		Certificate:     film.Certificate,
		CertImageURL:    film.CertImageURL,
		Genre:           film.Genre,
		RunningTime:     film.RunningTime,
		Directors:       film.Directors,
		Actors:          film.Actors,
		StartDate:       film.StartDate,
		EndDate:         film.EndDate,
		PosterURL:       film.PosterURL,
		YoutubeID:       film.YoutubeID,
		ShowtimesByDate: byDate,
	}
}

// MoviesToResponse never returns nil, so an empty listing encodes as [].
func MoviesToResponse(films []entity.Film) []MovieResponse {
	out := make([]MovieResponse, 0, len(films))
	for _, film := range films {
		out = append(out, MovieToResponse(film))
	}
	return out
}
