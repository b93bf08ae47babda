package response

import (
	"strings"
	"testing"

	"cinema-listing/internal/data/entity"

	"github.com/goccy/go-json"
)

func strp(s string) *string { return &s }

func TestMovieToResponse_JSONShape(t *testing.T) {
	showtimes := entity.NewShowtimesByDate()
	showtimes.Add("2025-09-26", entity.Showtime{Time: "20:00", Screen: strp("1")})

	film := entity.Film{Code: "F1", Title: strp("Test"), Showtimes: showtimes}

	body, err := json.Marshal(MovieToResponse(film))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	for _, key := range []string{
		"code", "title", "synopsis", "certificate", "certImageUrl", "genre",
		"runningTime", "directors", "actors", "startDate", "endDate",
		"posterUrl", "youtubeId", "showtimesByDate",
	} {
		if _, ok := got[key]; !ok {
			t.Errorf("key %q missing from %s", key, body)
		}
	}
	if got["synopsis"] != nil {
		t.Errorf("synopsis = %v, want null", got["synopsis"])
	}
	if got["title"] != "Test" {
		t.Errorf("title = %v, want Test", got["title"])
	}
	if strings.Contains(string(body), "None") {
		t.Errorf("body contains the string None: %s", body)
	}

	byDate, ok := got["showtimesByDate"].(map[string]any)
	if !ok {
		t.Fatalf("showtimesByDate is %T, want object", got["showtimesByDate"])
	}
	list, ok := byDate["2025-09-26"].([]any)
	if !ok || len(list) != 1 {
		t.Fatalf("showtimesByDate[2025-09-26] = %v, want one entry", byDate["2025-09-26"])
	}
	st := list[0].(map[string]any)
	for _, key := range []string{"time", "screen", "bookingUrl", "soldOutLevel", "ticketsSold", "passesAllowed"} {
		if _, ok := st[key]; !ok {
			t.Errorf("showtime key %q missing", key)
		}
	}
	if st["time"] != "20:00" || st["screen"] != "1" || st["bookingUrl"] != nil {
		t.Errorf("unexpected showtime %v", st)
	}
}

func TestShowtimesByDateResponse_KeepsOrder(t *testing.T) {
	s := ShowtimesByDateResponse{
		{Date: "2025-09-28", Showtimes: []ShowtimeResponse{{Time: "10:00"}}},
		{Date: "2025-09-26", Showtimes: []ShowtimeResponse{{Time: "11:00"}}},
		{Date: "2025-09-27", Showtimes: []ShowtimeResponse{{Time: "12:00"}}},
	}

	body, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	out := string(body)
	i28 := strings.Index(out, `"2025-09-28"`)
	i26 := strings.Index(out, `"2025-09-26"`)
	i27 := strings.Index(out, `"2025-09-27"`)
	if i28 < 0 || i26 < 0 || i27 < 0 || !(i28 < i26 && i26 < i27) {
		t.Errorf("keys out of insertion order: %s", out)
	}
}

func TestShowtimesByDateResponse_EmptyAndIndented(t *testing.T) {
	body, err := json.Marshal(ShowtimesByDateResponse{})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(body) != "{}" {
		t.Errorf("empty buckets = %s, want {}", body)
	}

	resp := MovieResponse{
		Code: "F1",
		ShowtimesByDate: ShowtimesByDateResponse{
			{Date: "d1", Showtimes: []ShowtimeResponse{{Time: "10:00"}}},
		},
	}
	indented, err := json.MarshalIndent([]MovieResponse{resp}, "", "    ")
	if err != nil {
		t.Fatalf("MarshalIndent() error = %v", err)
	}

	var back []map[string]any
	if err := json.Unmarshal(indented, &back); err != nil {
		t.Fatalf("indented output is not valid JSON: %v\n%s", err, indented)
	}
	if len(back) != 1 || back[0]["code"] != "F1" {
		t.Errorf("round trip = %v", back)
	}
}

func TestMoviesToResponse_NeverNil(t *testing.T) {
	out := MoviesToResponse(nil)
	if out == nil {
		t.Fatal("MoviesToResponse(nil) = nil, want empty slice")
	}

	body, _ := json.Marshal(out)
	if string(body) != "[]" {
		t.Errorf("empty listing = %s, want []", body)
	}
}
