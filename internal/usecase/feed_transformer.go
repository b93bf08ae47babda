package usecase

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"cinema-listing/internal/data/entity"

	"golang.org/x/net/html/charset"
)

// TransformOutcome classifies a transformation so callers can tell an empty
// feed from one that could not be parsed.
type TransformOutcome string

const (
	OutcomeFilms       TransformOutcome = "films"
	OutcomeEmpty       TransformOutcome = "empty"
	OutcomeUnparseable TransformOutcome = "unparseable"
)

// TransformStats counts what the transformer saw and skipped.
type TransformStats struct {
	FilmsSeen            int
	FilmsWithoutCode     int
	DuplicateFilmCodes   int
	PerformancesSeen     int
	UnknownFilmCode      int
	MissingDateOrTime    int
	FilmsWithoutShowtime int
}

// TransformResult is the output of TransformFeed. Films is never nil.
type TransformResult struct {
	Outcome TransformOutcome
	Films   []entity.Film
	Stats   TransformStats
	Err     error
}

var youtubeIDPattern = regexp.MustCompile(`(?:youtube\.com/(?:embed/|v/|watch\?v=)|youtu\.be/|embed/)([\w-]+)`)

// xmlNode is a generic element: its own text plus child elements in order.
type xmlNode struct {
	XMLName  xml.Name
	Text     string    `xml:",chardata"`
	Children []xmlNode `xml:",any"`
}

// child returns the first direct child named tag.
func (n *xmlNode) child(tag string) *xmlNode {
	for i := range n.Children {
		if n.Children[i].XMLName.Local == tag {
			return &n.Children[i]
		}
	}
	return nil
}

// findAll walks a slash-separated path of direct children, like "Films/Film".
func (n *xmlNode) findAll(path string) []*xmlNode {
	current := []*xmlNode{n}
	for _, tag := range strings.Split(path, "/") {
		var next []*xmlNode
		for _, node := range current {
			for i := range node.Children {
				if node.Children[i].XMLName.Local == tag {
					next = append(next, &node.Children[i])
				}
			}
		}
		current = next
	}
	return current
}

// text returns the trimmed text of child tag, or nil when the child is
// missing, blank, or "none" in any case.
func (n *xmlNode) text(tag string) *string {
	c := n.child(tag)
	if c == nil {
		return nil
	}
	v := strings.TrimSpace(c.Text)
	if v == "" || strings.EqualFold(v, "none") {
		return nil
	}
	return &v
}

// firstOf returns the first non-nil value of tags, in order.
func (n *xmlNode) firstOf(tags ...string) *string {
	for _, tag := range tags {
		if v := n.text(tag); v != nil {
			return v
		}
	}
	return nil
}

// ExtractYoutubeID pulls the video ID out of an embed, /v/, watch?v= or
// youtu.be URL. The first match anywhere in the string wins.
func ExtractYoutubeID(url *string) *string {
	if url == nil || strings.EqualFold(strings.TrimSpace(*url), "none") {
		return nil
	}
	m := youtubeIDPattern.FindStringSubmatch(*url)
	if m == nil {
		return nil
	}
	id := m[1]
	return &id
}

// truncateSeconds drops a trailing ":SS" from a HH:MM:SS start time. Values
// without a seconds suffix are returned unchanged.
func truncateSeconds(start string) string {
	if n := len(start); n > 3 && strings.Count(start, ":") >= 2 && start[n-3] == ':' {
		return start[:n-3]
	}
	return start
}

// filmIndex is a code-keyed film map that remembers first-seen order.
type filmIndex struct {
	order []string
	films map[string]*entity.Film
}

func newFilmIndex() *filmIndex {
	return &filmIndex{films: make(map[string]*entity.Film)}
}

// put stores f under its code. A repeated code replaces the earlier film but
// keeps its position.
func (idx *filmIndex) put(f *entity.Film) bool {
	_, exists := idx.films[f.Code]
	if !exists {
		idx.order = append(idx.order, f.Code)
	}
	idx.films[f.Code] = f
	return exists
}

func (idx *filmIndex) get(code string) (*entity.Film, bool) {
	f, ok := idx.films[code]
	return f, ok
}

// parseFeed decodes raw XML into its root element. Non-UTF-8 documents are
// decoded using the charset named in their XML declaration.
func parseFeed(raw []byte) (*xmlNode, error) {
	var root xmlNode
	dec := xml.NewDecoder(bytes.NewReader(raw))
	dec.CharsetReader = charset.NewReaderLabel
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	if err := expectEOF(dec); err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	return &root, nil
}

// expectEOF rejects anything after the root element other than whitespace,
// comments and processing instructions.
func expectEOF(dec *xml.Decoder) error {
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.Comment, xml.ProcInst:
		case xml.CharData:
			if len(bytes.TrimSpace(t)) != 0 {
				return errors.New("junk after document element")
			}
		default:
			return errors.New("junk after document element")
		}
	}
}

// TransformFeed turns a raw vendor feed into films with showtimes grouped by
// date. It never fails: unparseable input yields OutcomeUnparseable with an
// empty film list and the parse error in Err.
func TransformFeed(raw []byte) TransformResult {
	root, err := parseFeed(raw)
	if err != nil {
		return TransformResult{Outcome: OutcomeUnparseable, Films: []entity.Film{}, Err: err}
	}

	var stats TransformStats
	idx := newFilmIndex()

	for _, el := range root.findAll("Films/Film") {
		stats.FilmsSeen++

		code := el.text("Code")
		if code == nil {
			stats.FilmsWithoutCode++
			continue
		}

		film := &entity.Film{
			Code:         *code,
			Title:        el.firstOf("FilmTitle", "ShortFilmTitle"),
			Synopsis:     el.text("Synopsis"),
			Certificate:  el.text("Certificate"),
			CertImageURL: el.text("CertificateImage"),
			Genre:        el.text("Genre"),
			RunningTime:  el.text("RunningTime"),
			Directors:    el.text("Directors"),
			Actors:       el.text("Actors"),
			StartDate:    el.text("StartDate"),
			EndDate:      el.text("EndDate"),
			PosterURL:    el.firstOf("Img_app", "Img_1s"),
			YoutubeID:    ExtractYoutubeID(el.text("Youtube")),
			Showtimes:    entity.NewShowtimesByDate(),
		}
		if idx.put(film) {
			stats.DuplicateFilmCodes++
		}
	}

	for _, el := range root.findAll("Performances/Performance") {
		stats.PerformancesSeen++

		code := el.text("FilmCode")
		if code == nil {
			stats.UnknownFilmCode++
			continue
		}
		film, ok := idx.get(*code)
		if !ok {
			stats.UnknownFilmCode++
			continue
		}

		date := el.text("PerformDate")
		start := el.text("StartTime")
		if date == nil || start == nil {
			stats.MissingDateOrTime++
			continue
		}

		film.Showtimes.Add(*date, entity.Showtime{
			Time:          truncateSeconds(*start),
			Screen:        el.text("Screen"),
			BookingURL:    el.text("BookingURL"),
			SoldOutLevel:  el.text("SoldOutLevel"),
			TicketsSold:   el.text("TicketsSold"),
			PassesAllowed: el.text("Passes"),
		})
	}

	films := make([]entity.Film, 0, len(idx.order))
	for _, code := range idx.order {
		film, _ := idx.get(code)
		if !film.HasShowtimes() {
			stats.FilmsWithoutShowtime++
			continue
		}
		films = append(films, *film)
	}

	outcome := OutcomeFilms
	if len(films) == 0 {
		outcome = OutcomeEmpty
	}

	return TransformResult{Outcome: outcome, Films: films, Stats: stats}
}
