/* espn_models.go
 * This file contains the typed shape of the ESPN scoreboard response. Every nested field the parser reads is optional:
 * pointers and empty slices stand in for fields the provider leaves out, and the parser defaults each one explicitly
 */

package external

import (
	"bytes"
	"encoding/json"
	"strings"
)

// ScoreboardResponse is the top level scoreboard document. Only events are used
type ScoreboardResponse struct {
	Events []Event `json:"events"`
}

// Event is one raw game record
type Event struct {
	ID           string        `json:"id"`
	Date         string        `json:"date"`
	Name         string        `json:"name"`
	ShortName    string        `json:"shortName"`
	Season       *Season       `json:"season"`
	Week         *Week         `json:"week"`
	Competitions []Competition `json:"competitions"`
	Status       *EventStatus  `json:"status"`
}

type Season struct {
	Year int    `json:"year"`
	Type *int   `json:"type"`
	Slug string `json:"slug"`
}

type Week struct {
	Number *int `json:"number"`
}

type Competition struct {
	Venue       *Venue       `json:"venue"`
	Competitors []Competitor `json:"competitors"`
	Notes       []Note       `json:"notes"`
	Status      *EventStatus `json:"status"`
	Situation   *Situation   `json:"situation"`
}

type Venue struct {
	FullName string `json:"fullName"`
}

type Note struct {
	Type     string `json:"type"`
	Headline string `json:"headline"`
}

type Competitor struct {
	HomeAway string   `json:"homeAway"`
	Score    Score    `json:"score"`
	Team     *Team    `json:"team"`
	Records  []Record `json:"records"`
}

type Team struct {
	Abbreviation string `json:"abbreviation"`
	DisplayName  string `json:"displayName"`
	Logo         string `json:"logo"`
}

type Record struct {
	Summary string `json:"summary"`
}

type EventStatus struct {
	DisplayClock string      `json:"displayClock"`
	Period       int         `json:"period"`
	Type         *StatusType `json:"type"`
}

type StatusType struct {
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

type Situation struct {
	LastPlay *LastPlay `json:"lastPlay"`
}

type LastPlay struct {
	Probability *Probability `json:"probability"`
}

type Probability struct {
	HomeWinPercentage *float64 `json:"homeWinPercentage"`
	AwayWinPercentage *float64 `json:"awayWinPercentage"`
}

// Score is the raw text of a competitor's score. The scoreboard sends it as a string, but a bare number or null is
// also accepted so one odd record can't fail a whole week's decode
type Score string

func (s *Score) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = Score(str)
		return nil
	}
	// anything else is kept verbatim and left for the parser to default
	*s = Score(data)
	return nil
}

// competition returns the first competition, which is the only one the scoreboard ever sends for an NFL game
func (e Event) competition() *Competition {
	if len(e.Competitions) == 0 {
		return nil
	}
	return &e.Competitions[0]
}

// Headline returns the first non-empty event note, e.g. "AFC Wild Card Playoffs", or "" if there isn't one
func (e Event) Headline() string {
	comp := e.competition()
	if comp == nil {
		return ""
	}
	for _, note := range comp.Notes {
		if h := strings.TrimSpace(note.Headline); h != "" {
			return h
		}
	}
	return ""
}

// WeekNumber returns the event's week number, or false if the record doesn't carry one
func (e Event) WeekNumber() (int, bool) {
	if e.Week == nil || e.Week.Number == nil {
		return 0, false
	}
	return *e.Week.Number, true
}

// HasSeasonType reports whether the record carries a season type indicator at all
func (e Event) HasSeasonType() bool {
	return e.Season != nil && (e.Season.Type != nil || e.Season.Slug != "")
}

// IsPostseason reports whether the season type indicator denotes the postseason
func (e Event) IsPostseason() bool {
	if e.Season == nil {
		return false
	}
	if e.Season.Type != nil && *e.Season.Type == postseasonType {
		return true
	}
	switch strings.ToLower(e.Season.Slug) {
	case "post-season", "postseason":
		return true
	}
	return false
}

// statusName returns the provider status name, preferring the event level status over the competition's
func (e Event) statusName() string {
	if e.Status != nil && e.Status.Type != nil && e.Status.Type.Name != "" {
		return e.Status.Type.Name
	}
	if comp := e.competition(); comp != nil && comp.Status != nil && comp.Status.Type != nil {
		return comp.Status.Type.Name
	}
	return ""
}

func (e Event) liveStatus() *EventStatus {
	if e.Status != nil {
		return e.Status
	}
	if comp := e.competition(); comp != nil {
		return comp.Status
	}
	return nil
}

// competitor returns the home or away competitor, or nil if the record doesn't list it
func (e Event) competitor(side string) *Competitor {
	comp := e.competition()
	if comp == nil {
		return nil
	}
	for i := range comp.Competitors {
		if comp.Competitors[i].HomeAway == side {
			return &comp.Competitors[i]
		}
	}
	return nil
}
