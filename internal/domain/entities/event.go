package entities

import "time"

// Matchup is a single bout on a fight card.
// IsMainEvent and IsCoMainEvent are independent; a card may have several or none.
type Matchup struct {
	Fighter1      string `json:"fighter1"`
	Fighter2      string `json:"fighter2"`
	WeightClass   string `json:"weightClass"`
	IsMainEvent   bool   `json:"isMainEvent"`
	IsCoMainEvent bool   `json:"isCoMainEvent"`
}

// FightEvent is a scheduled event. Date is an absolute instant.
// FightCard keeps the order supplied by the source.
type FightEvent struct {
	Promotion Promotion `json:"promotion"`
	EventName string    `json:"eventName"`
	Date      time.Time `json:"date"`
	Venue     string    `json:"venue"`
	Location  string    `json:"location"`
	FightCard []Matchup `json:"fightCard"`
}

// MainEvent returns the first matchup flagged as main event, if any.
func (e FightEvent) MainEvent() (Matchup, bool) {
	for _, m := range e.FightCard {
		if m.IsMainEvent {
			return m, true
		}
	}
	return Matchup{}, false
}

// Source is a grounding citation returned alongside generated event data.
type Source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// Payload is the result of one successful fetch.
type Payload struct {
	Events  []FightEvent `json:"events"`
	Sources []Source     `json:"sources"`
}
