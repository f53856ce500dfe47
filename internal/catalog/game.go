package catalog

import "time"

// Category is a game genre tag. A game belongs to one or more categories.
type Category string

const (
	CategoryAction      Category = "action"
	CategoryPuzzle      Category = "puzzle"
	CategoryIO          Category = "io"
	CategoryRacing      Category = "racing"
	CategorySports      Category = "sports"
	CategoryMultiplayer Category = "multiplayer"
	CategoryCasual      Category = "casual"
)

// CategoryAll is the sentinel that selects every game.
const CategoryAll = "all"

// newWindowDays is how many calendar days a game keeps its "new" badge.
const newWindowDays = 5

const dayMillis = int64(24 * time.Hour / time.Millisecond)

// Game is one embeddable web game.
type Game struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Thumbnail   string     `json:"thumbnail"`
	EmbedURL    string     `json:"embedUrl"`
	Categories  []Category `json:"categories"`
	Description string     `json:"description"`
	AddedAt     time.Time  `json:"addedAt"`
	Featured    bool       `json:"featured,omitempty"`
	Hot         bool       `json:"isHot,omitempty"`
	TwoPlayer   bool       `json:"isTwoPlayer,omitempty"`
}

// HasCategory reports whether the game is tagged with c.
func (g Game) HasCategory(c Category) bool {
	for _, gc := range g.Categories {
		if gc == c {
			return true
		}
	}
	return false
}

// IsNew reports whether g was added within the last five calendar days of
// now. The distance is the absolute millisecond difference rounded up to
// whole days, so exactly five days is still new and one millisecond more
// is not.
func IsNew(g Game, now time.Time) bool {
	ms := now.Sub(g.AddedAt).Milliseconds()
	if ms < 0 {
		ms = -ms
	}
	days := (ms + dayMillis - 1) / dayMillis
	return days <= newWindowDays
}
