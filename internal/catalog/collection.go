package catalog

// Collection is a curated, ordered group of games.
type Collection struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Icon        string   `json:"icon"`
	Description string   `json:"description"`
	GameIDs     []string `json:"gameIds"`
	Color       string   `json:"color"`
}

// Resolved is a collection with its game ids looked up in the catalog.
type Resolved struct {
	Collection Collection `json:"collection"`
	Games      []Game     `json:"games"`
	// Dropped counts ids that are not in the catalog.
	Dropped int `json:"dropped"`
}

// Resolve maps the collection's ids to games, preserving order. Ids that
// do not resolve are skipped rather than reported as errors.
func (c *Catalog) Resolve(col Collection) Resolved {
	out := Resolved{Collection: col, Games: make([]Game, 0, len(col.GameIDs))}

	var missing []string
	for _, id := range col.GameIDs {
		g, ok := c.Get(id)
		if !ok {
			missing = append(missing, id)
			continue
		}
		out.Games = append(out.Games, g)
	}

	out.Dropped = len(missing)
	if out.Dropped > 0 {
		c.logger.Debug().
			Str("collection", col.ID).
			Strs("missing", missing).
			Msg("dropped unknown games from collection")
	}

	return out
}
