package catalog

import (
	_ "embed"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed data/games.yaml
var gamesYAML []byte

//go:embed data/collections.yaml
var collectionsYAML []byte

const addedLayout = "2006-01-02"

type gameRecord struct {
	ID          string   `yaml:"id" validate:"required"`
	Title       string   `yaml:"title" validate:"required"`
	Thumbnail   string   `yaml:"thumbnail" validate:"required,url"`
	EmbedURL    string   `yaml:"embed_url" validate:"required,url"`
	Categories  []string `yaml:"categories" validate:"required,min=1,dive,oneof=action puzzle io racing sports multiplayer casual"`
	Featured    bool     `yaml:"featured"`
	Hot         bool     `yaml:"hot"`
	TwoPlayer   bool     `yaml:"two_player"`
	AddedAt     string   `yaml:"added_at" validate:"required,datetime=2006-01-02"`
	Description string   `yaml:"description"`
}

type collectionRecord struct {
	ID          string   `yaml:"id" validate:"required"`
	Title       string   `yaml:"title" validate:"required"`
	Icon        string   `yaml:"icon"`
	Description string   `yaml:"description"`
	Color       string   `yaml:"color"`
	GameIDs     []string `yaml:"game_ids" validate:"required,min=1,dive,required"`
}

// ParseGames decodes and validates a games YAML document. Ids must be
// unique and every game needs at least one known category.
func ParseGames(data []byte) ([]Game, error) {
	var doc struct {
		Games []gameRecord `yaml:"games"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing games: %w", err)
	}

	v := validator.New()
	seen := make(map[string]bool, len(doc.Games))
	games := make([]Game, 0, len(doc.Games))

	for i, r := range doc.Games {
		if err := v.Struct(r); err != nil {
			return nil, fmt.Errorf("game %d (%q): %w", i, r.ID, err)
		}
		if seen[r.ID] {
			return nil, fmt.Errorf("duplicate game id %q", r.ID)
		}
		seen[r.ID] = true

		added, err := time.Parse(addedLayout, r.AddedAt)
		if err != nil {
			return nil, fmt.Errorf("game %q: added_at: %w", r.ID, err)
		}

		cats := make([]Category, len(r.Categories))
		for j, c := range r.Categories {
			cats[j] = Category(c)
		}

		games = append(games, Game{
			ID:          r.ID,
			Title:       r.Title,
			Thumbnail:   r.Thumbnail,
			EmbedURL:    r.EmbedURL,
			Categories:  cats,
			Description: r.Description,
			AddedAt:     added,
			Featured:    r.Featured,
			Hot:         r.Hot,
			TwoPlayer:   r.TwoPlayer,
		})
	}

	return games, nil
}

// ParseCollections decodes and validates a collections YAML document.
func ParseCollections(data []byte) ([]Collection, error) {
	var doc struct {
		Collections []collectionRecord `yaml:"collections"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing collections: %w", err)
	}

	v := validator.New()
	seen := make(map[string]bool, len(doc.Collections))
	cols := make([]Collection, 0, len(doc.Collections))

	for i, r := range doc.Collections {
		if err := v.Struct(r); err != nil {
			return nil, fmt.Errorf("collection %d (%q): %w", i, r.ID, err)
		}
		if seen[r.ID] {
			return nil, fmt.Errorf("duplicate collection id %q", r.ID)
		}
		seen[r.ID] = true

		cols = append(cols, Collection{
			ID:          r.ID,
			Title:       r.Title,
			Icon:        r.Icon,
			Description: r.Description,
			GameIDs:     r.GameIDs,
			Color:       r.Color,
		})
	}

	return cols, nil
}
