package cli

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Serve       *ServeCommand
	Search      *SearchCommand
	List        *ListCommand
	Show        *ShowCommand
	Play        *PlayCommand
	Fav         *FavCommand
	Rate        *RateCommand
	Top         *TopCommand
	Recent      *RecentCommand
	Theme       *ThemeCommand
	Collections *CollectionsCommand
	Status      *StatusCommand
	Purge       *PurgeCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "arcade"
	parser.LongDescription = "Browse, play and rate unblocked web games, with favorites and history kept per profile."

	cmds := &commands{
		Serve:       &ServeCommand{globals: &globals, version: version},
		Search:      &SearchCommand{globals: &globals, version: version},
		List:        &ListCommand{globals: &globals, version: version},
		Show:        &ShowCommand{globals: &globals, version: version},
		Play:        &PlayCommand{globals: &globals, version: version},
		Fav:         &FavCommand{globals: &globals, version: version},
		Rate:        &RateCommand{globals: &globals, version: version},
		Top:         &TopCommand{globals: &globals, version: version},
		Recent:      &RecentCommand{globals: &globals, version: version},
		Theme:       &ThemeCommand{globals: &globals, version: version},
		Collections: &CollectionsCommand{globals: &globals, version: version},
		Status:      &StatusCommand{globals: &globals, version: version},
		Purge:       &PurgeCommand{globals: &globals, version: version},
	}

	parser.AddCommand("serve", "Run the HTTP API", "Serve the catalog and preference API over HTTP until interrupted.", cmds.Serve)
	parser.AddCommand("search", "Search the catalog", "Search game titles, descriptions and categories by keyword.", cmds.Search)
	parser.AddCommand("list", "List games", "List catalog games, optionally filtered by category or flag.", cmds.List)
	parser.AddCommand("show", "Show one game", "Show a game with its rating summary and favorite state.", cmds.Show)
	parser.AddCommand("play", "Play a game", "Record a game as recently played and print its embed URL.", cmds.Play)
	parser.AddCommand("fav", "Toggle or list favorites", "Toggle a game's favorite state, or list favorites with --list.", cmds.Fav)
	parser.AddCommand("rate", "Rate a game", "Submit a 1 to 5 star rating for a game.", cmds.Rate)
	parser.AddCommand("top", "Show top rated games", "Show the best rated games with at least --min ratings.", cmds.Top)
	parser.AddCommand("recent", "Show recently played games", "Show or clear the recently played list.", cmds.Recent)
	parser.AddCommand("theme", "Show or change the theme", "Show, set or toggle the dark/light theme preference.", cmds.Theme)
	parser.AddCommand("collections", "List curated collections", "List curated collections, or resolve one with --id.", cmds.Collections)
	parser.AddCommand("status", "Show catalog and storage statistics", "Show catalog size, storage backend statistics and profile summary.", cmds.Status)
	parser.AddCommand("purge", "Delete ALL preferences of the profile", "Delete every favorite, rating, history entry and setting of the profile. Destructive operation with safety prompt.", cmds.Purge)

	return parser, &globals, cmds
}

// Run is the main entry point for the arcade CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the matched subcommand.
func RunWithArgs(version string, args []string) error {
	// Handle --version before parser (go-flags requires a subcommand, but
	// --version is valid without one).
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("arcade %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _, _ := buildParser(version)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok {
			if flagsErr.Type == goflags.ErrHelp {
				return nil
			}
		}
		return err
	}

	return nil
}
