package cli

import "io"

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config  string `long:"config" description:"Path to config file" default:""`
	JSON    bool   `long:"json" description:"Output in JSON format"`
	Verbose bool   `long:"verbose" description:"Enable verbose output"`
	Profile string `long:"profile" description:"Preference profile to use (default from config)"`
	Version bool   `long:"version" description:"Show version and exit"`
}

// ServeCommand runs the HTTP API.
type ServeCommand struct {
	Host string `long:"host" description:"Override listen host"`
	Port int    `long:"port" description:"Override listen port"`

	globals *GlobalFlags
	version string
}

// SearchCommand searches the catalog by keyword.
type SearchCommand struct {
	Category string `long:"category" description:"Only games in this category" default:"all"`
	Limit    int    `long:"limit" description:"Maximum results (0 for all)" default:"0"`

	globals *GlobalFlags
	version string
}

// ListCommand lists catalog games with optional filters.
type ListCommand struct {
	Category  string `long:"category" description:"Only games in this category" default:"all"`
	Featured  bool   `long:"featured" description:"Only featured games"`
	TwoPlayer bool   `long:"two-player" description:"Only two-player games"`
	Hot       bool   `long:"hot" description:"Only trending games"`
	New       bool   `long:"new" description:"Only games added in the last five days"`

	globals *GlobalFlags
	version string
}

// ShowCommand prints one game with its rating and favorite state.
type ShowCommand struct {
	ID string `long:"id" description:"Game ID (required)"`

	globals *GlobalFlags
	version string
}

// PlayCommand opens a game: records it as recently played and prints its
// embed URL.
type PlayCommand struct {
	ID string `long:"id" description:"Game ID (required)"`

	globals *GlobalFlags
	version string
}

// FavCommand toggles or lists favorites.
type FavCommand struct {
	ID   string `long:"id" description:"Game ID to toggle"`
	List bool   `long:"list" description:"List favorites"`

	globals *GlobalFlags
	version string
}

// RateCommand submits a star rating.
type RateCommand struct {
	ID    string `long:"id" description:"Game ID (required)"`
	Stars int    `long:"stars" description:"Rating from 1 to 5 (required)"`

	globals *GlobalFlags
	version string
}

// TopCommand lists the best rated games.
type TopCommand struct {
	Min   int  `long:"min" description:"Minimum number of ratings" default:"3"`
	Limit int  `long:"limit" description:"Maximum results" default:"6"`
	Most  bool `long:"most" description:"Order by number of ratings instead"`

	globals *GlobalFlags
	version string
}

// RecentCommand shows or clears the recently played list.
type RecentCommand struct {
	Clear bool `long:"clear" description:"Forget recently played games"`

	globals *GlobalFlags
	version string
}

// ThemeCommand shows or changes the theme preference.
type ThemeCommand struct {
	Toggle bool   `long:"toggle" description:"Switch between dark and light"`
	Set    string `long:"set" description:"Set theme: dark | light"`

	globals *GlobalFlags
	version string
}

// CollectionsCommand lists collections or resolves one.
type CollectionsCommand struct {
	ID string `long:"id" description:"Collection ID to resolve"`

	globals *GlobalFlags
	version string
}

// StatusCommand shows catalog, storage and profile statistics.
type StatusCommand struct {
	globals *GlobalFlags
	version string
}

// PurgeCommand deletes every preference of the profile with safety
// confirmation.
type PurgeCommand struct {
	All   bool `long:"all" description:"Required flag to confirm purge intent"`
	Force bool `long:"force" description:"Skip safety confirmation prompt"`

	globals *GlobalFlags
	version string
	in      io.Reader // injectable for testing; nil means os.Stdin
}
