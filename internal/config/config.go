package config

// Config holds all application configuration, grouped by concern.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	Store  StoreConfig  `mapstructure:"store"  validate:"required"`
	Quiz   QuizConfig   `mapstructure:"quiz"`
	Packs  []PackConfig `mapstructure:"packs"  validate:"required,min=1,dive"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// AllowedOrigins feeds the CORS middleware; the quiz frontend is a
	// static page that may be served from a different origin during
	// development.
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// StoreConfig contains persistence settings.
type StoreConfig struct {
	// Path is the SQLite file holding settings, history, bookmarks and
	// the active pack selection.
	Path string `mapstructure:"path" validate:"required"`
}

// QuizConfig contains engine tuning knobs.
type QuizConfig struct {
	// TagDebounceMs is the quiet period applied to tag-query filter
	// changes before the filter recomputes, so typing in the tag box
	// does not refilter on every keystroke.
	TagDebounceMs int `mapstructure:"tag_debounce_ms" validate:"gte=0"`
}

// PackConfig registers one question pack.
type PackConfig struct {
	ID    string `mapstructure:"id"    validate:"required"`
	Label string `mapstructure:"label"`
	URL   string `mapstructure:"url"   validate:"required,url"`
}
