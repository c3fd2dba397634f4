package driven

// ConfigStore provides access to application settings stored as flat dotted
// keys (e.g. "retrieval.k"). Implementations handle persistence and type
// conversion; getters return the zero value when a key is missing or has
// the wrong type.
type ConfigStore interface {
	// Get retrieves a raw value and reports whether the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string value.
	GetString(key string) string

	// GetInt retrieves an integer value; TOML int64 and JSON float64 are accepted.
	GetInt(key string) int

	// GetFloat retrieves a floating-point value; integers are widened.
	GetFloat(key string) float64

	// GetBool retrieves a boolean value.
	GetBool(key string) bool

	// GetStringSlice retrieves a string slice value.
	GetStringSlice(key string) []string

	// Set stores a value in memory. Call Save to persist it.
	Set(key string, value any) error

	// Save persists the current configuration to storage.
	Save() error

	// Load reads configuration from storage.
	Load() error

	// Path returns the configuration file path.
	Path() string
}
