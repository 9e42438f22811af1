package driven

// ConfigStore persists user configuration as key/value pairs. Nested
// keys use dot notation ("index.languages").
type ConfigStore interface {
	Get(key string) (any, bool)
	GetString(key string) string
	GetInt(key string) int
	GetBool(key string) bool
	GetStringSlice(key string) []string
	Set(key string, value any) error
	Save() error
	Path() string
}
