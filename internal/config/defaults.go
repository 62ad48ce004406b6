package config

// Known config keys.
const (
	KeyDatabasePath = "database.path"
	KeyLogLevel     = "log.level"
	KeyOutputColor  = "output.color"
)

// DefaultValues returns the default config map for the core keys.
func DefaultValues() map[string]string {
	return map[string]string{
		KeyDatabasePath: "reis.db",
		KeyLogLevel:     "warn",
		KeyOutputColor:  "auto",
	}
}

// ApplyDefaults fills any missing core keys in s with their default values.
// Defaults are kept in memory only and never written to the config file.
func ApplyDefaults(s Store) {
	all := s.All()
	for k, v := range DefaultValues() {
		if _, exists := all[k]; !exists {
			s.SetInMemory(k, v)
		}
	}
}
