package config

// Unknown is used for route fields that could not be recovered from a config file.
const Unknown = "unknown"

// Route is a tenant routing entry as read back from the web server config.
//
// Port is a string because it is re-derived from config text and may be Unknown.
type Route struct {
	ID      string `json:"id" yaml:"id"`
	Domain  string `json:"domain" yaml:"domain"`
	Port    string `json:"port" yaml:"port"`
	Config  string `json:"config" yaml:"config"`
	Enabled bool   `json:"enabled" yaml:"-"`
}

// Complete reports whether every field was recovered.
func (r *Route) Complete() bool {
	return r.ID != Unknown && r.Domain != Unknown && r.Port != Unknown
}
