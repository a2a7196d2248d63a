package models

// Settings is the application key-value configuration stored in the
// settings table (SMTP credentials, email sender identity, templates).
type Settings map[string]string

// Get returns the value for key or the empty string.
func (s Settings) Get(key string) string {
	return s[key]
}
