package ports

// Durable settings keys. These strings are shared with the console shell
// and must not change.
const (
	KeyToken         = "token"
	KeyTheme         = "theme"
	KeySidebarLayout = "sidebar_layout"
)

// SettingsStore is the durable local key/value store (token, theme,
// sidebar layout). Writes are atomic whole-value replacements. Reads on
// an absent or unreadable store report absence rather than failing.
type SettingsStore interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}
