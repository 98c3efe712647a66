package via

type LogLevel int

const (
	undefined LogLevel = iota
	LogLevelError
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

// Plugin integrates with the Via app runtime. Implement Register to inject
// head elements, HTTP handlers, or other app-level concerns.
type Plugin interface {
	Register(*V)
}

// PluginFunc adapts a plain function to the Plugin interface.
type PluginFunc func(*V)

func (f PluginFunc) Register(v *V) { f(v) }

// Options defines configuration options for the via application
type Options struct {
	// The development mode flag. Enables verbose patch logging.
	DevMode bool

	// The http server address. e.g. ':3000'
	ServerAddress string

	// Level of the logs to write to stdout.
	// Options: Error, Warn, Info, Debug.
	LogLvl LogLevel

	// The title of the HTML document.
	DocumentTitle string

	// The lang attribute of the HTML document.
	DocumentLanguage string

	// SessionTTL is the number of seconds after which inactive page visits are swept.
	// Default is 30 minutes. Negative disables the sweep.
	SessionTTL int

	// SessionCookieName is the name of the browser session cookie.
	// Default is "via_sid".
	SessionCookieName string

	// SessionCookieMaxAge is the max age of the browser session cookie in seconds.
	// Default is 30 days (2592000 seconds).
	SessionCookieMaxAge int

	// Plugins to extend the capabilities of the `Via` application.
	Plugins []Plugin
}
