package domain

// Auth carries opaque credential parameters through to the extraction
// engine. When both fields are set, CookiesFile wins; this mirrors the
// engine's own precedence and is documented on the CLI flags.
type Auth struct {
	CookiesFile        string
	CookiesFromBrowser string
}
