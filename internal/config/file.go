package config

import "time"

// File represents the structure of the .solvertally configuration file.
// Zero values mean "not set" and leave the corresponding default untouched.
type File struct {
	// Site describes the puzzle site being crawled.
	Site SiteSection `yaml:"site,omitempty"`

	// Selectors overrides the CSS selectors used for extraction.
	Selectors SelectorSection `yaml:"selectors,omitempty"`

	// Browser configures the playwright browser session.
	Browser BrowserSection `yaml:"browser,omitempty"`

	// Output configures where results are written.
	Output OutputSection `yaml:"output,omitempty"`
}

// SiteSection holds site-level settings.
type SiteSection struct {
	// Prefix is the site root, e.g. "https://www.janestreet.com/puzzles".
	Prefix string `yaml:"prefix,omitempty"`

	// Pages is the number of archive listing pages.
	Pages int `yaml:"pages,omitempty"`

	// Timeout is the per-request timeout, e.g. "30s".
	Timeout time.Duration `yaml:"timeout,omitempty"`

	// UserAgent overrides the User-Agent header.
	UserAgent string `yaml:"userAgent,omitempty"`

	// Cookie is sent with listing requests.
	// Format: "name=value" or "name1=value1; name2=value2"
	Cookie string `yaml:"cookie,omitempty"`

	// Headers are extra HTTP headers sent with listing requests.
	Headers map[string]string `yaml:"headers,omitempty"`
}

// SelectorSection holds CSS selectors.
type SelectorSection struct {
	Name    string `yaml:"name,omitempty"`
	Solvers string `yaml:"solvers,omitempty"`
}

// BrowserSection holds browser settings.
type BrowserSection struct {
	// Headless is a pointer so that an explicit "false" can be told apart
	// from an absent key.
	Headless *bool `yaml:"headless,omitempty"`

	// ExecutablePath points at a Chromium binary.
	ExecutablePath string `yaml:"executablePath,omitempty"`

	// SettleTimeout bounds the wait for the solvers element, e.g. "5s".
	SettleTimeout time.Duration `yaml:"settleTimeout,omitempty"`
}

// OutputSection holds output settings.
type OutputSection struct {
	Dir         string `yaml:"dir,omitempty"`
	CountsFile  string `yaml:"countsFile,omitempty"`
	PuzzlesFile string `yaml:"puzzlesFile,omitempty"`

	// SaveToDB is a pointer for the same reason as BrowserSection.Headless.
	SaveToDB *bool `yaml:"saveToDB,omitempty"`
}

// Apply merges the values set in f into c.
func (f *File) Apply(c *Config) {
	if f == nil {
		return
	}

	if f.Site.Prefix != "" {
		c.Prefix = f.Site.Prefix
	}
	if f.Site.Pages != 0 {
		c.Pages = f.Site.Pages
	}
	if f.Site.Timeout != 0 {
		c.Timeout = f.Site.Timeout
	}
	if f.Site.UserAgent != "" {
		c.UserAgent = f.Site.UserAgent
	}
	if f.Site.Cookie != "" {
		c.Cookie = f.Site.Cookie
	}
	if len(f.Site.Headers) > 0 {
		if c.Headers == nil {
			c.Headers = make(map[string]string)
		}
		for k, v := range f.Site.Headers {
			c.Headers[k] = v
		}
	}

	if f.Selectors.Name != "" {
		c.NameSelector = f.Selectors.Name
	}
	if f.Selectors.Solvers != "" {
		c.SolverSelector = f.Selectors.Solvers
	}

	if f.Browser.Headless != nil {
		c.Headless = *f.Browser.Headless
	}
	if f.Browser.ExecutablePath != "" {
		c.BrowserPath = f.Browser.ExecutablePath
	}
	if f.Browser.SettleTimeout != 0 {
		c.SettleTimeout = f.Browser.SettleTimeout
	}

	if f.Output.Dir != "" {
		c.OutputDir = f.Output.Dir
	}
	if f.Output.CountsFile != "" {
		c.CountsFile = f.Output.CountsFile
	}
	if f.Output.PuzzlesFile != "" {
		c.PuzzlesFile = f.Output.PuzzlesFile
	}
	if f.Output.SaveToDB != nil {
		c.SaveToDB = *f.Output.SaveToDB
	}
}
