package browser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	pw "github.com/playwright-community/playwright-go"

	"github.com/nao1215/solvertally/internal/model"
)

// ErrClosed is returned by Render after Close.
var ErrClosed = errors.New("browser session is closed")

const (
	defaultSettleTimeout     = 5 * time.Second
	defaultNavigationTimeout = 30 * time.Second
)

// Options configures a browser Session.
type Options struct {
	// Headless hides the browser window.
	Headless bool

	// ExecutablePath points at a Chromium binary. Empty uses the
	// Playwright-managed browser.
	ExecutablePath string

	// UserAgent overrides the browser's User-Agent when non-empty.
	UserAgent string

	// SettleTimeout bounds the wait for WaitSelector after navigation.
	SettleTimeout time.Duration

	// NavigationTimeout bounds each page load.
	NavigationTimeout time.Duration

	// WaitSelector is the element Render waits for before reading the DOM.
	// Empty skips the wait.
	WaitSelector string

	// InstallDriver downloads the Playwright driver (and Chromium, unless
	// ExecutablePath is set) before launching.
	InstallDriver bool

	// Logger receives progress messages. Nil discards them.
	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.SettleTimeout <= 0 {
		o.SettleTimeout = defaultSettleTimeout
	}
	if o.NavigationTimeout <= 0 {
		o.NavigationTimeout = defaultNavigationTimeout
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// Session is a running browser with a single reusable page.
type Session struct {
	opts Options

	mu      sync.Mutex
	pw      *pw.Playwright
	browser pw.Browser
	page    pw.Page
	closed  bool
}

// Launch starts Playwright and Chromium and opens a page.
// Everything started before a failure is torn down before returning.
func Launch(ctx context.Context, opts Options) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	if opts.InstallDriver {
		opts.Logger.Info("installing browser driver")
		runOpts := &pw.RunOptions{}
		if opts.ExecutablePath != "" {
			runOpts.SkipInstallBrowsers = true
		} else {
			runOpts.Browsers = []string{"chromium"}
		}
		if err := pw.Install(runOpts); err != nil {
			return nil, fmt.Errorf("failed to install browser driver: %w", err)
		}
	}

	s := &Session{opts: opts}

	instance, err := pw.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}
	s.pw = instance

	launchOpts := pw.BrowserTypeLaunchOptions{
		Headless: pw.Bool(opts.Headless),
	}
	if opts.ExecutablePath != "" {
		launchOpts.ExecutablePath = pw.String(opts.ExecutablePath)
	}

	b, err := instance.Chromium.Launch(launchOpts)
	if err != nil {
		_ = s.Close() //nolint:errcheck
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}
	s.browser = b

	pageOpts := pw.BrowserNewPageOptions{}
	if opts.UserAgent != "" {
		pageOpts.UserAgent = pw.String(opts.UserAgent)
	}

	page, err := b.NewPage(pageOpts)
	if err != nil {
		_ = s.Close() //nolint:errcheck
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	page.SetDefaultNavigationTimeout(milliseconds(opts.NavigationTimeout))
	s.page = page

	opts.Logger.Debug("browser launched", "headless", opts.Headless)

	return s, nil
}

// Render loads pageURL, waits up to SettleTimeout for WaitSelector to be
// attached, and returns the resulting DOM.
//
// A settle timeout is not an error: the page is returned as it stands so
// the caller can classify it. Navigation failures are returned as errors.
func (s *Session) Render(ctx context.Context, pageURL string) (*model.RenderedPage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.page == nil {
		return nil, ErrClosed
	}

	resp, err := s.page.Goto(pageURL, pw.PageGotoOptions{
		WaitUntil: pw.WaitUntilStateDomcontentloaded,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to navigate to %s: %w", pageURL, err)
	}

	if s.opts.WaitSelector != "" {
		err := s.page.Locator(s.opts.WaitSelector).First().WaitFor(pw.LocatorWaitForOptions{
			State:   pw.WaitForSelectorStateAttached,
			Timeout: pw.Float(milliseconds(s.opts.SettleTimeout)),
		})
		switch {
		case err == nil:
		case errors.Is(err, pw.ErrTimeout):
			s.opts.Logger.Debug("selector did not appear", "url", pageURL, "selector", s.opts.WaitSelector)
		default:
			return nil, fmt.Errorf("failed waiting on %s: %w", pageURL, err)
		}
	}

	content, err := s.page.Content()
	if err != nil {
		return nil, fmt.Errorf("failed to read content of %s: %w", pageURL, err)
	}

	rendered := &model.RenderedPage{
		URL:      pageURL,
		FinalURL: s.page.URL(),
		HTML:     content,
	}
	if resp != nil {
		rendered.Status = resp.Status()
	}

	return rendered, nil
}

// Close shuts down the page, the browser and the driver. It is safe to call
// more than once and on a partially launched Session.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	if s.page != nil {
		if err := s.page.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close page: %w", err))
		}
	}
	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close browser: %w", err))
		}
	}
	if s.pw != nil {
		if err := s.pw.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop playwright: %w", err))
		}
	}
	s.page, s.browser, s.pw = nil, nil, nil

	return errors.Join(errs...)
}

func milliseconds(d time.Duration) float64 {
	return float64(d / time.Millisecond)
}
