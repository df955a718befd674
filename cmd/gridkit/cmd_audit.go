package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"gridkit/internal/browser"
	"gridkit/internal/overlay"
	"gridkit/internal/validator"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// =============================================================================
// AUDIT COMMAND - live pages through Chrome
// =============================================================================

var (
	auditOverlay     bool
	auditConcurrency int
	auditLimit       int
)

var auditCmd = &cobra.Command{
	Use:   "audit <url>...",
	Short: "Audit live pages in Chrome",
	Long: `Opens each URL in an incognito page, samples computed styles and rendered
boxes of components, interactive elements and text blocks, and validates them.
Pages are loaded concurrently.

With --overlay, Chrome runs headed and the grid overlay is painted onto every
audited page until Ctrl+C.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAudit,
}

func init() {
	auditCmd.Flags().BoolVar(&auditOverlay, "overlay", false, "Show the grid overlay on audited pages (headed Chrome)")
	auditCmd.Flags().IntVar(&auditConcurrency, "concurrency", 4, "Pages loaded in parallel")
	auditCmd.Flags().BoolVar(&fixFlag, "fix", false, "Print auto-fix instructions for grid violations")
	auditCmd.Flags().IntVar(&auditLimit, "limit", browser.DefaultSampleLimit, "Maximum elements sampled per page")
}

type pageResult struct {
	url        string
	sessionID  string
	components []validator.Component
	err        error
}

func runAudit(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	runID := uuid.NewString()
	log := logger.With(zap.String("run_id", runID))
	log.Info("Starting audit", zap.Strings("urls", args))

	bcfg := cfg.BrowserOptions()
	if auditOverlay {
		bcfg.Headless = false
	}
	sm := browser.NewSessionManager(bcfg)
	if err := sm.Start(ctx); err != nil {
		return fmt.Errorf("failed to start browser: %w", err)
	}
	defer func() {
		if err := sm.Shutdown(context.Background()); err != nil {
			log.Warn("browser shutdown", zap.Error(err))
		}
	}()

	results := auditPages(ctx, sm, args, log)

	out := cmd.OutOrStdout()
	e, err := newEngine(cfg, out, cfg.ShouldLogValidation(), log, !noColor)
	if err != nil {
		return err
	}

	multi := len(args) > 1
	var failures int
	for _, r := range results {
		if r.err != nil {
			failures++
			fmt.Fprintf(cmd.ErrOrStderr(), "gridkit: %s: %v\n", r.url, r.err)
			continue
		}
		label := ""
		if multi {
			label = r.url
		}
		if _, err := e.observe(label, r.components); err != nil {
			return err
		}
	}
	fmt.Fprintln(out)
	fmt.Fprint(out, e.summary())

	if auditOverlay {
		showOverlays(ctx, sm, results, e.grid.Unit, cmd)
	}

	if failures == len(results) {
		return fmt.Errorf("all %d page(s) failed to load", failures)
	}
	if e.failed() {
		return errFailed
	}
	return nil
}

// auditPages loads and samples pages concurrently. Per-page failures are
// collected, not propagated, so one bad URL does not cancel the others.
func auditPages(ctx context.Context, sm *browser.SessionManager, urls []string, log *zap.Logger) []pageResult {
	auditCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	observer := browser.NewObserver(auditLimit)
	results := make([]pageResult, len(urls))
	var mu sync.Mutex

	eg, egCtx := errgroup.WithContext(auditCtx)
	if auditConcurrency > 0 {
		eg.SetLimit(auditConcurrency)
	}
	for i, url := range urls {
		eg.Go(func() error {
			r := pageResult{url: url}
			session, err := sm.Open(egCtx, url)
			if err != nil {
				r.err = err
			} else {
				r.sessionID = session.ID
				page, _ := sm.Page(session.ID)
				r.components, r.err = observer.Observe(egCtx, page)
			}
			if r.err == nil {
				log.Debug("page sampled", zap.String("url", url), zap.Int("components", len(r.components)))
			}
			mu.Lock()
			results[i] = r
			mu.Unlock()
			return nil
		})
	}
	_ = eg.Wait()
	return results
}

func showOverlays(ctx context.Context, sm *browser.SessionManager, results []pageResult, unit float64, cmd *cobra.Command) {
	shown := 0
	for _, r := range results {
		if r.err != nil {
			continue
		}
		page, ok := sm.Page(r.sessionID)
		if !ok {
			continue
		}
		if err := overlay.New(browser.NewPageSurface(page, unit)).Show(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "gridkit: %s: %v\n", r.url, err)
			continue
		}
		shown++
	}
	if shown == 0 {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "gridkit: grid overlay shown on %d page(s), press Ctrl+C to exit\n", shown)
	<-ctx.Done()
}
