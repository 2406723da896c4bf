package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"quote-api/internal/app"
	"quote-api/internal/cache"
	"quote-api/internal/events"
	"quote-api/internal/export"
	"quote-api/internal/httputil"
	"quote-api/internal/inference"
	"quote-api/internal/store"
	"quote-api/internal/themes"
)

type quoteResponse struct {
	ID    int64  `json:"id"`
	Quote string `json:"quote"`
	Date  string `json:"date"`
	Theme string `json:"theme"`
}

func main() {
	deps, err := app.Build()
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}
	r := httputil.NewRouter(deps.Log)

	r.Get("/quote", quoteHandler(deps))
	r.Get("/quotes", listHandler(deps))
	r.Delete("/quotes/{id}", deleteHandler(deps))
	r.Get("/quotes/export/csv", exportCSVHandler(deps))
	r.Get("/quotes/export/json", exportJSONHandler(deps))
	r.Get("/health", healthHandler(deps))
	r.Get("/", indexHandler(deps))

	addr := fmt.Sprintf(":%d", deps.Config.Port)
	deps.Log.Info("quote api listening", "addr", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		deps.Log.Error("server failed", "err", err)
	}
}

// quoteHandler generates a quote for a random theme, persists it, and
// returns the stored row. Nothing is persisted when inference fails.
func quoteHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		theme := themes.Random()

		gen, err := deps.Inference.Generate(ctx, theme)
		switch {
		case errors.Is(err, inference.ErrUnavailable):
			httputil.Fail(deps.Log, w, "could not reach inference service", "upstream_unavailable", err, http.StatusServiceUnavailable)
			return
		case errors.Is(err, inference.ErrEmptyGeneration):
			httputil.Fail(deps.Log, w, "inference produced no usable quote", "generation_empty", err, http.StatusBadGateway)
			return
		case err != nil:
			httputil.Fail(deps.Log, w, "quote generation failed", "upstream_unavailable", err, http.StatusBadGateway)
			return
		}

		id, err := deps.Store.InsertQuote(ctx, gen.Text, gen.GeneratedAt, gen.Theme)
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to store quote", "storage_unavailable", err, http.StatusServiceUnavailable)
			return
		}

		invalidateAndPublish(deps, ctx, events.NewEvent(events.TypeCreated, id, gen.Theme))

		httputil.WriteJSON(w, http.StatusOK, quoteResponse{
			ID:    id,
			Quote: gen.Text,
			Date:  gen.GeneratedAt.Format(time.RFC3339),
			Theme: gen.Theme,
		})
	}
}

func listHandler(deps app.Deps) http.HandlerFunc {
	limitTag := fmt.Sprintf("min=1,max=%d", deps.Config.MaxListLimit)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		limit := deps.Config.DefaultListLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				httputil.ValidationError(deps.Log, w, err)
				return
			}
			limit = parsed
		}
		if err := httputil.Validator.Var(limit, limitTag); err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return
		}

		key := cache.ListKey(limit)
		if cached, err := deps.Cache.GetQuotes(ctx, key); err == nil && cached != nil {
			httputil.WriteJSON(w, http.StatusOK, toResponses(cached))
			return
		}

		quotes, err := deps.Store.ListQuotes(ctx, limit)
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to retrieve quotes", "storage_unavailable", err, http.StatusServiceUnavailable)
			return
		}

		if err := deps.Cache.SetQuotes(ctx, key, quotes, deps.Config.CacheTTL); err != nil {
			deps.Log.Warn("failed to cache quote listing", "err", err)
		}
		httputil.WriteJSON(w, http.StatusOK, toResponses(quotes))
	}
}

func deleteHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return
		}

		if err := deps.Store.DeleteQuote(ctx, id); err != nil {
			if errors.Is(err, store.ErrQuoteNotFound) {
				httputil.Fail(deps.Log, w, fmt.Sprintf("quote %d not found", id), "not_found", err, http.StatusNotFound)
				return
			}
			httputil.Fail(deps.Log, w, "failed to delete quote", "storage_unavailable", err, http.StatusServiceUnavailable)
			return
		}

		invalidateAndPublish(deps, ctx, events.NewEvent(events.TypeDeleted, id, ""))

		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"message": fmt.Sprintf("quote %d deleted successfully", id),
		})
	}
}

func exportCSVHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quotes, ok := allQuotes(deps, w, r)
		if !ok {
			return
		}
		if err := export.CSV(w, quotes); err != nil {
			deps.Log.Error("csv export failed mid-stream", "err", err)
		}
	}
}

func exportJSONHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quotes, ok := allQuotes(deps, w, r)
		if !ok {
			return
		}
		if err := export.JSON(w, quotes); err != nil {
			deps.Log.Error("json export failed mid-stream", "err", err)
		}
	}
}

// allQuotes loads the full table for export, via the cache when warm.
// On failure it writes the error response and returns ok=false.
func allQuotes(deps app.Deps, w http.ResponseWriter, r *http.Request) ([]store.Quote, bool) {
	ctx := r.Context()

	if cached, err := deps.Cache.GetQuotes(ctx, cache.ExportKey); err == nil && cached != nil {
		return cached, true
	}

	quotes, err := deps.Store.AllQuotes(ctx)
	if err != nil {
		httputil.Fail(deps.Log, w, "failed to export quotes", "storage_unavailable", err, http.StatusServiceUnavailable)
		return nil, false
	}

	if err := deps.Cache.SetQuotes(ctx, cache.ExportKey, quotes, deps.Config.CacheTTL); err != nil {
		deps.Log.Warn("failed to cache export listing", "err", err)
	}
	return quotes, true
}

// healthHandler reports liveness plus dependency reachability. The
// process answers 200 whenever it can serve; dependency state is
// informational.
func healthHandler(deps app.Deps) http.HandlerFunc {
	const probeTimeout = 2 * time.Second

	return func(w http.ResponseWriter, r *http.Request) {
		dbStatus := "healthy"
		inferenceStatus := "healthy"

		g, gctx := errgroup.WithContext(r.Context())
		g.Go(func() error {
			ctx, cancel := context.WithTimeout(gctx, probeTimeout)
			defer cancel()
			if err := deps.Store.Ping(ctx); err != nil {
				dbStatus = "unhealthy"
			}
			return nil
		})
		g.Go(func() error {
			ctx, cancel := context.WithTimeout(gctx, probeTimeout)
			defer cancel()
			if err := deps.Inference.Ping(ctx); err != nil {
				inferenceStatus = "unhealthy"
			}
			return nil
		})
		_ = g.Wait()

		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"status":    "healthy",
			"database":  dbStatus,
			"inference": inferenceStatus,
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}

func indexHandler(deps app.Deps) http.HandlerFunc {
	page := filepath.Join(deps.Config.StaticDir, "index.html")

	return func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, page)
	}
}

// invalidateAndPublish clears cached listings and emits a change event.
// Neither failure is surfaced to the API caller.
func invalidateAndPublish(deps app.Deps, ctx context.Context, ev events.Event) {
	if err := deps.Cache.Invalidate(ctx); err != nil {
		deps.Log.Warn("failed to invalidate cache", "err", err)
	}
	if err := events.PublishWithRetry(ctx, deps.Events, ev, 3, 100*time.Millisecond); err != nil {
		deps.Log.Warn("failed to publish quote event", "type", ev.Type, "quote_id", ev.QuoteID, "err", err)
	}
}

func toResponses(quotes []store.Quote) []quoteResponse {
	out := make([]quoteResponse, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, quoteResponse{
			ID:    q.ID,
			Quote: q.Text,
			Date:  q.GeneratedAt.Format(time.RFC3339),
			Theme: q.Theme,
		})
	}
	return out
}
