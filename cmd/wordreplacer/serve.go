package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cognicore/wordreplacer/internal/htmltext"
	"github.com/cognicore/wordreplacer/pkg/wordreplacer"
	"github.com/cognicore/wordreplacer/pkg/wordreplacer/internalerr"
	"github.com/cognicore/wordreplacer/pkg/wordreplacer/store"
)

// maxBodyBytes bounds request bodies well above any accepted input.
const maxBodyBytes = 64 << 10

type rewriteRequest struct {
	Text string `json:"text"`
}

type rewriteResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Output string `json:"output"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (a *app) newServeCmd() *cobra.Command {
	var (
		addr    string
		origins []string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Expose the rewriter over HTTP",
		Long: `Endpoints:

  POST /api/rewrite          body: {"text":"..."} or an HTML document (Content-Type: text/html)
  GET  /api/history?limit=N  recent runs (kept in memory without --history)
  GET  /api/history/{id}     one run with per-word decisions`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			rep, hist, cleanup, err := a.buildReplacer(ctx, true)
			if err != nil {
				return err
			}
			defer cleanup()

			srv := &http.Server{
				Addr:              addr,
				Handler:           newHandler(rep, hist, origins, a.log()),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				a.log().Info("listening", zap.String("addr", addr))
				fmt.Fprintf(cmd.OutOrStdout(), "listening on %s\n", addr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringSliceVar(&origins, "allow-origin", []string{"*"}, "CORS allowed origins")
	return cmd
}

// newHandler builds the HTTP API. hist may be nil, in which case the history
// endpoints answer 404.
func newHandler(rep *wordreplacer.Replacer, hist store.Store, origins []string, log *zap.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/rewrite", handleRewrite(rep, log))
	mux.HandleFunc("GET /api/history", handleHistory(hist))
	mux.HandleFunc("GET /api/history/{id}", handleRun(hist))

	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(mux)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func handleRewrite(rep *wordreplacer.Replacer, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}

		var text string
		mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
		switch mediaType {
		case "text/html":
			text = htmltext.ExtractString(string(body))
		case "text/plain":
			text = string(body)
		default:
			var req rewriteRequest
			if err := json.Unmarshal(body, &req); err != nil {
				writeError(w, http.StatusBadRequest, "body must be JSON with a 'text' field")
				return
			}
			text = req.Text
		}

		out, err := rep.Rewrite(r.Context(), text)
		resp := rewriteResponse{ID: out.ID, Status: store.StatusOK, Output: out.Output}
		status := http.StatusOK
		switch {
		case err == nil:
		case errors.Is(err, internalerr.ErrInputTooLong):
			resp.Status, resp.Output, status = store.StatusTooLong, wordreplacer.MsgTooLong, http.StatusRequestEntityTooLarge
		case errors.Is(err, internalerr.ErrRateLimited):
			resp.Status, resp.Output, status = store.StatusRateLimited, wordreplacer.MsgRateLimited, http.StatusTooManyRequests
		default:
			log.Error("rewrite failed", zap.String("run", out.ID), zap.Error(err))
			resp.Status, resp.Output, status = store.StatusError, wordreplacer.MsgUnavailable, http.StatusServiceUnavailable
		}
		writeJSON(w, status, resp)
	}
}

func handleHistory(hist store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if hist == nil {
			writeError(w, http.StatusNotFound, "history disabled")
			return
		}
		limit := store.DefaultLimit
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				writeError(w, http.StatusBadRequest, "limit must be a positive integer")
				return
			}
			limit = n
		}

		runs, err := hist.RecentRuns(r.Context(), limit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if runs == nil {
			runs = []store.Run{}
		}
		writeJSON(w, http.StatusOK, runs)
	}
}

func handleRun(hist store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if hist == nil {
			writeError(w, http.StatusNotFound, "history disabled")
			return
		}
		run, err := hist.GetRun(r.Context(), r.PathValue("id"))
		if errors.Is(err, internalerr.ErrNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, run)
	}
}
