package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/estimate-intake/internal/model"
	"github.com/sells-group/estimate-intake/internal/pipeline"
)

var servePort int

// submissionProcessor is the part of the pipeline the HTTP layer needs.
type submissionProcessor interface {
	Process(ctx context.Context, sub model.Submission) *pipeline.Result
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the estimate intake server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		p := initPipeline(ctx)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr: fmt.Sprintf(":%d", port),
			// Processing outlives the request; tie it to the server
			// lifetime instead of the request context.
			Handler: newRouter(ctx, p),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// newRouter builds the intake routes. background is the context handed to
// fire-and-forget submission processing.
func newRouter(background context.Context, proc submissionProcessor) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	r.Post("/api/submit", func(w http.ResponseWriter, req *http.Request) {
		var sub model.Submission
		if err := json.NewDecoder(req.Body).Decode(&sub); err != nil {
			http.Error(w, `{"error":"Missing required fields."}`, http.StatusBadRequest)
			return
		}

		// Intake gate: the only fatal, synchronous failure.
		if sub.PropertyAddress == "" || sub.PropertyType == "" {
			http.Error(w, `{"error":"Missing required fields."}`, http.StatusBadRequest)
			return
		}

		sub.ID = uuid.NewString()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "accepted"})

		// Fire-and-forget: the submitter never sees downstream outcomes.
		go func() {
			proc.Process(background, sub)
		}()
	})

	return r
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
