package main

import (
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
	"golang.org/x/time/rate"

	"github.com/sells-group/adscout/internal/config"
	"github.com/sells-group/adscout/internal/model"
	"github.com/sells-group/adscout/internal/targeting"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the insights and suggestion operations over JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(env, cfg.Server),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			_ = srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// newRouter builds the JSON facade over the two core operations. The facade
// carries no domain logic; it decodes requests, calls the engines, and
// encodes the results.
func newRouter(env *cmdEnv, serverCfg config.ServerConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	r.Use(requestIDMiddleware)
	if serverCfg.RateLimitRPS > 0 {
		r.Use(rateLimitMiddleware(rate.NewLimiter(rate.Limit(serverCfg.RateLimitRPS), serverCfg.RateBurst)))
	}

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/v1/insights", func(w http.ResponseWriter, req *http.Request) {
		var body insightsRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		if body.BusinessProfile == nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "business_profile is required"})
			return
		}

		insights, err := env.Engine.GetAudienceInsights(req.Context(), body.BusinessProfile, body.TargetArea, body.RadiusKM)
		if err != nil {
			if eris.Is(err, targeting.ErrInsightsUnavailable) {
				// Degraded result: callers decide whether this is an error.
				writeJSON(w, http.StatusUnprocessableEntity, insights)
				return
			}
			zap.L().Error("insights request failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
			return
		}
		writeJSON(w, http.StatusOK, insights)
	})

	r.Post("/v1/suggest", func(w http.ResponseWriter, req *http.Request) {
		var body suggestRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		if body.BusinessProfile == nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "business_profile is required"})
			return
		}

		insights := body.AudienceInsights
		if insights == nil {
			computed, err := env.Engine.GetAudienceInsights(req.Context(), body.BusinessProfile, body.TargetArea, body.RadiusKM)
			if err != nil && !eris.Is(err, targeting.ErrInsightsUnavailable) {
				zap.L().Error("suggest insights failed", zap.Error(err))
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
				return
			}
			insights = computed
		}

		matches := env.Suggester.SuggestChannels(req.Context(), *body.BusinessProfile, body.Campaign, insights, body.TopN)
		writeJSON(w, http.StatusOK, suggestResponse{Matches: matches, Insights: insights})
	})

	return r
}

type insightsRequest struct {
	BusinessProfile *model.BusinessProfile     `json:"business_profile"`
	TargetArea      model.TargetAreaDescriptor `json:"target_area"`
	RadiusKM        float64                    `json:"radius_km"`
}

type suggestRequest struct {
	BusinessProfile  *model.BusinessProfile     `json:"business_profile"`
	Campaign         model.CampaignSpec         `json:"campaign"`
	TargetArea       model.TargetAreaDescriptor `json:"target_area"`
	RadiusKM         float64                    `json:"radius_km"`
	TopN             int                        `json:"top_n"`
	AudienceInsights *model.AudienceInsights    `json:"audience_insights,omitempty"`
}

type suggestResponse struct {
	Matches  []model.ChannelMatch    `json:"matches"`
	Insights *model.AudienceInsights `json:"insights,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// requestIDMiddleware tags each request with a correlation ID.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		id := req.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, req)
	})
}

// rateLimitMiddleware rejects requests above the configured rate.
func rateLimitMiddleware(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if !limiter.Allow() {
				writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
				return
			}
			next.ServeHTTP(w, req)
		})
	}
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
