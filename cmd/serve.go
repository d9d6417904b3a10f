package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/route-cli/internal/geo"
	"github.com/sells-group/route-cli/internal/planner"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an HTTP server answering route comparison requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env := initEnv(ctx)
		defer env.Close()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newServeMux(env.planner),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx) //nolint:errcheck
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// routeRequest is the POST /route body.
type routeRequest struct {
	BBox struct {
		South float64 `json:"south"`
		West  float64 `json:"west"`
		North float64 `json:"north"`
		East  float64 `json:"east"`
	} `json:"bbox"`
	From struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"from"`
	To struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"to"`
}

func newServeMux(p *planner.Planner) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"}) //nolint:errcheck
	})

	mux.HandleFunc("POST /route", func(w http.ResponseWriter, r *http.Request) {
		var req routeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}

		box := geo.BoundingBox{
			South: req.BBox.South, West: req.BBox.West,
			North: req.BBox.North, East: req.BBox.East,
		}
		if err := box.Validate(); err != nil {
			httpError(w, http.StatusBadRequest, err)
			return
		}

		elements, err := p.FetchElements(r.Context(), box)
		if err != nil {
			httpError(w, http.StatusBadGateway, err)
			return
		}
		n, err := p.BuildNetwork(elements)
		if err != nil {
			httpError(w, http.StatusUnprocessableEntity, err)
			return
		}

		startNode, err := p.NearestNode(n, geo.Coordinate{Lat: req.From.Lat, Lon: req.From.Lon})
		if err != nil {
			httpError(w, http.StatusUnprocessableEntity, err)
			return
		}
		targetNode, err := p.NearestNode(n, geo.Coordinate{Lat: req.To.Lat, Lon: req.To.Lon})
		if err != nil {
			httpError(w, http.StatusUnprocessableEntity, err)
			return
		}

		results := p.Compare(n, startNode, targetNode)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(routeResponse(n, startNode, targetNode, results)) //nolint:errcheck
	})

	return mux
}

func httpError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()}) //nolint:errcheck
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
