package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"DuctSizer/internal/auth"
	"DuctSizer/internal/calc/duct"
	"DuctSizer/internal/calc/premium/batch"
	"DuctSizer/internal/calc/premium/exporter"
	"DuctSizer/internal/calc/premium/importer"
	"DuctSizer/internal/calc/report"
	"DuctSizer/internal/config"
	"DuctSizer/internal/live"
	"DuctSizer/internal/view"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

var wg sync.WaitGroup

func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Hijack lets the websocket upgrade through the logging middleware.
func (s *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := s.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("hijack not supported")
	}
	s.status = http.StatusSwitchingProtocols
	return h.Hijack()
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.WithFields(log.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start),
		}).Debug("request")
	})
}

func HandleList(router *mux.Router, cfg *config.Config) error {
	page, err := view.NewHandler()
	if err != nil {
		return fmt.Errorf("load page template: %w", err)
	}
	router.Use(requestLogger)

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}).Methods("GET")
	router.Handle("/ws", live.NewHandler(cfg.AllowedOrigin)).Methods("GET")
	router.Handle("/", page).Methods("GET")

	limiter := auth.NewIPRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
	authEnv := &auth.Authenv{
		JWTkey:            cfg.TokenKey,
		AdminLogin:        cfg.AdminLogin,
		AdminPasswordHash: cfg.AdminPasswordHash,
		TTL:               cfg.TokenTTL,
		Secure:            cfg.TLS(),
	}

	api := router.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	ductH := &duct.Handler{}
	api.HandleFunc("/tools/duct/calc", ductH.Calc).Methods("POST")
	api.HandleFunc("/tools/duct/curve", ductH.Curve).Methods("GET")
	api.HandleFunc("/tools/duct/table", ductH.Table).Methods("GET")
	api.HandleFunc("/tools/duct/standards", ductH.Standards).Methods("GET")

	secureApi := api.PathPrefix("/tools").Subrouter()
	if cfg.AuthEnabled() {
		api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
		secureApi.Use(authEnv.AuthMiddleware)
	} else {
		log.Warn("TOKEN_KEY is not set, /api/tools is served without authentication")
	}

	reportH := &report.Handler{}
	batchH := &batch.Handler{}
	importerH := &importer.Handler{}
	exporterH := &exporter.Handler{}
	secureApi.HandleFunc("/report/pdf", reportH.Generate).Methods("POST")
	secureApi.HandleFunc("/batch/duct", batchH.Duct).Methods("POST")
	secureApi.HandleFunc("/import/duct", importerH.Duct).Methods("POST")
	secureApi.HandleFunc("/export/xlsx", exporterH.Xlsx).Methods("POST")
	return nil
}

func main() {
	if len(os.Args) > 1 && os.Args[1] == "hash-password" {
		hashPassword(os.Args[2:])
		return
	}

	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.SetupLogging(); err != nil {
		log.Fatal(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	router := mux.NewRouter()
	if err := HandleList(router, cfg); err != nil {
		log.Fatal(err)
	}

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           CORS(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.WithFields(log.Fields{"addr": cfg.Addr, "tls": cfg.TLS()}).Info("starting server")
		var err error
		if cfg.TLS() {
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("server error")
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received, closing active connections")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Fatal("server shutdown")
	}
	wg.Wait()
	log.Info("server stopped")
}

func hashPassword(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: ductsizer hash-password <password>")
		os.Exit(2)
	}
	hash, err := auth.HashPassword(args[0])
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(hash)
}
