// launching the server, image store, templates and event producer
package appServer

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ds124wfegd/jpegify/config"
	"github.com/ds124wfegd/jpegify/internal/database"
	"github.com/ds124wfegd/jpegify/internal/pkg/idgen"
	"github.com/ds124wfegd/jpegify/internal/pkg/kafka"
	"github.com/ds124wfegd/jpegify/internal/pkg/processor"
	"github.com/ds124wfegd/jpegify/internal/pkg/templates"
	"github.com/ds124wfegd/jpegify/internal/service"
	"github.com/ds124wfegd/jpegify/internal/transport"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Server struct {
	httpServer *http.Server
	errorLog   *io.PipeWriter
}

func NewHTTPServer(cfg *config.Config, handler http.Handler) *Server {
	errorLog := logrus.StandardLogger().WriterLevel(logrus.ErrorLevel)
	return &Server{
		errorLog: errorLog,
		httpServer: &http.Server{
			Addr:              cfg.Server.Addr(),
			Handler:           handler,
			MaxHeaderBytes:    1 << 20,
			ReadTimeout:       cfg.Server.ReadTimeout,
			WriteTimeout:      cfg.Server.Timeout,
			IdleTimeout:       cfg.Server.IdleTimeout,
			ReadHeaderTimeout: 3 * time.Second,
			TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12}, // ban on outdate TLS certificate
			ErrorLog:          log.New(errorLog, "", 0),
		},
	}
}

func (s *Server) Run() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	defer s.errorLog.Close()
	return s.httpServer.Shutdown(ctx)
}

// NewHandler wires the image store, distortion pipeline, templates and event
// producer into an HTTP handler. The returned producer must be closed by the caller.
func NewHandler(cfg *config.Config) (http.Handler, kafka.Producer, error) {
	registry, err := templates.Load(cfg.App.TemplatesDir)
	if err != nil {
		return nil, nil, err
	}

	imgRepo := database.NewImageRepository()
	producer := kafka.NewProducer(cfg.Kafka)
	imgProcessor := processor.NewImageProcessor(processor.WithMaxPixels(cfg.App.MaxPixels))
	imgService := service.NewImageService(imgRepo, producer, imgProcessor, idgen.NewGenerator(), cfg.App.ImagesPath)

	imgHandler := transport.NewImageHandler(imgService, cfg.App.MaxUploadBytes)
	pageHandler := transport.NewPageHandler(registry)

	return transport.InitRoutes(imgHandler, pageHandler, cfg.App), producer, nil
}

func NewServer(cfg *config.Config) error {

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	handler, producer, err := NewHandler(cfg)
	if err != nil {
		return fmt.Errorf("init handler: %w", err)
	}
	defer func() {
		if err := producer.Close(); err != nil {
			logrus.Errorf("error occured on closing producer: %s", err.Error())
		}
	}()

	srv := NewHTTPServer(cfg, handler)
	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	logrus.WithField("addr", cfg.Server.Addr()).Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(quit)

	select {
	case err := <-serveErr:
		return fmt.Errorf("error occured while running http server: %w", err)
	case <-quit:
	}

	logrus.Print("App Shutting Down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("error occured on server shutting down: %w", err)
	}
	return nil
}
