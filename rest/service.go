package rest

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/evergreen-ci/gimlet"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/mongodb/grip/recovery"
	"github.com/pkg/errors"
	"github.com/rs/cors"

	testexamples "github.com/rudikone/TestExamples"
	"github.com/rudikone/TestExamples/rest/data"
	"github.com/rudikone/TestExamples/units"
)

// Service serves the roster REST API.
type Service struct {
	Port           int
	Prefix         string
	AllowedOrigins []string
	Environment    testexamples.Environment
	// Beacon is optional; when set, its heartbeat count is reported by
	// the status route.
	Beacon *units.Beacon

	// internal settings
	sc          data.Connector
	app         *gimlet.APIApp
	routesAdded bool
	handler     http.Handler
	server      *http.Server
	done        chan struct{}
}

// Validate fills in defaults and builds the application. It must be called
// before Handler or Start; calling it again does not register the routes a
// second time.
func (s *Service) Validate() error {
	if s.Environment == nil {
		return errors.New("must specify an environment")
	}

	if s.sc == nil {
		s.sc = data.CreateNewDBConnector(s.Environment)
	}

	if s.app == nil {
		s.app = gimlet.NewApp()
	}

	if s.Port == 0 {
		s.Port = testexamples.DefaultServicePort
	}

	if err := s.app.SetPort(s.Port); err != nil {
		return errors.WithStack(err)
	}

	if s.Prefix != "" {
		s.app.SetPrefix(s.Prefix)
	}

	if !s.routesAdded {
		s.addRoutes()
		s.routesAdded = true
	}

	return nil
}

// Handler resolves the routes and returns the router wrapped with the CORS
// policy.
func (s *Service) Handler() (http.Handler, error) {
	if s.app == nil {
		return nil, errors.New("application is not valid")
	}
	if s.handler != nil {
		return s.handler, nil
	}

	if err := s.app.Resolve(); err != nil {
		return nil, errors.Wrap(err, "problem resolving routes")
	}

	router, err := s.app.Router()
	if err != nil {
		return nil, errors.Wrap(err, "problem getting router")
	}

	s.handler = s.corsPolicy().Handler(router)
	return s.handler, nil
}

func (s *Service) corsPolicy() *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: s.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
	})
}

// Start begins serving in the background. The server shuts down when the
// context is canceled; Wait blocks until it has.
func (s *Service) Start(ctx context.Context) error {
	handler, err := s.Handler()
	if err != nil {
		return errors.WithStack(err)
	}

	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", s.Port))
	if err != nil {
		return errors.Wrapf(err, "problem listening on port %d", s.Port)
	}

	s.server = &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: time.Minute,
	}
	s.done = make(chan struct{})

	go func() {
		defer recovery.LogStackTraceAndContinue("rest service")
		defer close(s.done)

		err := s.server.Serve(listener)
		if err == http.ErrServerClosed {
			err = nil
		}
		grip.Error(message.WrapError(err, message.Fields{
			"message": "rest service stopped unexpectedly",
			"port":    s.Port,
		}))
	}()

	go func() {
		defer recovery.LogStackTraceAndContinue("rest service shutdown")
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		grip.Warning(message.WrapError(s.server.Shutdown(shutdownCtx), message.Fields{
			"message": "problem shutting down rest service",
			"port":    s.Port,
		}))
	}()

	grip.Notice(message.Fields{
		"message": "started rest service",
		"port":    s.Port,
		"prefix":  s.Prefix,
		"origins": s.AllowedOrigins,
	})

	return nil
}

// Wait blocks until a started service has stopped.
func (s *Service) Wait() {
	if s.done == nil {
		return
	}
	<-s.done
}

func (s *Service) addRoutes() {
	s.app.AddRoute("/status").Version(1).Get().RouteHandler(makeGetStatus(s.Environment, s.Beacon))

	s.app.AddRoute("/characters").Version(1).Get().RouteHandler(makeListCharacters(s.sc))
	s.app.AddRoute("/characters").Version(1).Post().RouteHandler(makeRecruitCharacter(s.sc))
	s.app.AddRoute("/characters/{id}").Version(1).Get().RouteHandler(makeGetCharacter(s.sc))
	s.app.AddRoute("/characters/{id}").Version(1).Delete().RouteHandler(makeDismissCharacter(s.sc))

	s.app.AddRoute("/census").Version(1).Get().RouteHandler(makeGetCensus(s.sc))
	s.app.AddRoute("/census").Version(1).Post().RouteHandler(makeScheduleCensus(s.sc))
}
