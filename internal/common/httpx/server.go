package httpx

import (
	"context"
	"net/http"
	"time"
)

type Server struct {
	*http.Server
	grace time.Duration
}

func New(addr string, h http.Handler, grace time.Duration) *Server {
	return &Server{Server: &http.Server{Addr: addr, Handler: h}, grace: grace}
}

// Run serves until ctx is canceled, then shuts down gracefully within the
// configured grace period.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() { errCh <- s.ListenAndServe() }()
	select {
	case <-ctx.Done():
		ctx2, cancel := context.WithTimeout(context.Background(), s.grace)
		defer cancel()
		_ = s.Shutdown(ctx2)
		return nil
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
