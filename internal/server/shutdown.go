package server

import (
	"context"
	"errors"
	"fmt"
)

// Shutdown stops accepting requests, then stops modules and core services.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error
	if err := s.E.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http: %w", err))
	}
	for i := len(s.modules) - 1; i >= 0; i-- {
		if err := s.modules[i].Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("module %s: %w", s.modules[i].Name(), err))
		}
	}
	if err := s.closeAll(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
