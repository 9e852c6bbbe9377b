package server

import (
	"github.com/nfrund/taskboard/internal/audit"
	"github.com/nfrund/taskboard/internal/dashboard"
	"github.com/nfrund/taskboard/internal/module"
)

// AppModules returns every application module in boot order.
func AppModules() []module.Module {
	return []module.Module{
		dashboard.New(),
		audit.New(),
	}
}
