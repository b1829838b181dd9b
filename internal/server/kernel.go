package server

import (
	"github.com/nfrund/joinform/internal/module"
	"github.com/nfrund/joinform/internal/modules/announcer"
	"github.com/nfrund/joinform/internal/modules/join"
)

// AppModules returns the application modules in boot order. watch enables
// reloading the site settings file.
func AppModules(watch bool) []module.Module {
	return []module.Module{
		announcer.New(),
		join.New(watch),
	}
}
