package modules

import (
	"github.com/praxishq/praxis/modules/clients"
	"github.com/praxishq/praxis/pkg/application"
)

// BuiltInModules is the default set loaded by every binary.
var BuiltInModules = []application.Module{
	clients.NewModule(),
}

func Load(app application.Application, externalModules ...application.Module) error {
	for _, module := range append(BuiltInModules, externalModules...) {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
