package clients

import (
	"embed"

	"github.com/sirupsen/logrus"

	"github.com/praxishq/praxis/modules/clients/domain/aggregates/client"
	"github.com/praxishq/praxis/modules/clients/infrastructure/persistence"
	"github.com/praxishq/praxis/modules/clients/presentation/controllers"
	"github.com/praxishq/praxis/modules/clients/services"
	"github.com/praxishq/praxis/pkg/application"
)

//go:embed infrastructure/persistence/schema/clients-schema.sql
var migrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Name() string {
	return "clients"
}

func (m *Module) Register(app application.Application) error {
	repo := persistence.NewClientRepository()
	reciprocalService := services.NewReciprocalService(repo)
	clientService := services.NewClientService(repo, app.EventPublisher(), reciprocalService)
	importService := services.NewImportService(repo, app.EventPublisher(), app.Logger())

	app.RegisterServices(
		reciprocalService,
		clientService,
		importService,
	)
	app.RegisterControllers(
		controllers.NewClientsAPIController(app),
	)
	app.Migrations().RegisterSchema(&migrationFiles)

	log := app.Logger()
	app.EventPublisher().Subscribe(func(event *client.ImportCompletedEvent) {
		log.WithFields(logrus.Fields{
			"added":       event.Added,
			"skipped":     event.Skipped,
			"diagnostics": len(event.Diagnostics),
		}).Info("client import finished")
	})
	return nil
}
