package services

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/praxishq/praxis/modules/clients/domain/aggregates/client"
	"github.com/praxishq/praxis/modules/clients/importing"
	"github.com/praxishq/praxis/modules/clients/infrastructure/spreadsheet"
	"github.com/praxishq/praxis/pkg/composables"
	"github.com/praxishq/praxis/pkg/eventbus"
	"github.com/praxishq/praxis/pkg/metrics"
)

// ImportService reconciles spreadsheet rows into the client store. The
// snapshot read and the bulk insert happen in one transaction: either the
// whole accepted batch becomes visible or none of it does.
type ImportService struct {
	repo      client.Repository
	publisher eventbus.EventBus
	log       *logrus.Logger
}

func NewImportService(repo client.Repository, publisher eventbus.EventBus, log *logrus.Logger) *ImportService {
	return &ImportService{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// Import parses the uploaded file and merges its rows into the store.
// An unparseable file is terminal: the returned report carries a single
// fatal diagnostic and zero rows are processed.
func (s *ImportService) Import(ctx context.Context, r io.Reader, filename string) (importing.Report, error) {
	rows, err := spreadsheet.ReadRows(r, filename)
	if err != nil {
		report := importing.Report{
			Diagnostics: []string{fmt.Sprintf("Unable to parse file '%s': %v", filename, err)},
		}
		return report, err
	}

	var report importing.Report
	err = composables.InTx(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.GetAll(txCtx)
		if err != nil {
			return err
		}

		result := importing.Reconcile(rows, toFields(existing))
		report = result.Report

		if len(result.Accepted) == 0 {
			return nil
		}

		entities := make([]client.Client, 0, len(result.Accepted))
		for _, fields := range result.Accepted {
			entity := client.New(fields.FirstName, fields.LastName).
				WithPreferredName(fields.PreferredName).
				WithContact(fields.Email, fields.Phone).
				WithDateOfBirth(fields.DateOfBirth)
			entities = append(entities, entity)
		}

		_, err = s.repo.CreateAll(txCtx, entities)
		return err
	})
	if err != nil {
		return importing.Report{}, err
	}

	metrics.ImportRowsAdded.Add(float64(report.Added))
	metrics.ImportRowsSkipped.Add(float64(report.Skipped))
	metrics.ImportDiagnostics.Add(float64(len(report.Diagnostics)))

	s.log.WithField("file", filename).Debug("client import committed")

	s.publisher.Publish(&client.ImportCompletedEvent{
		Added:       report.Added,
		Skipped:     report.Skipped,
		Diagnostics: report.Diagnostics,
	})

	return report, nil
}

func toFields(store []client.Client) []importing.Fields {
	out := make([]importing.Fields, 0, len(store))
	for _, c := range store {
		out = append(out, importing.Fields{
			FirstName:     c.FirstName(),
			LastName:      c.LastName(),
			PreferredName: c.PreferredName(),
			Email:         c.Email(),
			Phone:         c.Phone(),
			DateOfBirth:   c.DateOfBirth(),
		})
	}
	return out
}
