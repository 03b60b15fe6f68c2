package persistence

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/praxishq/praxis/modules/clients/domain/aggregates/client"
	"github.com/praxishq/praxis/modules/clients/infrastructure/persistence/models"
)

func pgUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

func uuidFromPg(id pgtype.UUID) uuid.UUID {
	if !id.Valid {
		return uuid.Nil
	}
	return id.Bytes
}

func toDomainClient(
	row models.Client,
	relRows []models.ClientRelationship,
	docRows []models.ClientDocument,
) client.Client {
	relationships := make([]client.Relationship, 0, len(relRows))
	for _, rel := range relRows {
		relationships = append(relationships, client.Relationship{
			RelatedClientID: uuidFromPg(rel.RelatedClientID),
			Type:            rel.RelType,
		})
	}

	documents := make([]uuid.UUID, 0, len(docRows))
	for _, doc := range docRows {
		documents = append(documents, uuidFromPg(doc.DocumentID))
	}

	return client.Hydrate(
		uuidFromPg(row.ID),
		row.FirstName,
		row.LastName,
		row.PreferredName,
		row.Email,
		row.Phone,
		row.DateOfBirth,
		relationships,
		documents,
		int(row.Sessions),
		row.CreatedAt.Time,
		row.UpdatedAt.Time,
	)
}

func toModelClient(c client.Client) models.Client {
	return models.Client{
		ID:            pgUUID(c.ID()),
		FirstName:     c.FirstName(),
		LastName:      c.LastName(),
		PreferredName: c.PreferredName(),
		Email:         c.Email(),
		Phone:         c.Phone(),
		DateOfBirth:   c.DateOfBirth(),
		Sessions:      int32(c.Sessions()),
	}
}
