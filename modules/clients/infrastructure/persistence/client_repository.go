package persistence

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/praxishq/praxis/modules/clients/domain/aggregates/client"
	"github.com/praxishq/praxis/modules/clients/infrastructure/persistence/models"
	"github.com/praxishq/praxis/pkg/composables"
)

const (
	clientFindQuery = `
        SELECT
            c.id,
            c.first_name,
            c.last_name,
            c.preferred_name,
            c.email,
            c.phone,
            c.date_of_birth,
            c.sessions,
            c.created_at,
            c.updated_at
        FROM clients c`

	clientCountQuery = `SELECT COUNT(c.id) FROM clients c`

	clientInsertQuery = `
        INSERT INTO clients (
            id, first_name, last_name, preferred_name, email, phone, date_of_birth, sessions
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING created_at, updated_at`

	clientUpdateQuery = `
        UPDATE clients SET
            first_name = $2,
            last_name = $3,
            preferred_name = $4,
            email = $5,
            phone = $6,
            date_of_birth = $7,
            sessions = $8,
            updated_at = NOW()
        WHERE id = $1`

	relationshipsQuery = `
        SELECT client_id, related_client_id, rel_type, position
        FROM client_relationships
        WHERE client_id = ANY($1)
        ORDER BY client_id, position`

	relationshipDeleteQuery = `DELETE FROM client_relationships WHERE client_id = $1`
	relationshipInsertQuery = `
        INSERT INTO client_relationships (client_id, related_client_id, rel_type, position)
        VALUES ($1, $2, $3, $4)`

	documentsQuery = `
        SELECT client_id, document_id, position
        FROM client_documents
        WHERE client_id = ANY($1)
        ORDER BY client_id, position`

	documentDeleteQuery = `DELETE FROM client_documents WHERE client_id = $1`
	documentInsertQuery = `
        INSERT INTO client_documents (client_id, document_id, position)
        VALUES ($1, $2, $3)`
)

type PgClientRepository struct{}

func NewClientRepository() client.Repository {
	return &PgClientRepository{}
}

func (g *PgClientRepository) GetPaginated(ctx context.Context, params *client.FindParams) ([]client.Client, int64, error) {
	if params == nil {
		params = &client.FindParams{}
	}

	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, 0, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	where := ""
	args := []any{}
	if params.Q != "" {
		where = ` WHERE c.first_name ILIKE $1 OR c.last_name ILIKE $1 OR c.preferred_name ILIKE $1 OR c.email ILIKE $1`
		args = append(args, "%"+params.Q+"%")
	}

	query := clientFindQuery + where +
		fmt.Sprintf(" ORDER BY c.last_name, c.first_name OFFSET $%d LIMIT $%d", len(args)+1, len(args)+2)
	args = append(args, offset, limit)

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to query clients")
	}
	clientRows, err := scanClients(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	countArgs := []any{}
	countWhere := ""
	if params.Q != "" {
		countWhere = ` WHERE c.first_name ILIKE $1 OR c.last_name ILIKE $1 OR c.preferred_name ILIKE $1 OR c.email ILIKE $1`
		countArgs = append(countArgs, "%"+params.Q+"%")
	}
	if err := tx.QueryRow(ctx, clientCountQuery+countWhere, countArgs...).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, "failed to count clients")
	}

	out, err := g.hydrateAll(ctx, clientRows)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (g *PgClientRepository) GetAll(ctx context.Context) ([]client.Client, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, clientFindQuery+` ORDER BY c.created_at, c.id`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query clients")
	}
	clientRows, err := scanClients(rows)
	if err != nil {
		return nil, err
	}

	return g.hydrateAll(ctx, clientRows)
}

func (g *PgClientRepository) GetByID(ctx context.Context, id uuid.UUID) (client.Client, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return client.Client{}, err
	}

	rows, err := tx.Query(ctx, clientFindQuery+` WHERE c.id = $1`, pgUUID(id))
	if err != nil {
		return client.Client{}, errors.Wrap(err, "failed to query client")
	}
	clientRows, err := scanClients(rows)
	if err != nil {
		return client.Client{}, err
	}
	if len(clientRows) == 0 {
		return client.Client{}, client.ErrNotFound
	}

	out, err := g.hydrateAll(ctx, clientRows[:1])
	if err != nil {
		return client.Client{}, err
	}
	return out[0], nil
}

func (g *PgClientRepository) Count(ctx context.Context) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}

	var total int64
	if err := tx.QueryRow(ctx, clientCountQuery).Scan(&total); err != nil {
		return 0, errors.Wrap(err, "failed to count clients")
	}
	return total, nil
}

func (g *PgClientRepository) Create(ctx context.Context, c client.Client) (client.Client, error) {
	created, err := g.CreateAll(ctx, []client.Client{c})
	if err != nil {
		return client.Client{}, err
	}
	return created[0], nil
}

func (g *PgClientRepository) CreateAll(ctx context.Context, cs []client.Client) ([]client.Client, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]client.Client, 0, len(cs))
	for _, c := range cs {
		model := toModelClient(c)
		row := tx.QueryRow(ctx, clientInsertQuery,
			model.ID,
			model.FirstName,
			model.LastName,
			model.PreferredName,
			model.Email,
			model.Phone,
			model.DateOfBirth,
			model.Sessions,
		)
		if err := row.Scan(&model.CreatedAt, &model.UpdatedAt); err != nil {
			return nil, errors.Wrapf(err, "failed to create client %s", c.FullName())
		}
		if err := g.replaceEdges(ctx, c); err != nil {
			return nil, err
		}
		out = append(out, toDomainClient(model, relationshipModels(c), documentModels(c)))
	}
	return out, nil
}

func (g *PgClientRepository) Update(ctx context.Context, c client.Client) (client.Client, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return client.Client{}, err
	}

	model := toModelClient(c)
	tag, err := tx.Exec(ctx, clientUpdateQuery,
		model.ID,
		model.FirstName,
		model.LastName,
		model.PreferredName,
		model.Email,
		model.Phone,
		model.DateOfBirth,
		model.Sessions,
	)
	if err != nil {
		return client.Client{}, errors.Wrapf(err, "failed to update client %s", c.ID())
	}
	if tag.RowsAffected() == 0 {
		return client.Client{}, client.ErrNotFound
	}
	if err := g.replaceEdges(ctx, c); err != nil {
		return client.Client{}, err
	}
	return g.GetByID(ctx, c.ID())
}

func (g *PgClientRepository) replaceEdges(ctx context.Context, c client.Client) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, relationshipDeleteQuery, pgUUID(c.ID())); err != nil {
		return errors.Wrap(err, "failed to clear relationships")
	}
	for i, rel := range c.Relationships() {
		if _, err := tx.Exec(ctx, relationshipInsertQuery,
			pgUUID(c.ID()), pgUUID(rel.RelatedClientID), rel.Type, int32(i),
		); err != nil {
			return errors.Wrap(err, "failed to insert relationship")
		}
	}

	if _, err := tx.Exec(ctx, documentDeleteQuery, pgUUID(c.ID())); err != nil {
		return errors.Wrap(err, "failed to clear documents")
	}
	for i, doc := range c.Documents() {
		if _, err := tx.Exec(ctx, documentInsertQuery,
			pgUUID(c.ID()), pgUUID(doc), int32(i),
		); err != nil {
			return errors.Wrap(err, "failed to insert document")
		}
	}
	return nil
}

func (g *PgClientRepository) hydrateAll(ctx context.Context, clientRows []models.Client) ([]client.Client, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]pgtype.UUID, 0, len(clientRows))
	for _, row := range clientRows {
		ids = append(ids, row.ID)
	}

	relsByClient := make(map[uuid.UUID][]models.ClientRelationship)
	if len(ids) > 0 {
		rows, err := tx.Query(ctx, relationshipsQuery, ids)
		if err != nil {
			return nil, errors.Wrap(err, "failed to query relationships")
		}
		defer rows.Close()
		for rows.Next() {
			var rel models.ClientRelationship
			if err := rows.Scan(&rel.ClientID, &rel.RelatedClientID, &rel.RelType, &rel.Position); err != nil {
				return nil, errors.Wrap(err, "failed to scan relationship")
			}
			owner := uuidFromPg(rel.ClientID)
			relsByClient[owner] = append(relsByClient[owner], rel)
		}
		if err := rows.Err(); err != nil {
			return nil, errors.Wrap(err, "failed to read relationships")
		}
	}

	docsByClient := make(map[uuid.UUID][]models.ClientDocument)
	if len(ids) > 0 {
		rows, err := tx.Query(ctx, documentsQuery, ids)
		if err != nil {
			return nil, errors.Wrap(err, "failed to query documents")
		}
		defer rows.Close()
		for rows.Next() {
			var doc models.ClientDocument
			if err := rows.Scan(&doc.ClientID, &doc.DocumentID, &doc.Position); err != nil {
				return nil, errors.Wrap(err, "failed to scan document")
			}
			owner := uuidFromPg(doc.ClientID)
			docsByClient[owner] = append(docsByClient[owner], doc)
		}
		if err := rows.Err(); err != nil {
			return nil, errors.Wrap(err, "failed to read documents")
		}
	}

	out := make([]client.Client, 0, len(clientRows))
	for _, row := range clientRows {
		id := uuidFromPg(row.ID)
		out = append(out, toDomainClient(row, relsByClient[id], docsByClient[id]))
	}
	return out, nil
}

func scanClients(rows pgx.Rows) ([]models.Client, error) {
	defer rows.Close()

	var out []models.Client
	for rows.Next() {
		var row models.Client
		if err := rows.Scan(
			&row.ID,
			&row.FirstName,
			&row.LastName,
			&row.PreferredName,
			&row.Email,
			&row.Phone,
			&row.DateOfBirth,
			&row.Sessions,
			&row.CreatedAt,
			&row.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan client")
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil && !stderrors.Is(err, pgx.ErrNoRows) {
		return nil, errors.Wrap(err, "failed to read clients")
	}
	return out, nil
}

func relationshipModels(c client.Client) []models.ClientRelationship {
	rels := c.Relationships()
	out := make([]models.ClientRelationship, 0, len(rels))
	for i, rel := range rels {
		out = append(out, models.ClientRelationship{
			ClientID:        pgUUID(c.ID()),
			RelatedClientID: pgUUID(rel.RelatedClientID),
			RelType:         rel.Type,
			Position:        int32(i),
		})
	}
	return out
}

func documentModels(c client.Client) []models.ClientDocument {
	docs := c.Documents()
	out := make([]models.ClientDocument, 0, len(docs))
	for i, doc := range docs {
		out = append(out, models.ClientDocument{
			ClientID:   pgUUID(c.ID()),
			DocumentID: pgUUID(doc),
			Position:   int32(i),
		})
	}
	return out
}
