package models

import "github.com/jackc/pgx/v5/pgtype"

type Client struct {
	ID            pgtype.UUID
	FirstName     string
	LastName      string
	PreferredName string
	Email         string
	Phone         string
	DateOfBirth   string
	Sessions      int32
	CreatedAt     pgtype.Timestamptz
	UpdatedAt     pgtype.Timestamptz
}

type ClientRelationship struct {
	ClientID        pgtype.UUID
	RelatedClientID pgtype.UUID
	RelType         string
	Position        int32
}

type ClientDocument struct {
	ClientID   pgtype.UUID
	DocumentID pgtype.UUID
	Position   int32
}
