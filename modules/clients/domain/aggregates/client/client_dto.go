package client

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/praxishq/praxis/pkg/constants"
	"github.com/praxishq/praxis/pkg/serrors"
)

type RelationshipDTO struct {
	RelatedClientID string `json:"related_client_id" validate:"required,uuid"`
	Type            string `json:"type" validate:"required,max=64"`
}

type CreateDTO struct {
	FirstName     string            `json:"first_name" validate:"required,max=255"`
	LastName      string            `json:"last_name" validate:"max=255"`
	PreferredName string            `json:"preferred_name" validate:"max=255"`
	Email         string            `json:"email" validate:"omitempty,email"`
	Phone         string            `json:"phone" validate:"max=64"`
	DateOfBirth   string            `json:"date_of_birth" validate:"max=10"`
	Relationships []RelationshipDTO `json:"relationships" validate:"dive"`
}

type UpdateDTO struct {
	FirstName     string            `json:"first_name" validate:"required,max=255"`
	LastName      string            `json:"last_name" validate:"max=255"`
	PreferredName string            `json:"preferred_name" validate:"max=255"`
	Email         string            `json:"email" validate:"omitempty,email"`
	Phone         string            `json:"phone" validate:"max=64"`
	DateOfBirth   string            `json:"date_of_birth" validate:"max=10"`
	Relationships []RelationshipDTO `json:"relationships" validate:"dive"`
}

func (d *CreateDTO) Normalize() {
	d.FirstName = strings.TrimSpace(d.FirstName)
	d.LastName = strings.TrimSpace(d.LastName)
	d.PreferredName = strings.TrimSpace(d.PreferredName)
	d.Email = strings.TrimSpace(d.Email)
	d.Phone = strings.TrimSpace(d.Phone)
	d.DateOfBirth = strings.TrimSpace(d.DateOfBirth)
}

func (d *CreateDTO) Ok() (serrors.ValidationErrors, bool) {
	d.Normalize()
	errs := constants.Validate.Struct(d)
	if errs == nil {
		return serrors.ValidationErrors{}, true
	}
	return serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors)), false
}

func (d *UpdateDTO) Normalize() {
	d.FirstName = strings.TrimSpace(d.FirstName)
	d.LastName = strings.TrimSpace(d.LastName)
	d.PreferredName = strings.TrimSpace(d.PreferredName)
	d.Email = strings.TrimSpace(d.Email)
	d.Phone = strings.TrimSpace(d.Phone)
	d.DateOfBirth = strings.TrimSpace(d.DateOfBirth)
}

func (d *UpdateDTO) Ok() (serrors.ValidationErrors, bool) {
	d.Normalize()
	errs := constants.Validate.Struct(d)
	if errs == nil {
		return serrors.ValidationErrors{}, true
	}
	return serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors)), false
}

// Edges parses the DTO relationships, dropping self-references to ownerID.
// Self-relationships are forbidden at the edit surface, not by storage.
func Edges(dtos []RelationshipDTO, ownerID uuid.UUID) []Relationship {
	out := make([]Relationship, 0, len(dtos))
	for _, dto := range dtos {
		related, err := uuid.Parse(strings.TrimSpace(dto.RelatedClientID))
		if err != nil || related == ownerID {
			continue
		}
		out = append(out, Relationship{
			RelatedClientID: related,
			Type:            strings.TrimSpace(dto.Type),
		})
	}
	return out
}
