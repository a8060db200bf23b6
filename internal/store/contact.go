package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/carevault/apiserver/types"
)

// ContactRepository handles persistence for help and support contacts.
type ContactRepository struct {
	db *sql.DB
}

func NewContactRepository(db *sql.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(ctx context.Context, contact types.HelpSupportContact) (types.HelpSupportContact, error) {
	contact.CreatedAt = time.Now()

	const query = `
		INSERT INTO help_support_contacts (name, role, phone, email, website, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		contact.Name,
		contact.Role,
		contact.Phone,
		contact.Email,
		contact.Website,
		contact.CreatedBy,
		contact.CreatedAt,
	).Scan(&contact.ID); err != nil {
		return types.HelpSupportContact{}, err
	}
	return contact, nil
}

func (r *ContactRepository) List(ctx context.Context) ([]types.HelpSupportContact, error) {
	const query = `
		SELECT id, name, role, phone, email, website, created_by, created_at
		FROM help_support_contacts
		ORDER BY name, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := make([]types.HelpSupportContact, 0)
	for rows.Next() {
		var contact types.HelpSupportContact
		if err := rows.Scan(
			&contact.ID,
			&contact.Name,
			&contact.Role,
			&contact.Phone,
			&contact.Email,
			&contact.Website,
			&contact.CreatedBy,
			&contact.CreatedAt,
		); err != nil {
			return nil, err
		}
		contacts = append(contacts, contact)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return contacts, nil
}
