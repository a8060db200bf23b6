package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/carevault/apiserver/types"
)

// YoungPersonRepository handles persistence for resident case files.
type YoungPersonRepository struct {
	db *sql.DB
}

func NewYoungPersonRepository(db *sql.DB) *YoungPersonRepository {
	return &YoungPersonRepository{db: db}
}

const youngPersonColumns = `
	id, name, date_of_birth, date_admitted, gender, local_authority, room_number, phone_number,
	allergies, conditions, medications, notes,
	next_of_kin_name, next_of_kin_phone, next_of_kin_email,
	social_worker_name, social_worker_phone, social_worker_email,
	school_name, school_contact, school_phone, school_email, school_days,
	created_by, created_at, updated_at`

func scanYoungPerson(row rowScanner) (types.YoungPerson, error) {
	var p types.YoungPerson
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.DateOfBirth,
		&p.DateAdmitted,
		&p.Gender,
		&p.LocalAuthority,
		&p.RoomNumber,
		&p.PhoneNumber,
		&p.Allergies,
		&p.Conditions,
		&p.Medications,
		&p.Notes,
		&p.NextOfKinName,
		&p.NextOfKinPhone,
		&p.NextOfKinEmail,
		&p.SocialWorkerName,
		&p.SocialWorkerPhone,
		&p.SocialWorkerEmail,
		&p.SchoolName,
		&p.SchoolContact,
		&p.SchoolPhone,
		&p.SchoolEmail,
		&p.SchoolDays,
		&p.CreatedBy,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

// profileArgs returns the mutable columns in the order used by Create and Update.
func profileArgs(p types.YoungPerson) []any {
	return []any{
		p.Name,
		p.DateOfBirth,
		p.DateAdmitted,
		p.Gender,
		p.LocalAuthority,
		p.RoomNumber,
		p.PhoneNumber,
		p.Allergies,
		p.Conditions,
		p.Medications,
		p.Notes,
		p.NextOfKinName,
		p.NextOfKinPhone,
		p.NextOfKinEmail,
		p.SocialWorkerName,
		p.SocialWorkerPhone,
		p.SocialWorkerEmail,
		p.SchoolName,
		p.SchoolContact,
		p.SchoolPhone,
		p.SchoolEmail,
		p.SchoolDays,
	}
}

func (r *YoungPersonRepository) List(ctx context.Context) ([]types.YoungPerson, error) {
	query := `SELECT ` + youngPersonColumns + ` FROM young_people ORDER BY name, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	people := make([]types.YoungPerson, 0)
	for rows.Next() {
		person, err := scanYoungPerson(rows)
		if err != nil {
			return nil, err
		}
		people = append(people, person)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return people, nil
}

func (r *YoungPersonRepository) Get(ctx context.Context, id int) (types.YoungPerson, error) {
	query := `SELECT ` + youngPersonColumns + ` FROM young_people WHERE id = $1`
	person, err := scanYoungPerson(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.YoungPerson{}, ErrNotFound
		}
		return types.YoungPerson{}, err
	}
	return person, nil
}

func (r *YoungPersonRepository) Create(ctx context.Context, person types.YoungPerson) (types.YoungPerson, error) {
	now := time.Now()
	person.CreatedAt = now
	person.UpdatedAt = now

	const query = `
		INSERT INTO young_people (
			name, date_of_birth, date_admitted, gender, local_authority, room_number, phone_number,
			allergies, conditions, medications, notes,
			next_of_kin_name, next_of_kin_phone, next_of_kin_email,
			social_worker_name, social_worker_phone, social_worker_email,
			school_name, school_contact, school_phone, school_email, school_days,
			created_by, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25)
		RETURNING id`
	args := append(profileArgs(person), person.CreatedBy, person.CreatedAt, person.UpdatedAt)
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&person.ID); err != nil {
		return types.YoungPerson{}, err
	}
	return person, nil
}

// Update overwrites every profile column of the row. Callers apply partial
// patches before calling it; the last write wins.
func (r *YoungPersonRepository) Update(ctx context.Context, person types.YoungPerson) (types.YoungPerson, error) {
	person.UpdatedAt = time.Now()

	const query = `
		UPDATE young_people
		SET name = $1,
			date_of_birth = $2,
			date_admitted = $3,
			gender = $4,
			local_authority = $5,
			room_number = $6,
			phone_number = $7,
			allergies = $8,
			conditions = $9,
			medications = $10,
			notes = $11,
			next_of_kin_name = $12,
			next_of_kin_phone = $13,
			next_of_kin_email = $14,
			social_worker_name = $15,
			social_worker_phone = $16,
			social_worker_email = $17,
			school_name = $18,
			school_contact = $19,
			school_phone = $20,
			school_email = $21,
			school_days = $22,
			updated_at = $23
		WHERE id = $24`
	args := append(profileArgs(person), person.UpdatedAt, person.ID)
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return types.YoungPerson{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.YoungPerson{}, err
	}
	if affected == 0 {
		return types.YoungPerson{}, ErrNotFound
	}
	return person, nil
}
