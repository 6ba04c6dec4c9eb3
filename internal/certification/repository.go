package certification

import (
	"database/sql"

	"github.com/segmentio/ksuid"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db}
}

func (r *Repository) List() ([]Certification, error) {
	certs := []Certification{}
	rows, err := r.db.Query(
		`SELECT id, name, issuer, issued_at, position, created_at
		FROM certification
		ORDER BY position ASC, created_at ASC`)
	if err != nil {
		return certs, err
	}
	defer rows.Close()
	for rows.Next() {
		cert := Certification{}
		var issuer sql.NullString
		err := rows.Scan(&cert.ID, &cert.Name, &issuer, &cert.IssuedAt, &cert.Position, &cert.CreatedAt)
		if err != nil {
			return certs, err
		}
		cert.Issuer = issuer.String
		certs = append(certs, cert)
	}
	return certs, rows.Err()
}

func (r *Repository) Create(name, issuer string) (Certification, error) {
	id, err := ksuid.NewRandom()
	if err != nil {
		return Certification{}, err
	}
	res := r.db.QueryRow(
		`INSERT INTO certification (id, name, issuer, position, created_at)
		VALUES ($1, $2, NULLIF($3, ''), (SELECT COALESCE(MAX(position)+1, 0) FROM certification), NOW())
		RETURNING id, name, COALESCE(issuer, ''), issued_at, position, created_at`,
		id.String(), name, issuer)
	cert := Certification{}
	err = res.Scan(&cert.ID, &cert.Name, &cert.Issuer, &cert.IssuedAt, &cert.Position, &cert.CreatedAt)
	return cert, err
}

// UpdatePosition persists a single entry's new display index. Reorders are
// a batch of these, one per moved entry.
func (r *Repository) UpdatePosition(id string, position int) error {
	res, err := r.db.Exec(`UPDATE certification SET position = $1 WHERE id = $2`, position, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
