package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/geocoder89/userhub/internal/domain/user"
	"github.com/geocoder89/userhub/internal/observability"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const roleCheckConstraint = "users_role_check"

const userColumns = `id, email, password_hash, role, designation, company, first_name, last_name, created_at, updated_at`

type UsersRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

// NewUsersRepo builds the postgres directory. prom may be nil.
func NewUsersRepo(pool *pgxpool.Pool, prom *observability.Prom) *UsersRepo {
	return &UsersRepo{pool: pool, prom: prom}
}

func (r *UsersRepo) observe(op string, fn func() error) error {
	if r.prom == nil {
		return fn()
	}
	return r.prom.ObserveDB(op, fn)
}

func (r *UsersRepo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (user.User, error) {
	var u user.User

	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.Designation,
		&u.Company,
		&u.FirstName,
		&u.LastName,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}

	return u, nil
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (u user.User, err error) {
	err = r.observe("users.get_by_email", func() error {
		u, err = scanUser(r.pool.QueryRow(ctx,
			`SELECT `+userColumns+` FROM users WHERE email = $1`,
			email,
		))
		return err
	})

	return u, err
}

func (r *UsersRepo) List(ctx context.Context) ([]user.User, error) {
	var out []user.User

	err := r.observe("users.list", func() error {
		rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at, email`)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			u, err := scanUser(rows)
			if err != nil {
				return err
			}
			out = append(out, u)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

// Create assigns the id and timestamps. Duplicate emails and roles outside
// the allowed set are rejected by the table constraints.
func (r *UsersRepo) Create(ctx context.Context, in user.User) (user.User, error) {
	if err := in.Validate(); err != nil {
		return user.User{}, err
	}

	now := time.Now().UTC()
	in.ID = uuid.NewString()
	in.CreatedAt = now
	in.UpdatedAt = now

	var out user.User

	err := r.inTx(ctx, "users.create", func(tx pgx.Tx) error {
		var err error
		out, err = scanUser(tx.QueryRow(ctx,
			`INSERT INTO users (`+userColumns+`)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
			RETURNING `+userColumns,
			in.ID, in.Email, in.PasswordHash, in.Role, in.Designation, in.Company,
			in.FirstName, in.LastName, in.CreatedAt, in.UpdatedAt,
		))
		return err
	})

	if err != nil {
		return user.User{}, err
	}

	return out, nil
}

// Update applies the present fields of p to the user with the given id.
func (r *UsersRepo) Update(ctx context.Context, id string, p user.Patch) (user.User, error) {
	if err := p.Validate(); err != nil {
		return user.User{}, err
	}

	var out user.User

	err := r.inTx(ctx, "users.update", func(tx pgx.Tx) error {
		cur, err := scanUser(tx.QueryRow(ctx,
			`SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`,
			id,
		))
		if err != nil {
			return err
		}

		if p.IsEmpty() {
			out = cur
			return nil
		}

		p.Apply(&cur)
		cur.UpdatedAt = time.Now().UTC()

		out, err = scanUser(tx.QueryRow(ctx,
			`UPDATE users
			SET email = $2, password_hash = $3, role = $4, designation = $5, company = $6,
				first_name = $7, last_name = $8, updated_at = $9
			WHERE id = $1
			RETURNING `+userColumns,
			cur.ID, cur.Email, cur.PasswordHash, cur.Role, cur.Designation, cur.Company,
			cur.FirstName, cur.LastName, cur.UpdatedAt,
		))
		return err
	})

	if err != nil {
		return user.User{}, err
	}

	return out, nil
}

func (r *UsersRepo) UpdateRole(ctx context.Context, email string, role user.Role) (user.User, error) {
	if !role.IsValid() {
		return user.User{}, user.ErrInvalidRole
	}

	var out user.User

	err := r.inTx(ctx, "users.update_role", func(tx pgx.Tx) error {
		var err error
		out, err = scanUser(tx.QueryRow(ctx,
			`UPDATE users SET role = $2, updated_at = $3
			WHERE email = $1
			RETURNING `+userColumns,
			email, role, time.Now().UTC(),
		))
		return err
	})

	if err != nil {
		return user.User{}, err
	}

	return out, nil
}

func (r *UsersRepo) DeleteByEmail(ctx context.Context, email string) error {
	return r.inTx(ctx, "users.delete", func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM users WHERE email = $1`, email)
		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return user.ErrNotFound
		}
		return nil
	})
}

// inTx runs fn in a transaction that commits only if fn succeeds, and maps
// integrity violations to the directory's errors.
func (r *UsersRepo) inTx(ctx context.Context, op string, fn func(pgx.Tx) error) (err error) {
	err = r.observe(op, func() error {
		tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
		if err != nil {
			return err
		}

		defer func() {
			_ = tx.Rollback(ctx)
		}()

		if err = fn(tx); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})

	return mapPgErr(err)
}

func mapPgErr(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case "23505":
		return user.ErrEmailTaken
	case "23514":
		if pgErr.ConstraintName == roleCheckConstraint {
			return user.ErrInvalidRole
		}
		return fmt.Errorf("%w: %s", user.ErrConstraintViolation, pgErr.ConstraintName)
	case "23502":
		return fmt.Errorf("%w: %s is required", user.ErrConstraintViolation, pgErr.ColumnName)
	}

	return err
}
