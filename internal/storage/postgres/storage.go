package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/drinktab/drinktab/internal/domain/errors"
	"github.com/drinktab/drinktab/internal/domain/model"
	"github.com/drinktab/drinktab/internal/domain/repository"
)

// pgxPool is the subset of the pgxpool API the storage relies on. It lets
// tests substitute a mock pool.
type pgxPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type postpaidRepository struct {
	storage *Storage
}

type prepaidRepository struct {
	storage *Storage
}

type drinkTypeRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w: %v", domainErrors.ErrStoreUnavailable, err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Postpaid() repository.PostpaidRepository {
	return &postpaidRepository{storage: s}
}

func (s *Storage) Prepaid() repository.PrepaidRepository {
	return &prepaidRepository{storage: s}
}

func (s *Storage) DrinkTypes() repository.DrinkTypeRepository {
	return &drinkTypeRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS postpaid_users (
            id BIGSERIAL PRIMARY KEY,
            username TEXT UNIQUE NOT NULL,
            money BIGINT NOT NULL DEFAULT 0,
            activated BOOLEAN NOT NULL DEFAULT FALSE,
            last_drink TIMESTAMPTZ
        )`,
		`CREATE TABLE IF NOT EXISTS prepaid_users (
            id BIGSERIAL PRIMARY KEY,
            username TEXT UNIQUE NOT NULL,
            user_key TEXT UNIQUE NOT NULL,
            postpaid_user_id BIGINT NOT NULL REFERENCES postpaid_users(id),
            money BIGINT NOT NULL DEFAULT 0,
            activated BOOLEAN NOT NULL DEFAULT TRUE,
            last_drink TIMESTAMPTZ
        )`,
		`CREATE TABLE IF NOT EXISTS drink_types (
            id BIGSERIAL PRIMARY KEY,
            name TEXT UNIQUE NOT NULL,
            icon TEXT NOT NULL DEFAULT '',
            quantity BIGINT NOT NULL DEFAULT 0,
            consumed BIGINT NOT NULL DEFAULT 0
        )`,
		`CREATE TABLE IF NOT EXISTS retired_prepaid_keys (
            user_key TEXT PRIMARY KEY,
            retired_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_prepaid_users_owner ON prepaid_users(postpaid_user_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

func scanPostpaid(row pgx.Row) (*model.PostpaidUser, error) {
	var u model.PostpaidUser
	if err := row.Scan(&u.ID, &u.Username, &u.Money, &u.Activated, &u.LastDrink); err != nil {
		return nil, err
	}
	return &u, nil
}

func scanPrepaid(row pgx.Row) (*model.PrepaidUser, error) {
	var u model.PrepaidUser
	if err := row.Scan(&u.ID, &u.Username, &u.UserKey, &u.PostpaidUserID, &u.Money, &u.Activated, &u.LastDrink); err != nil {
		return nil, err
	}
	return &u, nil
}

// --- PostpaidRepository implementation ---

func (r *postpaidRepository) Get(ctx context.Context, username string) (*model.PostpaidUser, error) {
	const query = `SELECT id, username, money, activated, last_drink FROM postpaid_users WHERE username=$1`
	u, err := scanPostpaid(r.storage.pool.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *postpaidRepository) List(ctx context.Context) ([]model.PostpaidUser, error) {
	const query = `SELECT id, username, money, activated, last_drink FROM postpaid_users ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.PostpaidUser
	for rows.Next() {
		u, err := scanPostpaid(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postpaidRepository) Upsert(ctx context.Context, user *model.PostpaidUser) (*model.PostpaidUser, error) {
	stored := *user
	if user.ID == 0 {
		const insertQuery = `INSERT INTO postpaid_users (username, money, activated, last_drink)
                             VALUES ($1, $2, $3, $4) RETURNING id`
		err := r.storage.pool.QueryRow(ctx, insertQuery, user.Username, user.Money, user.Activated, user.LastDrink).Scan(&stored.ID)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return nil, domainErrors.ErrConflict
			}
			return nil, err
		}
		return &stored, nil
	}

	const updateQuery = `UPDATE postpaid_users SET money=$1, activated=$2, last_drink=$3 WHERE id=$4 AND username=$5`
	tag, err := r.storage.pool.Exec(ctx, updateQuery, user.Money, user.Activated, user.LastDrink, user.ID, user.Username)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domainErrors.ErrConflict
	}
	return &stored, nil
}

func (r *postpaidRepository) RecordDrink(ctx context.Context, username string, price int64, at time.Time) (*model.PostpaidUser, error) {
	const selectQuery = `SELECT id, username, money, activated, last_drink FROM postpaid_users WHERE username=$1 FOR UPDATE`
	const updateQuery = `UPDATE postpaid_users SET money=$1, last_drink=$2 WHERE id=$3`

	var result *model.PostpaidUser
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		u, err := scanPostpaid(tx.QueryRow(ctx, selectQuery, username))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}
		if !u.Activated {
			return domainErrors.ErrInactive
		}
		u.Money -= price
		u.LastDrink = &at
		if _, err := tx.Exec(ctx, updateQuery, u.Money, u.LastDrink, u.ID); err != nil {
			return err
		}
		result = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postpaidRepository) RevertDrink(ctx context.Context, username string, refund int64, since time.Time) (*model.PostpaidUser, error) {
	const selectQuery = `SELECT id, username, money, activated, last_drink FROM postpaid_users WHERE username=$1 FOR UPDATE`
	const updateQuery = `UPDATE postpaid_users SET money=$1, last_drink=$2 WHERE id=$3`

	var result *model.PostpaidUser
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		u, err := scanPostpaid(tx.QueryRow(ctx, selectQuery, username))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}
		if u.LastDrink == nil || u.LastDrink.Before(since) {
			return domainErrors.ErrNoRecentDrink
		}
		u.Money += refund
		u.LastDrink = nil
		if _, err := tx.Exec(ctx, updateQuery, u.Money, u.LastDrink, u.ID); err != nil {
			return err
		}
		result = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postpaidRepository) SetMoney(ctx context.Context, username string, money int64) (*model.PostpaidUser, error) {
	const query = `UPDATE postpaid_users SET money=$1 WHERE username=$2
                   RETURNING id, username, money, activated, last_drink`
	u, err := scanPostpaid(r.storage.pool.QueryRow(ctx, query, money, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *postpaidRepository) ToggleActivated(ctx context.Context, username string) (bool, error) {
	const query = `UPDATE postpaid_users SET activated = NOT activated WHERE username=$1 RETURNING activated`
	var activated bool
	err := r.storage.pool.QueryRow(ctx, query, username).Scan(&activated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, domainErrors.ErrNotFound
		}
		return false, err
	}
	return activated, nil
}

func (r *postpaidRepository) Transfer(ctx context.Context, from, to string, amount int64) error {
	// Rows lock in username order regardless of transfer direction, so two
	// opposite transfers cannot deadlock.
	const lockQuery = `SELECT username FROM postpaid_users WHERE username IN ($1, $2) ORDER BY username FOR UPDATE`
	const debitQuery = `UPDATE postpaid_users SET money = money - $1 WHERE username=$2`
	const creditQuery = `UPDATE postpaid_users SET money = money + $1 WHERE username=$2`

	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, lockQuery, from, to)
		if err != nil {
			return err
		}
		locked := make(map[string]bool, 2)
		for rows.Next() {
			var name string
			if err := rows.Scan(&name); err != nil {
				rows.Close()
				return err
			}
			locked[name] = true
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}
		if !locked[from] || !locked[to] {
			return domainErrors.ErrNotFound
		}

		if _, err := tx.Exec(ctx, debitQuery, amount, from); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, creditQuery, amount, to); err != nil {
			return err
		}
		return nil
	})
}

// --- PrepaidRepository implementation ---

func (r *prepaidRepository) Get(ctx context.Context, username string) (*model.PrepaidUser, error) {
	const query = `SELECT id, username, user_key, postpaid_user_id, money, activated, last_drink
                   FROM prepaid_users WHERE username=$1`
	u, err := scanPrepaid(r.storage.pool.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *prepaidRepository) GetByKey(ctx context.Context, userKey string) (*model.PrepaidUser, error) {
	const query = `SELECT id, username, user_key, postpaid_user_id, money, activated, last_drink
                   FROM prepaid_users WHERE user_key=$1`
	u, err := scanPrepaid(r.storage.pool.QueryRow(ctx, query, userKey))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *prepaidRepository) List(ctx context.Context) ([]model.PrepaidUser, error) {
	const query = `SELECT id, username, user_key, postpaid_user_id, money, activated, last_drink
                   FROM prepaid_users ORDER BY id`
	return r.list(ctx, query)
}

func (r *prepaidRepository) ListByOwner(ctx context.Context, postpaidUserID int64) ([]model.PrepaidUser, error) {
	const query = `SELECT id, username, user_key, postpaid_user_id, money, activated, last_drink
                   FROM prepaid_users WHERE postpaid_user_id=$1 ORDER BY id`
	return r.list(ctx, query, postpaidUserID)
}

func (r *prepaidRepository) list(ctx context.Context, query string, args ...any) ([]model.PrepaidUser, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.PrepaidUser
	for rows.Next() {
		u, err := scanPrepaid(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *prepaidRepository) Upsert(ctx context.Context, user *model.PrepaidUser) (*model.PrepaidUser, error) {
	stored := *user
	if user.ID == 0 {
		err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
			const retiredQuery = `SELECT user_key FROM retired_prepaid_keys WHERE user_key=$1`
			var retired string
			err := tx.QueryRow(ctx, retiredQuery, user.UserKey).Scan(&retired)
			if err == nil {
				return domainErrors.ErrConflict
			}
			if !errors.Is(err, pgx.ErrNoRows) {
				return err
			}

			const insertQuery = `INSERT INTO prepaid_users (username, user_key, postpaid_user_id, money, activated, last_drink)
                                 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
			err = tx.QueryRow(ctx, insertQuery, user.Username, user.UserKey, user.PostpaidUserID, user.Money, user.Activated, user.LastDrink).Scan(&stored.ID)
			if err != nil {
				var pgErr *pgconn.PgError
				if errors.As(err, &pgErr) && pgErr.Code == "23505" {
					return domainErrors.ErrConflict
				}
				return err
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		return &stored, nil
	}

	const updateQuery = `UPDATE prepaid_users SET money=$1, activated=$2, last_drink=$3
                         WHERE id=$4 AND username=$5 AND user_key=$6 AND postpaid_user_id=$7`
	tag, err := r.storage.pool.Exec(ctx, updateQuery,
		user.Money, user.Activated, user.LastDrink,
		user.ID, user.Username, user.UserKey, user.PostpaidUserID)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domainErrors.ErrConflict
	}
	return &stored, nil
}

func (r *prepaidRepository) Delete(ctx context.Context, username string) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const deleteQuery = `DELETE FROM prepaid_users WHERE username=$1 RETURNING user_key`
		var key string
		err := tx.QueryRow(ctx, deleteQuery, username).Scan(&key)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}

		const retireQuery = `INSERT INTO retired_prepaid_keys (user_key) VALUES ($1)`
		if _, err := tx.Exec(ctx, retireQuery, key); err != nil {
			return err
		}
		return nil
	})
}

func (r *prepaidRepository) RecordDrink(ctx context.Context, id int64, price int64, at time.Time) (*model.PrepaidUser, error) {
	const selectQuery = `SELECT id, username, user_key, postpaid_user_id, money, activated, last_drink
                         FROM prepaid_users WHERE id=$1 FOR UPDATE`
	const updateQuery = `UPDATE prepaid_users SET money=$1, last_drink=$2 WHERE id=$3`

	var result *model.PrepaidUser
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		u, err := scanPrepaid(tx.QueryRow(ctx, selectQuery, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}
		if !u.Activated {
			return domainErrors.ErrInactive
		}
		u.Money -= price
		u.LastDrink = &at
		if _, err := tx.Exec(ctx, updateQuery, u.Money, u.LastDrink, u.ID); err != nil {
			return err
		}
		result = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *prepaidRepository) RevertDrink(ctx context.Context, id int64, refund int64, since time.Time) (*model.PrepaidUser, error) {
	const selectQuery = `SELECT id, username, user_key, postpaid_user_id, money, activated, last_drink
                         FROM prepaid_users WHERE id=$1 FOR UPDATE`
	const updateQuery = `UPDATE prepaid_users SET money=$1, last_drink=$2 WHERE id=$3`

	var result *model.PrepaidUser
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		u, err := scanPrepaid(tx.QueryRow(ctx, selectQuery, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}
		if u.LastDrink == nil || u.LastDrink.Before(since) {
			return domainErrors.ErrNoRecentDrink
		}
		u.Money += refund
		u.LastDrink = nil
		if _, err := tx.Exec(ctx, updateQuery, u.Money, u.LastDrink, u.ID); err != nil {
			return err
		}
		result = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *prepaidRepository) AddMoney(ctx context.Context, id int64, amount int64) (*model.PrepaidUser, error) {
	const query = `UPDATE prepaid_users SET money = money + $1 WHERE id=$2
                   RETURNING id, username, user_key, postpaid_user_id, money, activated, last_drink`
	u, err := scanPrepaid(r.storage.pool.QueryRow(ctx, query, amount, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *prepaidRepository) SetMoney(ctx context.Context, id int64, money int64) (*model.PrepaidUser, error) {
	const query = `UPDATE prepaid_users SET money=$1 WHERE id=$2
                   RETURNING id, username, user_key, postpaid_user_id, money, activated, last_drink`
	u, err := scanPrepaid(r.storage.pool.QueryRow(ctx, query, money, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *prepaidRepository) ToggleActivated(ctx context.Context, id int64) (bool, error) {
	const query = `UPDATE prepaid_users SET activated = NOT activated WHERE id=$1 RETURNING activated`
	var activated bool
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&activated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, domainErrors.ErrNotFound
		}
		return false, err
	}
	return activated, nil
}

// --- DrinkTypeRepository implementation ---

func (r *drinkTypeRepository) List(ctx context.Context) ([]model.DrinkType, error) {
	const query = `SELECT id, name, icon, quantity, consumed FROM drink_types ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.DrinkType
	for rows.Next() {
		var d model.DrinkType
		if err := rows.Scan(&d.ID, &d.Name, &d.Icon, &d.Quantity, &d.Consumed); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *drinkTypeRepository) Create(ctx context.Context, name, icon string, quantity int64) (*model.DrinkType, error) {
	const query = `INSERT INTO drink_types (name, icon, quantity) VALUES ($1, $2, $3) RETURNING id`
	d := model.DrinkType{Name: name, Icon: icon, Quantity: quantity}
	err := r.storage.pool.QueryRow(ctx, query, name, icon, quantity).Scan(&d.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrConflict
		}
		return nil, err
	}
	return &d, nil
}

func (r *drinkTypeRepository) SetQuantity(ctx context.Context, id int64, quantity int64) (*model.DrinkType, error) {
	const query = `UPDATE drink_types SET quantity=$1 WHERE id=$2
                   RETURNING id, name, icon, quantity, consumed`
	var d model.DrinkType
	err := r.storage.pool.QueryRow(ctx, query, quantity, id).Scan(&d.ID, &d.Name, &d.Icon, &d.Quantity, &d.Consumed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *drinkTypeRepository) MarkConsumed(ctx context.Context, id int64) error {
	const query = `UPDATE drink_types SET consumed = consumed + 1, quantity = quantity - 1 WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				s.logger.Warn("transaction rollback failed", slog.String("error", rbErr.Error()))
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := s.pool.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", domainErrors.ErrStoreUnavailable, err)
	}
	return nil
}
