package repo

import (
	"context"
	"database/sql"
	"errors"
	"sync"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
)

type Repository interface {
	CreateUser(ctx context.Context, login, email, password string) (int, error)
	GetByLogin(ctx context.Context, login string) (int, string, error)
}

const schema = `CREATE TABLE IF NOT EXISTS users (
	id SERIAL PRIMARY KEY,
	login TEXT UNIQUE NOT NULL,
	email TEXT NOT NULL,
	password TEXT NOT NULL
)`

type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserDB(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// Migrate creates the accounts table when it is missing.
func (r *PostgresUserRepository) Migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, schema)
	return err
}

func (r *PostgresUserRepository) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	var id int
	query := "INSERT INTO users (login, email, password) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, login, email, password).Scan(&id)
	return id, err
}

func (r *PostgresUserRepository) GetByLogin(ctx context.Context, login string) (int, string, error) {
	var id int
	var hash string

	query := "SELECT id, password FROM users WHERE login=$1"

	err := r.db.QueryRowContext(ctx, query, login).Scan(&id, &hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, "", ErrUserNotFound
		}
		return 0, "", err
	}
	return id, hash, nil
}

type memUser struct {
	id    int
	email string
	hash  string
}

// MemoryUserRepository keeps accounts in process memory, for running without
// a database and for tests.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	next  int
	users map[string]memUser
}

func NewMemoryUserDB() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]memUser)}
}

func (r *MemoryUserRepository) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[login]; ok {
		return 0, ErrUserExists
	}
	r.next++
	r.users[login] = memUser{id: r.next, email: email, hash: password}
	return r.next, nil
}

func (r *MemoryUserRepository) GetByLogin(ctx context.Context, login string) (int, string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[login]
	if !ok {
		return 0, "", ErrUserNotFound
	}
	return u.id, u.hash, nil
}
