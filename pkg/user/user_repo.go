package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repo interface {
	CreateUser(ctx context.Context, user User) (int, error)
	GetUser(ctx context.Context, id int) (User, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	GetAllUsers(ctx context.Context) ([]User, error)
}

type UserRepoImpl struct {
	db *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) *UserRepoImpl {
	return &UserRepoImpl{db: db}
}

const uniqueViolation = "23505"

func (u *UserRepoImpl) CreateUser(ctx context.Context, user User) (int, error) {
	query := `INSERT INTO users (uid, name, email, password_hash, created_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	var id int
	err := u.db.QueryRow(ctx, query,
		user.Uid,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return 0, ErrEmailTaken
		}
		log.Errorf("failed to create user: %v", err)
		return 0, err
	}
	return id, nil
}

func (u *UserRepoImpl) GetUser(ctx context.Context, id int) (User, error) {
	return u.getOne(ctx, `SELECT id, uid, name, email, password_hash, created_at FROM users WHERE id = $1`, id)
}

func (u *UserRepoImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	return u.getOne(ctx, `SELECT id, uid, name, email, password_hash, created_at FROM users WHERE uid = $1`, uid)
}

func (u *UserRepoImpl) GetUserByEmail(ctx context.Context, email string) (User, error) {
	return u.getOne(ctx, `SELECT id, uid, name, email, password_hash, created_at FROM users WHERE email = $1`, email)
}

func (u *UserRepoImpl) getOne(ctx context.Context, query string, arg any) (User, error) {
	var user User
	err := u.db.QueryRow(ctx, query, arg).
		Scan(&user.Id, &user.Uid, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrUserNotFound
	} else if err != nil {
		log.Errorf("failed to get user: %v", err)
		return User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (u *UserRepoImpl) GetAllUsers(ctx context.Context) ([]User, error) {
	rows, err := u.db.Query(ctx, `SELECT id, uid, name, email, password_hash, created_at FROM users ORDER BY id`)
	if err != nil {
		log.Errorf("failed to query users: %v", err)
		return nil, err
	}
	defer rows.Close()

	users := make([]User, 0, 8)
	for rows.Next() {
		var user User
		if err := rows.Scan(&user.Id, &user.Uid, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt); err != nil {
			log.Errorf("failed to scan user: %v", err)
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
