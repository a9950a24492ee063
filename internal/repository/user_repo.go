package repository

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/fikadugetaye72/fruit/internal/domain"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
)

const userColumns = `id, username, email, password_hash, first_name, last_name,
	coins, total_coins_earned, total_coins_spent, total_coins_purchased,
	ads_watched_today, max_ads_per_day, last_ad_watch_date,
	daily_reward_streak, max_daily_reward_streak, last_daily_reward_date,
	referral_code, referred_by, referral_count, referral_rewards_earned,
	is_vip, vip_expiry_date, account_status, last_login_at, last_activity_at, created_at`

type UserRepository struct {
	db  *pgxpool.Pool
	txs *TransactionRepository
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db, txs: NewTransactionRepository(db)}
}

// GenerateReferralCode generates a random referral code candidate.
// Uniqueness is enforced by the users.referral_code constraint.
func GenerateReferralCode() string {
	bytes := make([]byte, 6)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO users (username, email, password_hash, first_name, last_name,
		                    referral_code, account_status, max_ads_per_day)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, coins, created_at`,
		u.Username, u.Email, u.PasswordHash, u.FirstName, u.LastName,
		u.ReferralCode, u.AccountStatus, u.MaxAdsPerDay,
	).Scan(&u.ID, &u.Coins, &u.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrUserExists
	}
	return err
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *UserRepository) GetByReferralCode(ctx context.Context, code string) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE referral_code = $1`, code))
}

// UpdateAtomic loads the user under a row lock, applies fn to the in-memory
// copy and persists the result in the same transaction. Concurrent calls
// against one account serialize on the lock, so fn always sees the latest
// committed state. When fn returns an error nothing is committed. A non-nil
// ledger entry returned by fn is recorded atomically with the update.
func (r *UserRepository) UpdateAtomic(ctx context.Context, id int64, fn func(*domain.User) (*domain.Transaction, error)) (*domain.User, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	u, err := scanUser(tx.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, err
	}

	entry, err := fn(u)
	if err != nil {
		return nil, err
	}

	if err := persistUser(ctx, tx, u); err != nil {
		return nil, err
	}

	if entry != nil {
		if err := r.txs.CreateWithTx(ctx, tx, entry); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return u, nil
}

// ApplyReferral locks both accounts (in ascending id order to avoid
// deadlocks), applies fn to both copies and persists them together with the
// ledger entries fn returns. Either both records change or neither does.
func (r *UserRepository) ApplyReferral(ctx context.Context, referrerID, referredID int64, fn func(referrer, referred *domain.User) ([]*domain.Transaction, error)) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	firstID, secondID := referrerID, referredID
	if firstID > secondID {
		firstID, secondID = secondID, firstID
	}

	first, err := scanUser(tx.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, firstID))
	if err != nil {
		return err
	}
	second, err := scanUser(tx.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, secondID))
	if err != nil {
		return err
	}

	referrer, referred := first, second
	if referrer.ID != referrerID {
		referrer, referred = second, first
	}

	entries, err := fn(referrer, referred)
	if err != nil {
		return err
	}

	if err := persistUser(ctx, tx, referrer); err != nil {
		return err
	}
	if err := persistUser(ctx, tx, referred); err != nil {
		return err
	}

	for _, entry := range entries {
		if err := r.txs.CreateWithTx(ctx, tx, entry); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, firstName, lastName string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET first_name = $1, last_name = $2, last_activity_at = NOW() WHERE id = $3`,
		firstName, lastName, id,
	)
	return err
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET password_hash = $1, last_activity_at = NOW() WHERE id = $2`,
		passwordHash, id,
	)
	return err
}

func (r *UserRepository) TouchLogin(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET last_login_at = NOW(), last_activity_at = NOW() WHERE id = $1`,
		id,
	)
	return err
}

// ReferredUser is the slim view of an invited account shown in referral stats.
type ReferredUser struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name"`
	CreatedAt time.Time `json:"created_at"`
}

// GetReferredUsers returns the accounts that used this user's referral code.
func (r *UserRepository) GetReferredUsers(ctx context.Context, referrerID int64) ([]ReferredUser, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, username, first_name, created_at
		 FROM users
		 WHERE referred_by = $1
		 ORDER BY created_at DESC`,
		referrerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []ReferredUser
	for rows.Next() {
		var u ReferredUser
		if err := rows.Scan(&u.ID, &u.Username, &u.FirstName, &u.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, u)
	}
	return res, rows.Err()
}

func persistUser(ctx context.Context, tx pgx.Tx, u *domain.User) error {
	_, err := tx.Exec(ctx,
		`UPDATE users SET
			coins = $1, total_coins_earned = $2, total_coins_spent = $3,
			ads_watched_today = $4, last_ad_watch_date = $5,
			daily_reward_streak = $6, max_daily_reward_streak = $7, last_daily_reward_date = $8,
			referred_by = $9, referral_count = $10, referral_rewards_earned = $11,
			last_activity_at = $12
		 WHERE id = $13`,
		u.Coins, u.TotalCoinsEarned, u.TotalCoinsSpent,
		u.AdsWatchedToday, u.LastAdWatchDate,
		u.DailyRewardStreak, u.MaxDailyRewardStreak, u.LastDailyRewardDate,
		u.ReferredBy, u.ReferralCount, u.ReferralRewardsEarned,
		u.LastActivityAt,
		u.ID,
	)
	return err
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.Coins, &u.TotalCoinsEarned, &u.TotalCoinsSpent, &u.TotalCoinsPurchased,
		&u.AdsWatchedToday, &u.MaxAdsPerDay, &u.LastAdWatchDate,
		&u.DailyRewardStreak, &u.MaxDailyRewardStreak, &u.LastDailyRewardDate,
		&u.ReferralCode, &u.ReferredBy, &u.ReferralCount, &u.ReferralRewardsEarned,
		&u.IsVIP, &u.VIPExpiryDate, &u.AccountStatus, &u.LastLoginAt, &u.LastActivityAt, &u.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
