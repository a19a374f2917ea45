package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/shiftlyhq/shiftly/internal/model"
	"github.com/shiftlyhq/shiftly/internal/utils"
)

// AccountRepo provides persistence for accounts, including the onboarding
// step pointer.  The step pointer is advanced with compare-and-set updates
// so it never moves backwards when a completed step is re-submitted.
type AccountRepo struct{ DB *sql.DB }

func NewAccountRepo(db *sql.DB) *AccountRepo { return &AccountRepo{DB: db} }

const accountCols = "id,email,password_hash,full_name,phone,role,company_name,niche,goals,team_size,onboarding_step,has_onboarded,created_at,updated_at"

// Create inserts a new account with role unset and returns its ID.
func (r *AccountRepo) Create(ctx context.Context, email, password, fullName, phone string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO accounts (email, password_hash, full_name, phone, role, onboarding_step) VALUES (?,?,?,?,?,?)",
		email, hash, fullName, phone, model.RoleUnset, model.StepRoleSelect)
	if err != nil {
		if isDupKey(err) {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches an account by normalized email.
func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (model.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+accountCols+" FROM accounts WHERE email=? LIMIT 1", email))
}

// GetByID fetches an account by id.
func (r *AccountRepo) GetByID(ctx context.Context, id uint64) (model.Account, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+accountCols+" FROM accounts WHERE id=? LIMIT 1", id))
}

func (r *AccountRepo) scanOne(row *sql.Row) (model.Account, error) {
	var a model.Account
	err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.FullName, &a.Phone, &a.Role,
		&a.CompanyName, &a.Niche, &a.Goals, &a.TeamSize,
		&a.OnboardingStep, &a.HasOnboarded, &a.CreatedAt, &a.UpdatedAt)
	if err == sql.ErrNoRows {
		return a, ErrNotFound
	}
	return a, err
}

// SetRole records the chosen role and advances the step pointer out of
// role_select.  Employees jump straight to awaiting_invite; companies move
// to company_details.  Re-running the step with the same role is a no-op;
// switching an already-set role is rejected.
func (r *AccountRepo) SetRole(ctx context.Context, id uint64, role string) error {
	next := model.StepCompanyDetails
	if role == model.RoleEmployee {
		next = model.StepAwaitingInvite
	}
	res, err := r.DB.ExecContext(ctx,
		`UPDATE accounts SET role=?,
		        onboarding_step = CASE WHEN onboarding_step=? THEN ? ELSE onboarding_step END
		 WHERE id=? AND (role='' OR role=?)`,
		role, model.StepRoleSelect, next, id, role)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Row untouched: either the account is gone or the role is
		// already set to something else.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrConflict
	}
	return nil
}

// SetCompanyDetails stores the company profile fields and advances the step
// pointer from company_details to goals.
func (r *AccountRepo) SetCompanyDetails(ctx context.Context, id uint64, name, niche, teamSize string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE accounts SET company_name=?, niche=?, team_size=?,
		        onboarding_step = CASE WHEN onboarding_step=? THEN ? ELSE onboarding_step END
		 WHERE id=?`,
		name, niche, teamSize, model.StepCompanyDetails, model.StepGoals, id)
	return err
}

// SetGoals stores the goals JSON and advances the step pointer from goals
// to roster_import.
func (r *AccountRepo) SetGoals(ctx context.Context, id uint64, goalsJSON string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE accounts SET goals=?,
		        onboarding_step = CASE WHEN onboarding_step=? THEN ? ELSE onboarding_step END
		 WHERE id=?`,
		goalsJSON, model.StepGoals, model.StepRosterImport, id)
	return err
}

// CompleteOnboarding marks the terminal state, advancing only from
// roster_import so earlier steps cannot be skipped.  The has_onboarded
// assignment comes first because MySQL evaluates SET clauses left to right.
func (r *AccountRepo) CompleteOnboarding(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE accounts SET
		        has_onboarded = CASE WHEN onboarding_step=? THEN 1 ELSE has_onboarded END,
		        onboarding_step = CASE WHEN onboarding_step=? THEN ? ELSE onboarding_step END
		 WHERE id=?`,
		model.StepRosterImport, model.StepRosterImport, model.StepDone, id)
	return err
}

// MarkOnboardedTx marks the terminal state within an existing transaction.
// Used by invite acceptance, which must flip the accepting employee's
// account atomically with the roster activation.
func (r *AccountRepo) MarkOnboardedTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE accounts SET onboarding_step=?, has_onboarded=1 WHERE id=?",
		model.StepDone, id)
	return err
}
