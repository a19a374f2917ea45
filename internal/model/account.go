package model

import "time"

// Account roles.  A fresh account has no role until the onboarding role
// selection step is completed.
const (
	RoleUnset    = ""
	RoleCompany  = "COMPANY"
	RoleEmployee = "EMPLOYEE"
)

// Onboarding steps recorded on the account.  The step pointer only moves
// forward; HasOnboarded is the terminal marker.
const (
	StepRoleSelect     = "role_select"
	StepCompanyDetails = "company_details"
	StepGoals          = "goals"
	StepRosterImport   = "roster_import"
	StepAwaitingInvite = "awaiting_invite"
	StepDone           = "done"
)

// Account represents a row in the `accounts` table.  It is the top-level
// identity record; every other entity is owned by an account directly or
// transitively.  Company-only profile fields (CompanyName, Niche, Goals,
// TeamSize) are nullable and stay empty for employee accounts.
//
// Fields:
//
//	ID             – primary key identifier.
//	Email          – unique, stored lower-cased.
//	PasswordHash   – bcrypt hashed password.
//	FullName       – display name collected at registration.
//	Phone          – contact phone collected at registration.
//	Role           – COMPANY, EMPLOYEE or empty before role selection.
//	CompanyName    – company display name (company role only).
//	Niche          – company industry/niche (company role only).
//	Goals          – JSON array of goal strings (company role only).
//	TeamSize       – declared team size (company role only).
//	OnboardingStep – explicit current onboarding step.
//	HasOnboarded   – terminal onboarding marker.
//	CreatedAt      – timestamp of creation.
//	UpdatedAt      – timestamp of last update.
type Account struct {
	ID             uint64    // accounts.id
	Email          string    // accounts.email
	PasswordHash   string    // accounts.password_hash
	FullName       string    // accounts.full_name
	Phone          string    // accounts.phone
	Role           string    // accounts.role
	CompanyName    *string   // accounts.company_name (nullable)
	Niche          *string   // accounts.niche (nullable)
	Goals          *string   // accounts.goals (nullable, JSON array)
	TeamSize       *string   // accounts.team_size (nullable)
	OnboardingStep string    // accounts.onboarding_step
	HasOnboarded   bool      // accounts.has_onboarded
	CreatedAt      time.Time // accounts.created_at
	UpdatedAt      time.Time // accounts.updated_at
}
