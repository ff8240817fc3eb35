package models

import "time"

// Client domain records backing new-submission prefill. Each table holds the
// already-persisted data a coach or client maintains outside any form; the
// prefill engine copies it into matching sections of a new submission.

// ClientProfile holds a client's personal details and coach assignment.
type ClientProfile struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     string    `gorm:"type:char(36);uniqueIndex;not null" json:"user_id"`
	CoachID    string    `gorm:"type:char(36);index" json:"coach_id"`
	FirstName  string    `gorm:"size:255" json:"first_name"`
	LastName   string    `gorm:"size:255" json:"last_name"`
	Email      string    `gorm:"size:255" json:"email"`
	Phone      string    `gorm:"size:64" json:"phone"`
	BirthDate  string    `gorm:"size:10" json:"birth_date"`
	Street     string    `gorm:"size:255" json:"street"`
	PostalCode string    `gorm:"size:16" json:"postal_code"`
	City       string    `gorm:"size:255" json:"city"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// FamilyRecord holds a client's family situation.
type FamilyRecord struct {
	ID               uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID           string    `gorm:"type:char(36);index;not null" json:"user_id"`
	MaritalStatus    string    `gorm:"size:32" json:"marital_status"`
	NumberOfChildren int       `json:"number_of_children"`
	PartnerName      string    `gorm:"size:255" json:"partner_name"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// EmploymentRecord holds a client's employment situation.
type EmploymentRecord struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         string    `gorm:"type:char(36);index;not null" json:"user_id"`
	Occupation     string    `gorm:"size:255" json:"occupation"`
	Employer       string    `gorm:"size:255" json:"employer"`
	EmploymentType string    `gorm:"size:32" json:"employment_type"`
	EmployedSince  string    `gorm:"size:10" json:"employed_since"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// IncomeRecord holds a client's income figures.
type IncomeRecord struct {
	ID               uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID           string    `gorm:"type:char(36);index;not null" json:"user_id"`
	GrossIncome      float64   `json:"gross_income"`
	NetIncome        float64   `json:"net_income"`
	TaxClass         string    `gorm:"size:8" json:"tax_class"`
	NumberOfSalaries int       `json:"number_of_salaries"`
	ChildBenefit     float64   `json:"child_benefit"`
	OtherIncome      float64   `json:"other_income"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ExpenseRecord holds a client's recurring expenses.
type ExpenseRecord struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         string    `gorm:"type:char(36);index;not null" json:"user_id"`
	Rent           float64   `json:"rent"`
	Utilities      float64   `json:"utilities"`
	Insurance      float64   `json:"insurance"`
	LivingExpenses float64   `json:"living_expenses"`
	OtherExpenses  float64   `json:"other_expenses"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// AssetRecord holds a client's asset positions.
type AssetRecord struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      string    `gorm:"type:char(36);index;not null" json:"user_id"`
	Cash        float64   `json:"cash"`
	Securities  float64   `json:"securities"`
	RealEstate  float64   `json:"real_estate"`
	OtherAssets float64   `json:"other_assets"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LiabilityRecord holds a client's liabilities.
type LiabilityRecord struct {
	ID               uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID           string    `gorm:"type:char(36);index;not null" json:"user_id"`
	Mortgage         float64   `json:"mortgage"`
	ConsumerLoans    float64   `json:"consumer_loans"`
	OtherLiabilities float64   `json:"other_liabilities"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TableName overrides the table name for ClientProfile
func (ClientProfile) TableName() string {
	return "client_profiles"
}

// TableName overrides the table name for FamilyRecord
func (FamilyRecord) TableName() string {
	return "family_records"
}

// TableName overrides the table name for EmploymentRecord
func (EmploymentRecord) TableName() string {
	return "employment_records"
}

// TableName overrides the table name for IncomeRecord
func (IncomeRecord) TableName() string {
	return "income_records"
}

// TableName overrides the table name for ExpenseRecord
func (ExpenseRecord) TableName() string {
	return "expense_records"
}

// TableName overrides the table name for AssetRecord
func (AssetRecord) TableName() string {
	return "asset_records"
}

// TableName overrides the table name for LiabilityRecord
func (LiabilityRecord) TableName() string {
	return "liability_records"
}
