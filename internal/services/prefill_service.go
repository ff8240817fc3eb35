package services

import (
	"context"
	"fmt"

	"github.com/coachdesk/onboard/internal/models"
	"github.com/coachdesk/onboard/internal/schema"
	"gorm.io/gorm"
)

// ClientRecordSource resolves prefill lookups against the client domain
// tables. Field names in the returned maps match the known-category layouts
// so values land on the right form fields without renaming.
type ClientRecordSource struct {
	DB *gorm.DB
}

func (s ClientRecordSource) Lookup(ctx context.Context, userID string, source schema.PrefillSource) (map[string]interface{}, error) {
	db := s.DB.WithContext(ctx)
	switch source {
	case schema.PrefillPersonal:
		var rec models.ClientProfile
		if err := db.Where("user_id = ?", userID).First(&rec).Error; err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"first_name":  rec.FirstName,
			"last_name":   rec.LastName,
			"email":       rec.Email,
			"phone":       rec.Phone,
			"birth_date":  rec.BirthDate,
			"street":      rec.Street,
			"postal_code": rec.PostalCode,
			"city":        rec.City,
		}, nil
	case schema.PrefillFamily:
		var rec models.FamilyRecord
		if err := db.Where("user_id = ?", userID).First(&rec).Error; err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"marital_status":     rec.MaritalStatus,
			"number_of_children": float64(rec.NumberOfChildren),
			"partner_name":       rec.PartnerName,
		}, nil
	case schema.PrefillEmployment:
		var rec models.EmploymentRecord
		if err := db.Where("user_id = ?", userID).First(&rec).Error; err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"occupation":      rec.Occupation,
			"employer":        rec.Employer,
			"employment_type": rec.EmploymentType,
			"employed_since":  rec.EmployedSince,
		}, nil
	case schema.PrefillIncome:
		var rec models.IncomeRecord
		if err := db.Where("user_id = ?", userID).First(&rec).Error; err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"gross_income":       rec.GrossIncome,
			"net_income":         rec.NetIncome,
			"tax_class":          rec.TaxClass,
			"number_of_salaries": float64(rec.NumberOfSalaries),
			"child_benefit":      rec.ChildBenefit,
			"other_income":       rec.OtherIncome,
		}, nil
	case schema.PrefillExpenses:
		var rec models.ExpenseRecord
		if err := db.Where("user_id = ?", userID).First(&rec).Error; err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"rent":            rec.Rent,
			"utilities":       rec.Utilities,
			"insurance":       rec.Insurance,
			"living_expenses": rec.LivingExpenses,
			"other_expenses":  rec.OtherExpenses,
		}, nil
	case schema.PrefillAssets:
		var rec models.AssetRecord
		if err := db.Where("user_id = ?", userID).First(&rec).Error; err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"cash":         rec.Cash,
			"securities":   rec.Securities,
			"real_estate":  rec.RealEstate,
			"other_assets": rec.OtherAssets,
		}, nil
	case schema.PrefillLiabilities:
		var rec models.LiabilityRecord
		if err := db.Where("user_id = ?", userID).First(&rec).Error; err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"mortgage":          rec.Mortgage,
			"consumer_loans":    rec.ConsumerLoans,
			"other_liabilities": rec.OtherLiabilities,
		}, nil
	}
	return nil, fmt.Errorf("unknown prefill source %q", source)
}

// LookupList is the fallback list accessor. The domain tables hold one
// current record per user, so the list is at most one element; it exists so
// sources backed by history tables can slot in without touching the engine.
func (s ClientRecordSource) LookupList(ctx context.Context, userID string, source schema.PrefillSource) ([]map[string]interface{}, error) {
	rec, err := s.Lookup(ctx, userID, source)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return []map[string]interface{}{rec}, nil
}

// CoachIDForClient resolves the assigned coach for a client from the profile
// table. Returns empty when no profile exists.
func CoachIDForClient(db *gorm.DB, userID string) (string, error) {
	var rec models.ClientProfile
	err := db.Select("coach_id").Where("user_id = ?", userID).First(&rec).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil
		}
		return "", err
	}
	return rec.CoachID, nil
}
