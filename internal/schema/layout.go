package schema

// knownLayouts are the fixed field sets rendered for well-known section
// categories. When a section matches a category, this layout wins over the
// section's generic fields; fully custom sections fall back to their own
// field list.
var knownLayouts = map[PrefillSource][]FormField{
	PrefillPersonal: {
		{ID: "personal-first-name", Name: "first_name", Type: FieldText, Label: "First Name", Required: true},
		{ID: "personal-last-name", Name: "last_name", Type: FieldText, Label: "Last Name", Required: true},
		{ID: "personal-email", Name: "email", Type: FieldEmail, Label: "Email"},
		{ID: "personal-phone", Name: "phone", Type: FieldTel, Label: "Phone"},
		{ID: "personal-birth-date", Name: "birth_date", Type: FieldDate, Label: "Date of Birth"},
		{ID: "personal-street", Name: "street", Type: FieldText, Label: "Street"},
		{ID: "personal-postal-code", Name: "postal_code", Type: FieldText, Label: "Postal Code"},
		{ID: "personal-city", Name: "city", Type: FieldText, Label: "City"},
	},
	PrefillFamily: {
		{ID: "family-marital-status", Name: "marital_status", Type: FieldSelect, Label: "Marital Status",
			Options: []string{"single", "married", "divorced", "widowed"}},
		{ID: "family-number-of-children", Name: "number_of_children", Type: FieldNumber, Label: "Number of Children"},
		{ID: "family-partner-name", Name: "partner_name", Type: FieldText, Label: "Partner Name"},
	},
	PrefillEmployment: {
		{ID: "employment-occupation", Name: "occupation", Type: FieldText, Label: "Occupation"},
		{ID: "employment-employer", Name: "employer", Type: FieldText, Label: "Employer"},
		{ID: "employment-type", Name: "employment_type", Type: FieldSelect, Label: "Employment Type",
			Options: []string{"employed", "self-employed", "unemployed", "retired", "student"}},
		{ID: "employment-since", Name: "employed_since", Type: FieldDate, Label: "Employed Since"},
	},
	PrefillIncome: {
		{ID: "income-gross", Name: "gross_income", Type: FieldNumber, Label: "Gross Income"},
		{ID: "income-net", Name: "net_income", Type: FieldNumber, Label: "Net Income"},
		{ID: "income-tax-class", Name: "tax_class", Type: FieldSelect, Label: "Tax Class",
			Options: []string{"1", "2", "3", "4", "5", "6"}},
		{ID: "income-number-of-salaries", Name: "number_of_salaries", Type: FieldNumber, Label: "Salaries per Year"},
		{ID: "income-child-benefit", Name: "child_benefit", Type: FieldNumber, Label: "Child Benefit"},
		{ID: "income-other", Name: "other_income", Type: FieldNumber, Label: "Other Income"},
	},
	PrefillExpenses: {
		{ID: "expenses-rent", Name: "rent", Type: FieldNumber, Label: "Rent"},
		{ID: "expenses-utilities", Name: "utilities", Type: FieldNumber, Label: "Utilities"},
		{ID: "expenses-insurance", Name: "insurance", Type: FieldNumber, Label: "Insurance"},
		{ID: "expenses-living", Name: "living_expenses", Type: FieldNumber, Label: "Living Expenses"},
		{ID: "expenses-other", Name: "other_expenses", Type: FieldNumber, Label: "Other Expenses"},
	},
	PrefillAssets: {
		{ID: "assets-cash", Name: "cash", Type: FieldNumber, Label: "Cash"},
		{ID: "assets-securities", Name: "securities", Type: FieldNumber, Label: "Securities"},
		{ID: "assets-real-estate", Name: "real_estate", Type: FieldNumber, Label: "Real Estate"},
		{ID: "assets-other", Name: "other_assets", Type: FieldNumber, Label: "Other Assets"},
	},
	PrefillLiabilities: {
		{ID: "liabilities-mortgage", Name: "mortgage", Type: FieldNumber, Label: "Mortgage"},
		{ID: "liabilities-consumer-loans", Name: "consumer_loans", Type: FieldNumber, Label: "Consumer Loans"},
		{ID: "liabilities-other", Name: "other_liabilities", Type: FieldNumber, Label: "Other Liabilities"},
	},
}

// KnownLayout returns the fixed field set for a category, or nil for unknown
// categories.
func KnownLayout(source PrefillSource) []FormField {
	return knownLayouts[source]
}

// EffectiveFields returns the fields a renderer should present for the
// section: the known-category layout when the section matches one, otherwise
// the section's own fields.
func (s *Section) EffectiveFields() []FormField {
	if layout := KnownLayout(s.EffectivePrefillSource()); layout != nil {
		return layout
	}
	return s.Fields
}
