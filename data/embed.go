package data

import (
	_ "embed"
)

//go:embed seed/financial-profile.json
var SeedFinancialProfile []byte
