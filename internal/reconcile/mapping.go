package reconcile

import (
	"strings"

	"github.com/pocketledger/backend/internal/models"
)

// accountTypeFor maps the aggregator's (type, subtype) pair to the local
// account type. Unknown pairs map to "other".
func accountTypeFor(kind, subtype string) models.AccountType {
	switch strings.ToLower(kind) {
	case "depository":
		switch strings.ToLower(subtype) {
		case "savings", "money market", "cd":
			return models.AccountTypeSavings
		default:
			return models.AccountTypeChecking
		}
	case "credit":
		return models.AccountTypeCreditCard
	case "investment", "brokerage":
		return models.AccountTypeInvestment
	case "loan":
		switch strings.ToLower(subtype) {
		case "mortgage", "home equity":
			return models.AccountTypeMortgage
		default:
			return models.AccountTypeLoan
		}
	default:
		return models.AccountTypeOther
	}
}

// categoryLabels maps the aggregator's coarse category labels to the local
// category set. Lookups are case-insensitive, unknown labels map to "other".
var categoryLabels = map[string]models.Category{
	"groceries":        models.CategoryGroceries,
	"supermarkets":     models.CategoryGroceries,
	"food and drink":   models.CategoryDining,
	"restaurants":      models.CategoryDining,
	"coffee":           models.CategoryDining,
	"transportation":   models.CategoryTransportation,
	"gas":              models.CategoryTransportation,
	"parking":          models.CategoryTransportation,
	"entertainment":    models.CategoryEntertainment,
	"recreation":       models.CategoryEntertainment,
	"shops":            models.CategoryShopping,
	"shopping":         models.CategoryShopping,
	"utilities":        models.CategoryUtilities,
	"rent":             models.CategoryHousing,
	"housing":          models.CategoryHousing,
	"mortgage":         models.CategoryHousing,
	"medical":          models.CategoryHealthcare,
	"healthcare":       models.CategoryHealthcare,
	"personal care":    models.CategoryPersonalCare,
	"education":        models.CategoryEducation,
	"travel":           models.CategoryTravel,
	"airlines":         models.CategoryTravel,
	"lodging":          models.CategoryTravel,
	"subscription":     models.CategorySubscriptions,
	"subscriptions":    models.CategorySubscriptions,
	"income":           models.CategoryIncome,
	"payroll":          models.CategoryIncome,
	"transfer":         models.CategoryTransfer,
	"bank fees":        models.CategoryFees,
	"fees":             models.CategoryFees,
	"interest charged": models.CategoryFees,
}

// categoryForLabel maps an external category label to the local category.
func categoryForLabel(label string) models.Category {
	if category, ok := categoryLabels[strings.ToLower(strings.TrimSpace(label))]; ok {
		return category
	}
	return models.CategoryOther
}
