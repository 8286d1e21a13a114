package restaurant

import (
	"github.com/shopspring/decimal"

	"github.com/Shubhangam-Singh/food-delivery-app/pkg/pagination"
)

// ListFilters describe the supported filter knobs for the browse endpoint.
type ListFilters struct {
	Search         string           `json:"search,omitempty"`
	Cuisine        string           `json:"cuisine,omitempty"`
	MinRating      *float64         `json:"minRating,omitempty"`
	MaxDeliveryFee *decimal.Decimal `json:"maxDeliveryFee,omitempty"`
}

// Sort columns accepted by the browse endpoint. Anything else falls back to
// the rating default.
const (
	SortByRating      = "rating"
	SortByDeliveryFee = "deliveryFee"
	SortByMinOrder    = "minOrder"
	SortByName        = "name"
	SortByCreatedAt   = "createdAt"
)

var sortColumns = map[string]string{
	SortByRating:      "rating",
	SortByDeliveryFee: "delivery_fee",
	SortByMinOrder:    "min_order",
	SortByName:        "name",
	SortByCreatedAt:   "created_at",
}

// ListInput captures the inputs needed to paginate/filter the catalog.
type ListInput struct {
	Filters    ListFilters
	SortBy     string
	SortOrder  string
	Pagination pagination.Params
}

func (in ListInput) orderClause() string {
	column, ok := sortColumns[in.SortBy]
	if !ok {
		column = "rating"
	}
	direction := "DESC"
	if in.SortOrder == "asc" {
		direction = "ASC"
	}
	return column + " " + direction
}
