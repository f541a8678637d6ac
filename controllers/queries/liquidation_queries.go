package queries

import (
	"github.com/coopfin/coopfin/controllers/helpers"
	"github.com/coopfin/coopfin/types"
)

type LiquidationFilters struct {
	MemberID        uint64                `query:"member_id" validate:"uint"`
	LiquidationType types.LiquidationType `query:"liquidation_type" validate:"ValidateLiquidationType"`
	Limit           int                   `query:"limit" validate:"uint"`
	Page            int                   `query:"page" validate:"uint"`
	TimeFrom        int64                 `query:"time_from" validate:"uint"`
	TimeTo          int64                 `query:"time_to" validate:"uint"`
	OrderBy         types.OrderBy         `query:"order_by" validate:"ValidateOrderBy"`
}

func (f LiquidationFilters) ValidateLiquidationType(val types.LiquidationType) bool {
	return len(val) == 0 || types.ValidLiquidationType(val)
}

func (f LiquidationFilters) ValidateOrderBy(val types.OrderBy) bool {
	return len(val) == 0 || val == types.OrderByAsc || val == types.OrderByDesc
}

func (f LiquidationFilters) Messages() map[string]string {
	return helpers.VaildateMessage("coop.liquidation")
}
