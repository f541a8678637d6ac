package helpers

import (
	"github.com/gookit/validate"
	"github.com/volatiletech/null"

	"github.com/coopfin/coopfin/types"
)

type ExecuteLiquidationParams struct {
	MemberIDs       []uint64              `json:"member_ids" form:"member_ids" validate:"required|ValidateMemberIDs"`
	LiquidationType types.LiquidationType `json:"liquidation_type" form:"liquidation_type" validate:"required|ValidateLiquidationType"`
	MemberContinues *bool                 `json:"member_continues" form:"member_continues"`
	Notes           null.String           `json:"notes" form:"notes"`
	CooperativeID   uint64                `json:"cooperative_id" form:"cooperative_id" validate:"required"`
}

func (p ExecuteLiquidationParams) Messages() map[string]string {
	invalid_message := "coop.liquidation.invalid_{field}"

	return validate.MS{
		"required":                invalid_message,
		"ValidateMemberIDs":       "coop.liquidation.empty_member_ids",
		"ValidateLiquidationType": "coop.liquidation.invalid_type",
	}
}

func (p ExecuteLiquidationParams) ValidateMemberIDs(MemberIDs []uint64) bool {
	return len(p.MemberIDs) > 0
}

func (p ExecuteLiquidationParams) ValidateLiquidationType(LiquidationType types.LiquidationType) bool {
	return types.ValidLiquidationType(p.LiquidationType)
}

