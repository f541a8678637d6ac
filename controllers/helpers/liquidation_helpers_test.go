package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coopfin/coopfin/types"
)

func TestExecuteLiquidationParamsValid(t *testing.T) {
	continues := true
	payload := ExecuteLiquidationParams{
		MemberIDs:       []uint64{1, 2},
		LiquidationType: types.LiquidationTypePeriodic,
		MemberContinues: &continues,
		CooperativeID:   1,
	}

	err_src := new(Errors)
	Vaildate(payload, err_src)

	assert.Equal(t, 0, err_src.Size())
}

func TestExecuteLiquidationParamsEmptyMemberIDs(t *testing.T) {
	payload := ExecuteLiquidationParams{
		LiquidationType: types.LiquidationTypeExit,
		CooperativeID:   1,
	}

	assert.False(t, payload.ValidateMemberIDs(payload.MemberIDs))
}

func TestExecuteLiquidationParamsInvalidType(t *testing.T) {
	payload := ExecuteLiquidationParams{
		MemberIDs:       []uint64{1},
		LiquidationType: "partial",
		CooperativeID:   1,
	}

	assert.False(t, payload.ValidateLiquidationType(payload.LiquidationType))
}
