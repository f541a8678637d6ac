package liquidation

import (
	"strconv"
	"time"

	"github.com/coopfin/coopfin/config"
	"github.com/coopfin/coopfin/models"
)

func pendingCacheKey(cooperative_id uint64) string {
	return "coopfin:liquidations:pending:" + strconv.FormatUint(cooperative_id, 10)
}

// PendingLiquidation returns the cooperative's active members whose time
// since affiliation (or since their last liquidation) exceeds the
// configured threshold, most overdue first. Pure read; the result is
// cached briefly in Redis since the daemon and the admin UI poll it.
func PendingLiquidation(cooperative_id uint64) ([]models.MemberJSON, error) {
	members_json := make([]models.MemberJSON, 0)

	if config.Redis != nil {
		if err := config.Redis.GetKey(pendingCacheKey(cooperative_id), &members_json); err == nil {
			return members_json, nil
		}
	}

	var members []*models.Member

	cutoff := time.Now().AddDate(-config.App.LiquidationThresholdYears, 0, 0)

	err := config.DataBase.
		Where("cooperative_id = ? AND is_active = ?", cooperative_id, true).
		Where("COALESCE(last_liquidation_date, affiliation_date) <= ?", cutoff).
		Order("COALESCE(last_liquidation_date, affiliation_date) ASC").
		Find(&members).Error

	if err != nil {
		return nil, err
	}

	for _, member := range members {
		members_json = append(members_json, member.ToJSON())
	}

	if config.Redis != nil {
		config.Redis.SetKey(pendingCacheKey(cooperative_id), members_json, time.Duration(config.App.PendingCacheTTLSeconds)*time.Second)
	}

	return members_json, nil
}

func InvalidatePendingCache(cooperative_id uint64) {
	if config.Redis == nil {
		return
	}

	if err := config.Redis.DeleteKey(pendingCacheKey(cooperative_id)); err != nil {
		config.Logger.Errorf("Failed to invalidate pending liquidation cache for cooperative %d: %v", cooperative_id, err)
	}
}
