package cron

import (
	"github.com/jasonlvhit/gocron"

	"github.com/coopfin/coopfin/config"
	"github.com/coopfin/coopfin/models"
	"github.com/coopfin/coopfin/services/liquidation"
)

type LiquidationScanJob struct {
}

func (j *LiquidationScanJob) Process() {
	s := gocron.NewScheduler()
	s.Every(1).Day().At("06:00:00").Do(scanPendingLiquidations)
	<-s.Start()
}

// scanPendingLiquidations walks every cooperative and logs who is
// overdue. The scan itself warms the Redis cache the API reads from;
// executing a liquidation stays an explicit admin decision.
func scanPendingLiquidations() {
	var cooperatives []*models.Cooperative

	config.DataBase.Find(&cooperatives)

	for _, cooperative := range cooperatives {
		members, err := liquidation.PendingLiquidation(cooperative.ID)

		if err != nil {
			config.Logger.Errorf("Pending liquidation scan failed for cooperative %s: %v", cooperative.Code, err)
			continue
		}

		if len(members) == 0 {
			continue
		}

		config.Logger.Infof("Cooperative %s has %d members pending liquidation", cooperative.Code, len(members))

		for _, member := range members {
			config.Logger.Infof("Member %s (%s) overdue by %.1f years", member.UID, member.FullName, member.YearsSinceLastLiquidation)
		}
	}
}
