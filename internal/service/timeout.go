package service

import (
	"time"

	"github.com/librozavisim/lor-simulator/internal/constants"
	"github.com/librozavisim/lor-simulator/internal/logging"
)

// defaultPlanningTimeout bounds how long a battle may idle in planning
// before the sweep forces the round through.
const defaultPlanningTimeout = 5 * time.Minute

// SetPlanningTimeout overrides the planning deadline window for battles
// saved after the call.
func (s *Service) SetPlanningTimeout(d time.Duration) {
	s.planningTimeout = d
}

// ResolveTimedOutBattles force-resolves every planning-phase battle whose
// deadline has passed: unplanned slots simply stand idle and the round
// runs with whatever was submitted. Errors are logged per battle, not
// propagated, so one stuck row cannot stall the sweep.
func (s *Service) ResolveTimedOutBattles(now time.Time) {
	battles, err := s.repo.FindTimedOutBattles(now)
	if err != nil {
		logging.Error("failed to query timed-out battles", err, nil)
		return
	}
	for _, rec := range battles {
		if _, err := s.Resolve(rec.ID); err != nil {
			logging.Error("failed to resolve timed-out battle", err, logging.Fields{
				constants.LogFieldBattleID: rec.ID,
			})
			continue
		}
		logging.Info("timed-out battle resolved", logging.Fields{
			constants.LogFieldBattleID: rec.ID,
		})
	}
}
