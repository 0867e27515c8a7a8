package records

import "aruvadai/internal/core"

// migrateLegacyHarvests rewrites harvest records persisted by earlier
// versions, which stored only a combined net total and no commission.
// Such records get GrossTotal = NetTotal + Commission (commission zero
// when absent), so no reader ever needs a per-record fallback again.
// Returns the number of records rewritten; running twice changes nothing.
func migrateLegacyHarvests(entries []core.HarvestEntry) int {
	n := 0
	for i := range entries {
		e := &entries[i]
		if e.GrossTotal.IsZero() && !e.NetTotal.IsZero() {
			e.GrossTotal = e.NetTotal.Add(e.Commission)
			n++
		}
	}
	return n
}
