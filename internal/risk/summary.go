package risk

// Summarize condenses a range of snapshots into aggregate statistics for
// analytics views. An empty range yields a zero summary.
func Summarize(snaps []RiskSnapshot) RiskSummary {
	if len(snaps) == 0 {
		return RiskSummary{}
	}

	var (
		sum    float64
		min    = snaps[0].Result.DowntimeProbability
		max    = snaps[0].Result.DowntimeProbability
		alerts int
	)

	for _, snap := range snaps {
		p := snap.Result.DowntimeProbability
		sum += p
		if p < min {
			min = p
		}
		if p > max {
			max = p
		}
		if snap.Result.AlertTriggered {
			alerts++
		}
	}

	return RiskSummary{
		Count:          len(snaps),
		AvgProbability: sum / float64(len(snaps)),
		MinProbability: min,
		MaxProbability: max,
		Alerts:         alerts,
	}
}
