package recon

// epsilon guards the divisions in distance and confidence when a
// tolerance is configured as zero. A zero tolerance still admits
// candidates whose deviation in that dimension is exactly zero, so the
// numerator is zero whenever the guard kicks in.
const epsilon = 1e-9

// Confidence scores a candidate pairing in [0, 1]. Exact matches are
// always 1.0. Fuzzy matches lose up to 0.5 per dimension as the
// deviation approaches its configured tolerance, so a pairing at both
// tolerance boundaries scores near 0 and one with tiny deviations
// scores near 1. Pure function, no state.
func Confidence(matchType MatchType, amountDeltaRatio float64, dateDeltaDays int, cfg Config) float64 {
	if matchType == MatchExact {
		return 1.0
	}

	tolAmount := cfg.AmountTolerancePercent.InexactFloat64()
	if tolAmount < epsilon {
		tolAmount = epsilon
	}
	tolDays := float64(cfg.DateToleranceDays)
	if tolDays < epsilon {
		tolDays = epsilon
	}

	c := 1.0 - 0.5*(amountDeltaRatio/tolAmount) - 0.5*(float64(dateDeltaDays)/tolDays)
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

// combinedDistance ranks eligible fuzzy candidates: the sum of each
// deviation normalized by its tolerance. Smaller is closer.
func combinedDistance(amountDeltaRatio float64, dateDeltaDays int, cfg Config) float64 {
	tolAmount := cfg.AmountTolerancePercent.InexactFloat64()
	if tolAmount < epsilon {
		tolAmount = epsilon
	}
	tolDays := float64(cfg.DateToleranceDays)
	if tolDays < epsilon {
		tolDays = epsilon
	}
	return amountDeltaRatio/tolAmount + float64(dateDeltaDays)/tolDays
}
