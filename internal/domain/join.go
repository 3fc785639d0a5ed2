package domain

// FindSATScores returns the scores whose DBN matches dbn, if any.
func FindSATScores(scores []SATScores, dbn string) (*SATScores, bool) {
	for i := range scores {
		if scores[i].DBN == dbn {
			found := scores[i]
			return &found, true
		}
	}
	return nil, false
}

// IndexSATScores maps DBN to scores. The first record wins on duplicates.
func IndexSATScores(scores []SATScores) map[string]SATScores {
	idx := make(map[string]SATScores, len(scores))
	for _, s := range scores {
		if _, exists := idx[s.DBN]; !exists {
			idx[s.DBN] = s
		}
	}
	return idx
}
