package algorithms

import (
	"regexp"
	"strconv"
	"strings"
)

// HLA alleles arrive in molecular form ("A*02:01", "DRB1*15:01") or already
// at antigen level ("A2", "DR15"). Matching happens at antigen level: locus
// letters plus the numeric group, leading zeros stripped.

var antigenPattern = regexp.MustCompile(`^([A-Z]+)\*?0*(\d+)`)

// NormalizeAllele reduces an allele string to its antigen identifier
// (A*02:01 -> A2, DRB1*15:01 -> DR15). Returns false for unparseable input,
// which callers drop rather than penalize.
func NormalizeAllele(allele string) (string, bool) {
	cleaned := strings.ToUpper(strings.TrimSpace(allele))
	if cleaned == "" {
		return "", false
	}
	m := antigenPattern.FindStringSubmatch(cleaned)
	if m == nil {
		return "", false
	}
	locus := normalizeLocus(m[1])
	if locus == "" {
		return "", false
	}
	group, err := strconv.Atoi(m[2])
	if err != nil || group == 0 {
		return "", false
	}
	return locus + strconv.Itoa(group), true
}

// normalizeLocus collapses gene names to the serological locus: DRB1 -> DR,
// DQB1 -> DQ, Cw -> C.
func normalizeLocus(raw string) string {
	switch {
	case strings.HasPrefix(raw, "DR"):
		return "DR"
	case strings.HasPrefix(raw, "DQ"):
		return "DQ"
	case strings.HasPrefix(raw, "DP"):
		return "DP"
	case strings.HasPrefix(raw, "C"):
		return "C"
	case raw == "A" || raw == "B":
		return raw
	}
	return ""
}

// antigensAtLocus collects the deduplicated antigen identifiers a typing map
// carries at one serological locus, tolerating raw gene-name keys.
func antigensAtLocus(typing map[string][]string, locus string) []string {
	var antigens []string
	seen := map[string]bool{}
	for rawLocus, alleles := range typing {
		if normalizeLocus(strings.ToUpper(strings.TrimSpace(rawLocus))) != locus {
			continue
		}
		for _, allele := range alleles {
			antigen, ok := NormalizeAllele(allele)
			if !ok || !strings.HasPrefix(antigen, locus) {
				continue
			}
			if !seen[antigen] {
				seen[antigen] = true
				antigens = append(antigens, antigen)
			}
		}
	}
	return antigens
}

// HLAScore computes the weighted antigen-match score in [0, 1] for one organ's
// locus weights. A locus missing data on either side is excluded from the
// aggregate; with no usable locus at all the score is a neutral 1.0.
func (e *Engine) HLAScore(donorTyping, recipientTyping map[string][]string, organ string) float64 {
	op, ok := e.policy.OrganPolicy(organ)
	if !ok {
		return 1.0
	}

	weightUsed := 0.0
	weighted := 0.0
	for locus, weight := range op.HLAWeights {
		donorAntigens := antigensAtLocus(donorTyping, locus)
		recipientAntigens := antigensAtLocus(recipientTyping, locus)
		if len(donorAntigens) == 0 || len(recipientAntigens) == 0 {
			continue
		}

		recipientSet := map[string]bool{}
		for _, ag := range recipientAntigens {
			recipientSet[ag] = true
		}
		matches := 0
		for _, ag := range donorAntigens {
			if recipientSet[ag] {
				matches++
			}
		}

		denom := len(donorAntigens)
		if denom > 2 {
			denom = 2
		}
		ratio := float64(matches) / float64(denom)
		if ratio > 1 {
			ratio = 1
		}

		weighted += ratio * weight
		weightUsed += weight
	}

	if weightUsed == 0 {
		return 1.0
	}
	return weighted / weightUsed
}
