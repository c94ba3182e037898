package algorithms

import (
	"fmt"
	"strings"

	"organmatch_backend/internal/models"
)

// BloodCompatible reports whether the donor's ABO/Rh type can give to the
// recipient's per the compatibility table. Unknown types are incompatible.
func (e *Engine) BloodCompatible(donorType, recipientType string) bool {
	for _, t := range e.policy.BloodCompatibility[recipientType] {
		if t == donorType {
			return true
		}
	}
	return false
}

// CheckDonorEligibility screens a donor/organ pair against the hard age and
// medical exclusion rules. The reason string is user-facing.
func (e *Engine) CheckDonorEligibility(donor *models.Donor, organ string) (bool, string) {
	op, ok := e.policy.OrganPolicy(organ)
	if !ok {
		return false, fmt.Sprintf("no allocation policy for organ %q", organ)
	}

	if donor.Age < op.DonorAge.Min || donor.Age > op.DonorAge.Max {
		return false, fmt.Sprintf("donor age %d outside %s donor range %d-%d",
			donor.Age, organ, op.DonorAge.Min, op.DonorAge.Max)
	}

	history := strings.ToLower(donor.MedicalHistory + " " + donor.CauseOfDeath)
	if kw, found := findKeyword(history, e.policy.GeneralDonorExclusions); found {
		return false, fmt.Sprintf("donor medical history contains exclusion %q", kw)
	}
	if kw, found := findKeyword(history, op.DonorExclusions); found {
		return false, fmt.Sprintf("donor medical history contains %s exclusion %q", organ, kw)
	}

	return true, ""
}

// CheckRecipientEligibility screens a candidate against the organ-specific
// max age and the recipient exclusion keyword lists.
func (e *Engine) CheckRecipientEligibility(recipient *models.Recipient, organ string) (bool, string) {
	op, ok := e.policy.OrganPolicy(organ)
	if !ok {
		return false, fmt.Sprintf("no allocation policy for organ %q", organ)
	}

	if recipient.Age > op.RecipientMaxAge {
		return false, fmt.Sprintf("recipient age %d above %s recipient maximum %d",
			recipient.Age, organ, op.RecipientMaxAge)
	}

	history := strings.ToLower(recipient.MedicalHistory)
	if kw, found := findKeyword(history, e.policy.GeneralRecipientExclusions); found {
		return false, fmt.Sprintf("recipient medical history contains exclusion %q", kw)
	}
	if kw, found := findKeyword(history, op.RecipientExclusions); found {
		return false, fmt.Sprintf("recipient medical history contains %s exclusion %q", organ, kw)
	}

	return true, ""
}

// CheckAgeDifference applies the organ-specific donor/recipient age gap gate.
// Applied after both parties pass individual eligibility.
func (e *Engine) CheckAgeDifference(donor *models.Donor, recipient *models.Recipient, organ string) (bool, string) {
	op, ok := e.policy.OrganPolicy(organ)
	if !ok {
		return false, fmt.Sprintf("no allocation policy for organ %q", organ)
	}

	diff := donor.Age - recipient.Age
	if diff < 0 {
		diff = -diff
	}
	if diff > op.MaxAgeDifference {
		return false, fmt.Sprintf("age difference %d exceeds %s maximum %d",
			diff, organ, op.MaxAgeDifference)
	}
	return true, ""
}

// CrossmatchCompatible runs the virtual crossmatch: a donor antigen at the
// organ's weighted loci appearing in the recipient's unacceptable list is a
// hard exclusion. With no declared list the check passes.
func (e *Engine) CrossmatchCompatible(donor *models.Donor, recipient *models.Recipient, organ string) (bool, string) {
	if len(recipient.UnacceptableAntigens) == 0 {
		return true, ""
	}
	op, ok := e.policy.OrganPolicy(organ)
	if !ok {
		return false, fmt.Sprintf("no allocation policy for organ %q", organ)
	}

	// List entries may arrive in molecular form like the typing itself;
	// normalize them to antigen level so "A*02:01" still vetoes donor A2.
	unacceptable := map[string]bool{}
	for _, ag := range recipient.UnacceptableAntigens {
		if antigen, ok := NormalizeAllele(ag); ok {
			unacceptable[antigen] = true
			continue
		}
		unacceptable[strings.ToUpper(strings.TrimSpace(ag))] = true
	}

	typing := donor.GetHLATyping()
	for locus := range op.HLAWeights {
		for _, antigen := range antigensAtLocus(typing, locus) {
			if unacceptable[antigen] {
				return false, fmt.Sprintf("positive virtual crossmatch on donor antigen %s", antigen)
			}
		}
	}
	return true, ""
}

func findKeyword(text string, keywords []string) (string, bool) {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(text, kw) {
			return kw, true
		}
	}
	return "", false
}
