package algorithms

// Clinical policy tables for the allocation engine. Loaded once and treated
// as immutable: these are policy constants, not runtime configuration.

// AgeRule is an inclusive donor age range for one organ.
type AgeRule struct {
	Min int
	Max int
}

// SizeBand is the acceptable donor/recipient weight ratio for one organ and
// the points awarded when the ratio falls inside it.
type SizeBand struct {
	Min    float64
	Max    float64
	Points float64
}

// ComorbidityBucket maps a comorbidity keyword family to its risk points.
type ComorbidityBucket struct {
	Name     string
	Keywords []string
	Points   float64
}

// OrganPolicy collects every organ-specific constant in one place so policy
// updates never require touching the engine code.
type OrganPolicy struct {
	// Default cold-ischemia window, used when the donor record carries no
	// explicit window.
	IschemiaLimitHours float64

	DonorAge         AgeRule
	RecipientMaxAge  int
	MaxAgeDifference int

	// HLA locus -> weight; normalized by the sum of weights actually used.
	HLAWeights map[string]float64
	// Points the weighted HLA score is multiplied into.
	HLAPoints float64

	SizeBand SizeBand

	// Keyword exclusion lists matched against lowercased free text.
	DonorExclusions     []string
	RecipientExclusions []string

	// Maximum risk points from HLA mismatch, scaled by (1 - hlaScore).
	HLAMismatchRiskMax float64
}

type Policy struct {
	// Recipient blood type -> donor blood types that can give to it.
	BloodCompatibility map[string][]string

	GeneralDonorExclusions     []string
	GeneralRecipientExclusions []string

	Organs map[string]OrganPolicy

	Comorbidities []ComorbidityBucket

	// Matches scoring at or below this are discarded, never returned.
	MinViableScore float64
}

// Fixed point allocations shared by all organs.
const (
	bloodTypePoints  = 30.0
	urgencyMaxPoints = 15.0
	genderPoints     = 5.0
	meldMaxPoints    = 20.0
)

// Risk classifier constants.
const (
	riskCap            = 80.0
	comorbidityCap     = 15.0
	riskMediumFloor    = 25.0
	riskHighFloor      = 50.0
	ischemiaElapsedMax = 8.0
)

const (
	OrganKidney = "kidney"
	OrganHeart  = "heart"
	OrganLiver  = "liver"
)

// DefaultPolicy returns the standing clinical policy tables.
func DefaultPolicy() *Policy {
	return &Policy{
		BloodCompatibility: map[string][]string{
			"O-":  {"O-"},
			"O+":  {"O-", "O+"},
			"A-":  {"O-", "A-"},
			"A+":  {"O-", "O+", "A-", "A+"},
			"B-":  {"O-", "B-"},
			"B+":  {"O-", "O+", "B-", "B+"},
			"AB-": {"O-", "A-", "B-", "AB-"},
			"AB+": {"O-", "O+", "A-", "A+", "B-", "B+", "AB-", "AB+"},
		},

		GeneralDonorExclusions: []string{
			"active infection",
			"malignancy",
			"psychiatric illness",
			"substance abuse",
		},
		GeneralRecipientExclusions: []string{
			"active malignancy",
			"uncontrolled infection",
			"active substance abuse",
		},

		Organs: map[string]OrganPolicy{
			OrganKidney: {
				IschemiaLimitHours: 24,
				DonorAge:           AgeRule{Min: 18, Max: 70},
				RecipientMaxAge:    75,
				MaxAgeDifference:   20,
				HLAWeights:         map[string]float64{"DR": 0.5, "B": 0.3, "A": 0.2},
				HLAPoints:          35,
				SizeBand:           SizeBand{Min: 0.5, Max: 2.0, Points: 15},
				DonorExclusions: []string{
					"polycystic kidney disease",
					"chronic kidney disease",
					"renal failure",
				},
				RecipientExclusions: []string{
					"non-compliance with dialysis",
					"untreated urological abnormality",
				},
				HLAMismatchRiskMax: 20,
			},
			OrganHeart: {
				IschemiaLimitHours: 6,
				DonorAge:           AgeRule{Min: 0, Max: 65},
				RecipientMaxAge:    70,
				MaxAgeDifference:   10,
				HLAWeights:         map[string]float64{"DR": 0.4, "B": 0.35, "A": 0.25},
				HLAPoints:          25,
				SizeBand:           SizeBand{Min: 0.7, Max: 1.3, Points: 25},
				DonorExclusions: []string{
					"cardiomyopathy",
					"coronary artery disease",
					"myocardial infarction",
				},
				RecipientExclusions: []string{
					"irreversible pulmonary hypertension",
					"fixed pulmonary vascular resistance",
				},
				HLAMismatchRiskMax: 15,
			},
			OrganLiver: {
				IschemiaLimitHours: 12,
				DonorAge:           AgeRule{Min: 18, Max: 70},
				RecipientMaxAge:    75,
				MaxAgeDifference:   25,
				HLAWeights:         map[string]float64{"DR": 1.0},
				HLAPoints:          10,
				SizeBand:           SizeBand{Min: 0.6, Max: 1.5, Points: 20},
				DonorExclusions: []string{
					"cirrhosis",
					"hepatitis b",
					"hepatitis c",
					"liver failure",
				},
				RecipientExclusions: []string{
					"active alcohol use",
					"extrahepatic malignancy",
				},
				HLAMismatchRiskMax: 8,
			},
		},

		Comorbidities: []ComorbidityBucket{
			{Name: "diabetes", Keywords: []string{"diabetes", "diabetic"}, Points: 3},
			{Name: "hypertension", Keywords: []string{"hypertension", "high blood pressure"}, Points: 3},
			{Name: "coronary_disease", Keywords: []string{"coronary", "heart disease", "cardiac disease"}, Points: 4},
			{Name: "infection", Keywords: []string{"infection", "sepsis"}, Points: 4},
			{Name: "malignancy", Keywords: []string{"malignancy", "cancer", "tumor"}, Points: 4},
			{Name: "smoking", Keywords: []string{"smoking", "smoker", "tobacco"}, Points: 2},
			{Name: "substance_abuse", Keywords: []string{"substance abuse", "alcohol abuse", "drug abuse"}, Points: 2},
		},

		MinViableScore: 30,
	}
}

// OrganPolicy returns the policy for one organ kind.
func (p *Policy) OrganPolicy(organ string) (OrganPolicy, bool) {
	op, ok := p.Organs[organ]
	return op, ok
}
