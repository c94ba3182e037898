package models

type DonorStatus string
type RecipientStatus string
type AllocationStatus string
type OrganType string
type RiskLevel string
type UrgencyLevel string

const (
	DonorStatusActive    DonorStatus = "active"
	DonorStatusAllocated DonorStatus = "allocated"
	DonorStatusExpired   DonorStatus = "expired"
	DonorStatusWithdrawn DonorStatus = "withdrawn"

	RecipientStatusActive       RecipientStatus = "active"
	RecipientStatusInactive     RecipientStatus = "inactive"
	RecipientStatusTransplanted RecipientStatus = "transplanted"
	RecipientStatusDeceased     RecipientStatus = "deceased"

	AllocationStatusProposed  AllocationStatus = "proposed"
	AllocationStatusAccepted  AllocationStatus = "accepted"
	AllocationStatusScheduled AllocationStatus = "scheduled"
	AllocationStatusCompleted AllocationStatus = "completed"
	AllocationStatusCancelled AllocationStatus = "cancelled"

	OrganKidney OrganType = "kidney"
	OrganHeart  OrganType = "heart"
	OrganLiver  OrganType = "liver"

	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"

	UrgencyRoutine  UrgencyLevel = "routine"
	UrgencyUrgent   UrgencyLevel = "urgent"
	UrgencyCritical UrgencyLevel = "critical"
)

// SupportedOrgans lists the organ kinds the allocation engine has policy for.
var SupportedOrgans = []OrganType{OrganKidney, OrganHeart, OrganLiver}

// BloodTypes lists the eight ABO/Rh groups the registry accepts.
var BloodTypes = []string{"O-", "O+", "A-", "A+", "B-", "B+", "AB-", "AB+"}
