package services

// ServiceContainer holds every service the handlers depend on.
type ServiceContainer struct {
	MatchingService   MatchingService
	DonorService      DonorService
	RecipientService  RecipientService
	AllocationService AllocationService
}
