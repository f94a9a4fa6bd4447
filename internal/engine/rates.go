package engine

import "cost-service/internal/model"

// RateResolver answers hourly-rate lookups against one snapshot's resources.
type RateResolver struct {
	byID map[string]model.Resource
}

// NewRateResolver indexes the given resources by id.
func NewRateResolver(resources []model.Resource) *RateResolver {
	byID := make(map[string]model.Resource, len(resources))
	for _, r := range resources {
		byID[r.ID] = r
	}
	return &RateResolver{byID: byID}
}

// LaborCost returns hours times the resource's hourly rate. An unknown
// resource costs zero and is reported through ok=false so the caller can
// record a diagnostic instead of aborting the rollup.
func (rr *RateResolver) LaborCost(resourceID string, hours float64) (amount float64, ok bool) {
	r, found := rr.byID[resourceID]
	if !found {
		return 0, false
	}
	return hours * r.HourlyRate, true
}

// Lookup returns the resource record itself.
func (rr *RateResolver) Lookup(resourceID string) (model.Resource, bool) {
	r, ok := rr.byID[resourceID]
	return r, ok
}
