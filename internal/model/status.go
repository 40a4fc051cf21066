package model

// RiderStatus is the approval state of a delivery-partner application.
type RiderStatus string

const (
	RiderPending     RiderStatus = "Pending"
	RiderUnderReview RiderStatus = "Under Review"
	RiderApproved    RiderStatus = "Approved"
	RiderRejected    RiderStatus = "Rejected"
)

var riderTransitions = map[RiderStatus][]RiderStatus{
	RiderPending:     {RiderUnderReview, RiderApproved, RiderRejected},
	RiderUnderReview: {RiderApproved, RiderRejected},
	RiderApproved:    {RiderRejected},
	RiderRejected:    {RiderUnderReview},
}

func (s RiderStatus) Valid() bool {
	_, ok := riderTransitions[s]
	return ok
}

// CanTransition reports whether the status may move to target. Writing the
// same status again is always allowed so repeated submissions stay idempotent.
func (s RiderStatus) CanTransition(target RiderStatus) bool {
	if s == target {
		return true
	}
	for _, next := range riderTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// ProductStatus is the admin approval state of a marketplace listing.
type ProductStatus string

const (
	ProductPending     ProductStatus = "Pending"
	ProductApproved    ProductStatus = "Approved"
	ProductDeactivated ProductStatus = "Deactivated"

	// ProductReactivate is a request label only. It is never persisted;
	// Normalize maps it to Approved before any write.
	ProductReactivate ProductStatus = "Re-activate"
)

var productTransitions = map[ProductStatus][]ProductStatus{
	ProductPending:     {ProductApproved, ProductDeactivated},
	ProductApproved:    {ProductDeactivated},
	ProductDeactivated: {ProductApproved},
}

func (s ProductStatus) Valid() bool {
	if s == ProductReactivate {
		return true
	}
	_, ok := productTransitions[s]
	return ok
}

// Normalize resolves request-only labels to the status actually stored.
func (s ProductStatus) Normalize() ProductStatus {
	if s == ProductReactivate {
		return ProductApproved
	}
	return s
}

func (s ProductStatus) CanTransition(target ProductStatus) bool {
	target = target.Normalize()
	if s == target {
		return true
	}
	for _, next := range productTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// CampaignProductStatus is the approval state of a product's campaign entry,
// independent of the product's own approval state.
type CampaignProductStatus string

const (
	CampaignProductPending  CampaignProductStatus = "Pending"
	CampaignProductApproved CampaignProductStatus = "Approved"
	CampaignProductRejected CampaignProductStatus = "Rejected"
)

var campaignProductTransitions = map[CampaignProductStatus][]CampaignProductStatus{
	CampaignProductPending:  {CampaignProductApproved, CampaignProductRejected},
	CampaignProductApproved: {CampaignProductRejected},
	CampaignProductRejected: {CampaignProductApproved},
}

func (s CampaignProductStatus) Valid() bool {
	_, ok := campaignProductTransitions[s]
	return ok
}

func (s CampaignProductStatus) CanTransition(target CampaignProductStatus) bool {
	if s == target {
		return true
	}
	for _, next := range campaignProductTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}
