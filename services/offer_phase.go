package services

import "catering_app_go/models"

// canSendProposalFrom reports whether a proposal send is permitted from the
// given phase. Re-sending from PROPOSAL_SENT is allowed (revised proposals).
func canSendProposalFrom(phase string) bool {
	return phase == models.OfferPhaseDraft || phase == models.OfferPhaseProposalSent
}

// canSendFinalFrom reports whether a final offer send is permitted from the
// given phase. CUSTOMER_RESPONDED arrives via the public response channel;
// FINAL_DRAFT is reached when staff unlock an already-finalized offer.
func canSendFinalFrom(phase string) bool {
	return phase == models.OfferPhaseCustomerResponded || phase == models.OfferPhaseFinalDraft
}

// phaseAfterUnlock maps a locked phase back to its editable counterpart.
// Only FINAL_SENT needs remapping: proposal sends remain permitted from
// PROPOSAL_SENT, and CONFIRMED/PAID are external facts that unlocking must
// not rewrite.
func phaseAfterUnlock(phase string) string {
	if phase == models.OfferPhaseFinalSent {
		return models.OfferPhaseFinalDraft
	}
	return phase
}
