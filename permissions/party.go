package permissions

// Party predicates resolve the "customer or business owner" checks that guard
// booking, review, and inquiry mutations. They are pure so every domain
// service shares the exact same rule instead of re-implementing the two-branch
// comparison.

// IsParty reports whether the actor is either the customer on the resource or
// the owner of the business it belongs to.
func IsParty(actorID, customerID, ownerID string) bool {
	return actorID != "" && (actorID == customerID || actorID == ownerID)
}

// IsOwner reports whether the actor owns the business.
func IsOwner(actorID, ownerID string) bool {
	return actorID != "" && actorID == ownerID
}

// IsAuthor reports whether the actor created the resource.
func IsAuthor(actorID, authorID string) bool {
	return actorID != "" && actorID == authorID
}
