package domain

// Owner is the places-context view of a user: just the owned-place set.
// PlaceIDs is kept ordered by insertion and free of duplicates.
type Owner struct {
	ID       string
	PlaceIDs []string
}

// AttachPlace appends id unless already present. It reports whether the set changed.
func (o *Owner) AttachPlace(id string) bool {
	for _, existing := range o.PlaceIDs {
		if existing == id {
			return false
		}
	}
	o.PlaceIDs = append(o.PlaceIDs, id)
	return true
}

// DetachPlace removes id, preserving the order of the rest. It reports whether the set changed.
func (o *Owner) DetachPlace(id string) bool {
	for i, existing := range o.PlaceIDs {
		if existing == id {
			o.PlaceIDs = append(o.PlaceIDs[:i:i], o.PlaceIDs[i+1:]...)
			return true
		}
	}
	return false
}
