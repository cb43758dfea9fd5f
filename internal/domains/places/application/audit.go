package application

import (
	"context"
	"fmt"
	"sort"

	"github.com/Apurer/go-gin-places-api/internal/domains/places/ports"
)

// Inconsistency kinds reported by AuditOwnership.
const (
	// A place whose id is missing from its creator's set.
	UnlistedPlace = "unlisted_place"
	// A place whose creator does not exist.
	OrphanPlace = "orphan_place"
	// A set entry that points at no place.
	DanglingEntry = "dangling_entry"
)

// Inconsistency is one broken link between a place and its owner.
type Inconsistency struct {
	Kind    string
	PlaceID string
	OwnerID string
}

func (i Inconsistency) String() string {
	return fmt.Sprintf("%s place=%s owner=%s", i.Kind, i.PlaceID, i.OwnerID)
}

// AuditOwnership compares every place with every owned-place set. It only reads.
func AuditOwnership(ctx context.Context, places ports.Repository, owners ports.OwnerRepository) ([]Inconsistency, error) {
	allPlaces, err := places.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list places: %w", err)
	}
	allOwners, err := owners.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list owners: %w", err)
	}

	placeCreators := make(map[string]string, len(allPlaces))
	for _, p := range allPlaces {
		placeCreators[p.Entity.ID] = p.Entity.CreatorID
	}
	ownedSets := make(map[string]map[string]struct{}, len(allOwners))
	var findings []Inconsistency
	for _, owner := range allOwners {
		set := make(map[string]struct{}, len(owner.PlaceIDs))
		for _, placeID := range owner.PlaceIDs {
			set[placeID] = struct{}{}
			if _, ok := placeCreators[placeID]; !ok {
				findings = append(findings, Inconsistency{Kind: DanglingEntry, PlaceID: placeID, OwnerID: owner.ID})
			}
		}
		ownedSets[owner.ID] = set
	}
	for placeID, creatorID := range placeCreators {
		set, ok := ownedSets[creatorID]
		if !ok {
			findings = append(findings, Inconsistency{Kind: OrphanPlace, PlaceID: placeID, OwnerID: creatorID})
			continue
		}
		if _, listed := set[placeID]; !listed {
			findings = append(findings, Inconsistency{Kind: UnlistedPlace, PlaceID: placeID, OwnerID: creatorID})
		}
	}
	sort.Slice(findings, func(i, j int) bool {
		if findings[i].Kind != findings[j].Kind {
			return findings[i].Kind < findings[j].Kind
		}
		return findings[i].PlaceID < findings[j].PlaceID
	})
	return findings, nil
}
