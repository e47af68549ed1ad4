package store

import (
	"airbnb-webmap/models"
	"airbnb-webmap/storage"
)

// pairKey identifies a (neighbourhood, room type) pair by dictionary IDs.
type pairKey struct {
	neighbourhood int32
	roomType      int32
}

// ListingStore holds the loaded listings. It is never mutated after
// construction, so concurrent readers need no locking.
type ListingStore struct {
	listings []models.Listing

	// Dictionaries (ID -> string), in first-seen order
	neighbourhoodDict []string
	roomTypeDict      []string

	neighbourhoodIDs map[string]int32
	roomTypeIDs      map[string]int32

	// positions of each pair's listings, in load order
	buckets map[pairKey][]int
}

// New builds a store over a private copy of listings.
func New(listings []models.Listing) *ListingStore {
	s := &ListingStore{
		listings:         make([]models.Listing, len(listings)),
		neighbourhoodIDs: make(map[string]int32),
		roomTypeIDs:      make(map[string]int32),
		buckets:          make(map[pairKey][]int),
	}
	copy(s.listings, listings)

	for i, l := range s.listings {
		key := pairKey{
			neighbourhood: intern(l.Neighbourhood, s.neighbourhoodIDs, &s.neighbourhoodDict),
			roomType:      intern(l.RoomType, s.roomTypeIDs, &s.roomTypeDict),
		}
		s.buckets[key] = append(s.buckets[key], i)
	}
	return s
}

// Load reads every listing from src and builds a store.
// Errors are returned as *models.DataLoadError.
func Load(src storage.ListingSource) (*ListingStore, error) {
	listings, err := src.ReadListings()
	if err != nil {
		return nil, asDataLoadError(src.Name(), err)
	}
	return New(listings), nil
}

func intern(value string, ids map[string]int32, dict *[]string) int32 {
	if id, ok := ids[value]; ok {
		return id
	}
	id := int32(len(*dict))
	*dict = append(*dict, value)
	ids[value] = id
	return id
}

// Len returns the number of listings held.
func (s *ListingStore) Len() int {
	return len(s.listings)
}

// DistinctNeighbourhoods returns every neighbourhood value once, in first-seen order.
func (s *ListingStore) DistinctNeighbourhoods() []string {
	return append([]string(nil), s.neighbourhoodDict...)
}

// DistinctRoomTypes returns every room type value once, in first-seen order.
func (s *ListingStore) DistinctRoomTypes() []string {
	return append([]string(nil), s.roomTypeDict...)
}

// Filter returns, in load order, every listing in the given neighbourhood with
// the given room type whose price is strictly below maxPriceExclusive.
// The returned slice is owned by the caller.
func (s *ListingStore) Filter(neighbourhood, roomType string, maxPriceExclusive float64) []models.Listing {
	nID, ok := s.neighbourhoodIDs[neighbourhood]
	if !ok {
		return []models.Listing{}
	}
	rID, ok := s.roomTypeIDs[roomType]
	if !ok {
		return []models.Listing{}
	}

	bucket := s.buckets[pairKey{neighbourhood: nID, roomType: rID}]
	out := make([]models.Listing, 0, len(bucket))
	for _, pos := range bucket {
		if l := s.listings[pos]; l.Price < maxPriceExclusive {
			out = append(out, l)
		}
	}
	return out
}
