package services

import (
	"sort"
	"sync"

	"airbnb-webmap/models"
	"airbnb-webmap/utils"
)

// OptionSource supplies the distinct filter values of a store.
type OptionSource interface {
	DistinctNeighbourhoods() []string
	DistinctRoomTypes() []string
}

// SweepRow summarises one (neighbourhood, room type) pair at a price bound.
type SweepRow struct {
	Neighbourhood string   `json:"neighbourhood"`
	RoomType      string   `json:"room_type"`
	Count         int      `json:"count"`
	MeanPrice     *float64 `json:"mean_price"`
}

// SweepService runs the aggregator for every filter pair on a worker pool.
type SweepService struct {
	aggregator *Aggregator
	options    OptionSource
	workers    int
	logger     *utils.Logger
}

// NewSweepService creates a SweepService using at most workers goroutines.
func NewSweepService(aggregator *Aggregator, options OptionSource, workers int, logger *utils.Logger) *SweepService {
	return &SweepService{aggregator: aggregator, options: options, workers: workers, logger: logger}
}

// Run queries every pair below maxPrice and returns the non-empty ones,
// largest first, ties ordered by neighbourhood then room type.
func (s *SweepService) Run(maxPrice float64) ([]SweepRow, error) {
	if err := checkMaxPrice(maxPrice); err != nil {
		return nil, err
	}

	neighbourhoods := s.options.DistinctNeighbourhoods()
	roomTypes := s.options.DistinctRoomTypes()

	pool := utils.NewWorkerPool(s.workers, 0)
	var (
		mu   sync.Mutex
		rows []SweepRow
	)

	for _, n := range neighbourhoods {
		for _, rt := range roomTypes {
			pool.Submit(func() {
				price := maxPrice
				res, err := s.aggregator.Query(models.Filter{Neighbourhood: n, RoomType: rt, MaxPrice: &price})
				if err != nil {
					s.logger.Error("[sweep] %s / %s: %v", n, rt, err)
					return
				}
				if res.Count == 0 {
					return
				}
				mu.Lock()
				rows = append(rows, SweepRow{Neighbourhood: n, RoomType: rt, Count: res.Count, MeanPrice: res.MeanPrice})
				mu.Unlock()
			})
		}
	}
	pool.Wait()

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		if rows[i].Neighbourhood != rows[j].Neighbourhood {
			return rows[i].Neighbourhood < rows[j].Neighbourhood
		}
		return rows[i].RoomType < rows[j].RoomType
	})

	s.logger.Info("[sweep] %d of %d pairs have listings below %.0f",
		len(rows), len(neighbourhoods)*len(roomTypes), maxPrice)
	return rows, nil
}
