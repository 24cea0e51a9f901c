package service

import (
	"sort"

	"github.com/noah-isme/tutor-dash-api/internal/models"
)

// ClusterService groups the records of one cell (teacher, day) into
// maximal runs of transitively overlapping intervals using a single sweep
// over the records sorted by start minute.
type ClusterService struct{}

// NewClusterService constructs a cluster service.
func NewClusterService() *ClusterService {
	return &ClusterService{}
}

// Cluster partitions the records. Records with unknown intervals become
// trailing singleton clusters in their original order so they stay visible
// without polluting the merge. The input slice is not modified.
func (s *ClusterService) Cluster(records []models.ScheduleRecord) []models.Cluster {
	var sortable, unknown []models.ScheduleRecord
	for _, rec := range records {
		if rec.Interval.Valid() {
			sortable = append(sortable, rec)
		} else {
			unknown = append(unknown, rec)
		}
	}

	// stable sort keeps the upstream order among equal start times, which
	// pins the within-cluster record order across renders
	sort.SliceStable(sortable, func(i, j int) bool {
		return sortable[i].Interval.StartMinute < sortable[j].Interval.StartMinute
	})

	var clusters []models.Cluster
	for _, rec := range sortable {
		if n := len(clusters); n > 0 && rec.Interval.StartMinute <= clusters[n-1].MaxEnd {
			last := &clusters[n-1]
			last.Records = append(last.Records, rec)
			if rec.Interval.EndMinute > last.MaxEnd {
				last.MaxEnd = rec.Interval.EndMinute
			}
			continue
		}
		clusters = append(clusters, models.Cluster{
			Records:  []models.ScheduleRecord{rec},
			MinStart: rec.Interval.StartMinute,
			MaxEnd:   rec.Interval.EndMinute,
		})
	}

	for _, rec := range unknown {
		clusters = append(clusters, models.Cluster{
			Records:  []models.ScheduleRecord{rec},
			MinStart: models.MinutesUnknown,
			MaxEnd:   models.MinutesUnknown,
		})
	}
	return clusters
}
