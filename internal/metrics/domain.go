package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const LabelItemType = "item_type"

var ItemsCreated = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name:      "items_created_total",
		Help:      "Owned items created",
		Namespace: Namespace,
	},
	[]string{LabelItemType},
)

var ItemsDeleted = promauto.NewCounter(
	prometheus.CounterOpts{
		Name:      "items_deleted_total",
		Help:      "Owned items deleted",
		Namespace: Namespace,
	},
)

var CheckupsCompleted = promauto.NewCounter(
	prometheus.CounterOpts{
		Name:      "checkups_completed_total",
		Help:      "Checkups marked as completed",
		Namespace: Namespace,
	},
)
