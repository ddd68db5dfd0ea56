package usecase

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	stageExact   = "exact"
	stageWords   = "words"
	stageTrimmed = "trimmed"
	stageNone    = "none"
)

var (
	// searchStageTotal counts searches by the degradation stage that answered them.
	searchStageTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_search_stage_total",
		Help: "Product searches by the stage that produced the result",
	}, []string{"stage"})

	productsComposed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_products_composed_total",
		Help: "Products composed successfully",
	})
)
