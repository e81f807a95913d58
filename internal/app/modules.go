package app

import (
	"github.com/vk/habitatgo/internal/carelog"
	"github.com/vk/habitatgo/internal/registry"
	"github.com/vk/habitatgo/modules/feeding"
	"github.com/vk/habitatgo/modules/shedding"
	"github.com/vk/habitatgo/modules/weight"
)

// coreModules is the definitive list of modules compiled into the habitatgo
// binary. They share one care-log store.
func coreModules(store *carelog.Store) []registry.Module {
	return []registry.Module{
		&feeding.Module{Store: store},
		&shedding.Module{Store: store},
		&weight.Module{Store: store},
	}
}
