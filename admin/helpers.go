package admin

import (
	"go.mongodb.org/mongo-driver/mongo/options"
)

func mongoArrayFilterOpts(filters []interface{}) *options.UpdateOptions {
	return options.Update().SetArrayFilters(options.ArrayFilters{Filters: filters})
}
