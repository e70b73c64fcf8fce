package models

// AppSettings is a singleton document keyed "appSettings", lazily created on
// first read.
type AppSettings struct {
	Key              string `json:"-" bson:"key"`
	OrderingEnabled  bool   `json:"orderingEnabled" bson:"ordering_enabled"`
	OrderClosingTime string `json:"orderClosingTime" bson:"order_closing_time"` // "HH:MM", 24h
}

const AppSettingsKey = "appSettings"

func DefaultAppSettings() AppSettings {
	return AppSettings{
		Key:              AppSettingsKey,
		OrderingEnabled:  true,
		OrderClosingTime: "22:00",
	}
}
