package models

import (
	"github.com/biezhi/gorm-paginator/pagination"
	"github.com/jinzhu/gorm"
)

// Sighting records one access point seen during a scan.
type Sighting struct {
	gorm.Model

	SSID     string `gorm:"size:32;not null" json:"ssid"`
	BSSID    string `gorm:"size:255;not null" json:"bssid"`
	Channel  int    `gorm:"not null" json:"channel"`
	RSSI     int    `gorm:"not null" json:"rssi"`
	Security string `gorm:"size:16;not null" json:"security"`
}

type SightingsBySecurity struct {
	Security string `json:"security"`
	Count    int    `json:"networks"`
}

func GetSightingsBySecurity() ([]SightingsBySecurity, error) {
	if !Ready() {
		return nil, ErrNoDatabase
	}
	results := make([]SightingsBySecurity, 0)
	if err := db.Raw("SELECT security,COUNT(DISTINCT bssid) AS count FROM sightings GROUP BY security ORDER BY count DESC").Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func GetPagedSightings(page int) (sightings []Sighting, total int, pages int) {
	if !Ready() {
		return nil, 0, 0
	}
	paginator := pagination.Paging(&pagination.Param{
		DB:      db,
		Page:    page,
		Limit:   25,
		OrderBy: []string{"id desc"},
	}, &sightings)
	return sightings, paginator.TotalRecord, paginator.TotalPage
}
