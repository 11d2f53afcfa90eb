package models

import "github.com/jinzhu/gorm"

// KnownNetwork is a stored credential set the station may join
// automatically.
type KnownNetwork struct {
	gorm.Model

	SSID       string `gorm:"size:32;not null;unique_index" json:"ssid"`
	Passphrase string `gorm:"size:64" json:"passphrase"`
	Security   string `gorm:"size:16;not null" json:"security"`
	Priority   int    `gorm:"not null;default:0" json:"priority"`
}

func FindKnownNetwork(ssid string) *KnownNetwork {
	var network KnownNetwork
	if !Ready() || ssid == "" {
		return nil
	} else if err := db.Where("ssid = ?", ssid).Take(&network).Error; err != nil {
		return nil
	}
	return &network
}

func KnownNetworks() ([]KnownNetwork, error) {
	if !Ready() {
		return nil, ErrNoDatabase
	}
	networks := make([]KnownNetwork, 0)
	if err := db.Order("priority desc").Find(&networks).Error; err != nil {
		return nil, err
	}
	return networks, nil
}

func SaveKnownNetwork(network *KnownNetwork) error {
	if !Ready() {
		return ErrNoDatabase
	}
	if existing := FindKnownNetwork(network.SSID); existing != nil {
		existing.Passphrase = network.Passphrase
		existing.Security = network.Security
		existing.Priority = network.Priority
		*network = *existing
		return db.Save(existing).Error
	}
	return db.Create(network).Error
}

func DeleteKnownNetwork(ssid string) error {
	if !Ready() {
		return ErrNoDatabase
	}
	network := FindKnownNetwork(ssid)
	if network == nil {
		return gorm.ErrRecordNotFound
	}
	return db.Delete(network).Error
}
