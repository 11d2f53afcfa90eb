package models

import (
	"errors"
	"fmt"
	"os"

	"github.com/evilsocket/islazy/log"
	"github.com/jinzhu/gorm"

	_ "github.com/jinzhu/gorm/dialects/mysql"
)

var (
	db *gorm.DB

	ErrNoDatabase = errors.New("database not available")
)

// Ready reports whether the database connection has been established.
func Ready() bool {
	return db != nil
}

func Setup() (err error) {
	hostname := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	username := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	name := os.Getenv("DB_NAME")

	log.Info("connecting to %s:%s ...", hostname, port)
	dbURL := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local", username, password, hostname, port, name)
	if db, err = gorm.Open("mysql", dbURL); err != nil {
		return
	}
	db.Debug().AutoMigrate(&KnownNetwork{}, &Sighting{})
	return
}

func Create(v interface{}) *gorm.DB {
	return db.Create(v)
}

func Update(v interface{}) *gorm.DB {
	return db.Model(v).Update(v)
}
