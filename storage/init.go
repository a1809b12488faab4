package storage

import (
	"Habitual/storage/database"
	"Habitual/storage/mq"
	"Habitual/storage/redis"
)

// Init brings up every storage backend in dependency order.
func Init() error {
	if err := database.Init(); err != nil {
		return err
	}

	if err := redis.Init(); err != nil {
		return err
	}

	if err := mq.Init(); err != nil {
		return err
	}

	return nil
}
