package redis_client

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/travigo/gtfs-extract/pkg/util"
)

var Client *redis.Client

const defaultConnectionAddress = "localhost:6379"
const defaultConnectionPassword = ""
const defaultDatabase = "0"

func Connect() error {
	address := util.GetEnvironmentVariable("REDIS_ADDRESS", defaultConnectionAddress)
	password := util.GetEnvironmentVariable("REDIS_PASSWORD", defaultConnectionPassword)

	database, err := strconv.Atoi(util.GetEnvironmentVariable("REDIS_DATABASE", defaultDatabase))
	if err != nil {
		return err
	}

	Client = redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       database,
	})

	return Client.Ping(context.Background()).Err()
}
