package worker

import (
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

// redisConnOpt übernimmt die Verbindung des geteilten go-redis-Clients für asynq.
// asynq öffnet eigene Verbindungen, daher nur Adresse, Auth und Timeouts.
func redisConnOpt(client *redis.Client) asynq.RedisClientOpt {
	o := client.Options()
	return asynq.RedisClientOpt{
		Addr:         o.Addr,
		Username:     o.Username,
		Password:     o.Password,
		DB:           o.DB,
		DialTimeout:  o.DialTimeout,
		ReadTimeout:  o.ReadTimeout,
		WriteTimeout: o.WriteTimeout,
	}
}
