package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/shardkeep/dshard"
	"github.com/shardkeep/dshard/gateway"
	"github.com/shardkeep/dshard/manager"
)

var flagIntents int64

func init() {
	flag.Int64Var(&flagIntents, "intents", 513, "gateway intents bitmask")
	flag.Parse()
}

func main() {
	token := os.Getenv("DISCORD_TOKEN")
	if token == "" {
		log.Fatal("no DISCORD_TOKEN provided")
	}

	client, err := dshard.New(token,
		dshard.WithShards("auto"),
		dshard.WithIntents(flagIntents),
		dshard.WithEventHandler(logFleetEvent),
	)
	if err != nil {
		log.Fatal(err)
	}

	client.Subscribe("MESSAGE_CREATE", func(shardID int, d gateway.Dispatch) {
		log.Printf("[shard %d] MESSAGE_CREATE: %s", shardID, string(d.Data))
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := client.Start(ctx); err != nil {
		log.Fatal(err)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	<-sig

	client.Stop(ctx)
}

func logFleetEvent(evt manager.FleetEvent) {
	log.Printf("shard %d %s: %s", evt.ShardID, evt.Type, evt.Msg)
}
