package main

import (
	"flag"
	"net/http"
	"os"

	"github.com/labstack/gommon/log"

	"github.com/konczyk/irrops/internal/api"
	"github.com/konczyk/irrops/internal/history"
	"github.com/konczyk/irrops/internal/schedule"
)

func main() {
	scenario := flag.String("scenario", envOr("SCENARIO", "data/default.json"), "path to the JSON scenario file")
	historyDB := flag.String("history", envOr("HISTORY_DB", "data/history.db"), "path to the disruption history database (empty disables it)")
	flag.Parse()

	sched, err := schedule.LoadFile(*scenario)
	if err != nil {
		log.Fatalf("load scenario: %v", err)
	}
	sched.Assign()
	log.Infof("loaded %d flights from %s", len(sched.Flights()), *scenario)

	var store *history.Store
	if *historyDB != "" {
		store, err = history.Open(*historyDB)
		if err != nil {
			log.Fatalf("open history: %v", err)
		}
		defer store.Close()
	}

	handler := api.New(sched, store)

	port := getPort()
	log.Infof("Server listening on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getPort() string {
	if p := os.Getenv("PORT"); p != "" {
		return p
	}
	return "4000"
}
