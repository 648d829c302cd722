package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"gym-management-be/pkg/events"
	pktNats "gym-management-be/pkg/nats"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

// events-tail prints audit events as they arrive on the NATS stream.
// Usage: events-tail [LOG_TYPE]
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	url := os.Getenv("NATS_URL")
	if url == "" {
		log.Fatal("Error: NATS_URL is not set")
	}

	sub, err := pktNats.NewSubscriber(url)
	if err != nil {
		log.Fatal("Error: ", err)
	}
	defer sub.Close()

	logType := ""
	if len(os.Args) > 1 {
		logType = os.Args[1]
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	durable := "events-tail"
	if logType != "" {
		durable += "-" + logType
	}

	err = sub.Subscribe(ctx, logType, durable, func(ctx context.Context, event events.Envelope) error {
		body, _ := json.Marshal(event.Data)
		color.New(color.FgCyan, color.Bold).Printf("%s ", event.OccurredAt.Local().Format("15:04:05"))
		color.New(color.FgYellow).Printf("%-12s ", event.Type)
		color.White("%s", body)
		return nil
	})
	if err != nil {
		log.Fatal("Error: ", err)
	}

	color.Green("Tailing %s", events.Subject(logType))
	<-ctx.Done()
}
