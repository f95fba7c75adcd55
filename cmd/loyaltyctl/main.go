// loyaltyctl is a small console for poking the loyalty platform with
// the SDK: list concepts, dump a menu, check the profile.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"

	loyalty "github.com/cwmarketing/loyalty-go"
	"github.com/cwmarketing/loyalty-go/pkg/config"
	"github.com/cwmarketing/loyalty-go/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	conceptID := flag.String("concept", "", "concept id for menu and cart commands")
	terminalID := flag.String("terminal", "", "terminal id for menu commands")
	page := flag.Int64("page", 1, "page number for listings")
	flag.Parse()

	logg := logger.New(logger.Options{ServiceName: "loyaltyctl"})

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "loyaltyctl",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	client, err := loyalty.New(ctx, cfg, loyalty.WithLogger(logg))
	requireResource(ctx, logg, "client", err)
	defer func() {
		if err := client.Close(); err != nil {
			logg.Error(ctx, "failed to close client", err)
		}
	}()

	command := flag.Arg(0)
	if command == "" {
		command = "concepts"
	}

	var out any
	switch command {
	case "concepts":
		out, err = client.GetConcepts(ctx, *page)
	case "terminals":
		out, err = client.GetTerminals(ctx, *page)
	case "menu":
		out, err = client.GetMenu(ctx, loyalty.MenuFilter{ConceptID: *conceptID, TerminalID: *terminalID, Page: *page})
	case "stories":
		out, err = client.GetStories(ctx, *conceptID, *page)
	case "profile":
		out, err = client.GetProfile(ctx)
	case "orders":
		out, err = client.GetOrders(ctx, *page)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", command)
		os.Exit(2)
	}
	if err != nil {
		logg.Error(ctx, fmt.Sprintf("%s failed", command), err)
		os.Exit(1)
	}

	encoded, err := json.MarshalIndent(out, "", "  ")
	requireResource(ctx, logg, "encode output", err)
	fmt.Println(string(encoded))
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
