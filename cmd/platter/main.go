package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/five82/platter/internal/app"
	"github.com/five82/platter/internal/ui"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	apiURL := flag.String("api", "", "restaurant API address, host:port or URL (optional)")
	theme := flag.String("theme", "", "color theme for this session: "+strings.Join(ui.ThemeNames(), ", "))
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{ConfigPath: *configPath, APIURL: *apiURL, Theme: *theme}
	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "platter: %v\n", err)
		return 1
	}
	return 0
}
