package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Mshel/campmisty/internal/config"
	"github.com/Mshel/campmisty/internal/game"
	"github.com/Mshel/campmisty/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Printf("error %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.ParseClient(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Printf("error %v\n", err)
		os.Exit(2)
	}
	level, err := cfg.Level()
	if err != nil {
		fmt.Printf("error %v\n", err)
		os.Exit(2)
	}

	// the terminal belongs to bubbletea, logs go to a file
	logFile, err := tea.LogToFile(cfg.LogFile, "campmisty")
	if err != nil {
		fmt.Printf("error %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger := log.NewWithOptions(logFile, log.Options{ReportTimestamp: true, Level: level})
	log.SetDefault(logger)

	history, err := game.NewMatchHistoryService(cfg.HistoryDBPath)
	if err != nil {
		log.Error("Match history disabled", "path", cfg.HistoryDBPath, "err", err)
	} else {
		defer history.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := ui.Options{
		History:      history,
		AllowDirect:  true,
		Addr:         cfg.ListenAddr,
		WebSocket:    cfg.WebSocket,
		KillerScript: cfg.KillerScript,
		VictimScript: cfg.VictimScript,
		Logger:       logger,
	}
	p := tea.NewProgram(ui.NewControllerModel(ctx, opts, 0, 0), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		fmt.Printf("error %v", err)
		os.Exit(1)
	}
}
