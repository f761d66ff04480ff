package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/Mshel/campmisty/internal/config"
	"github.com/Mshel/campmisty/internal/game"
	"github.com/Mshel/campmisty/internal/multiplayer"
	"github.com/Mshel/campmisty/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
)

// connectionLimiter caps concurrent sessions per remote IP.
type connectionLimiter struct {
	max int

	mu        sync.Mutex
	ipCounter map[string]int
}

func newConnectionLimiter(limit int) *connectionLimiter {
	return &connectionLimiter{max: limit, ipCounter: make(map[string]int)}
}

func getIP(s ssh.Session) string {
	if addr, ok := s.RemoteAddr().(*net.TCPAddr); ok {
		return addr.IP.String()
	}
	return s.RemoteAddr().String()
}

// acquire takes a slot for ip and returns the count before taking it.
func (l *connectionLimiter) acquire(ip string) (int, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	count := l.ipCounter[ip]
	if count >= l.max {
		return count, false
	}
	l.ipCounter[ip]++
	return count, true
}

func (l *connectionLimiter) release(ip string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ipCounter[ip]--
	if l.ipCounter[ip] <= 0 {
		delete(l.ipCounter, ip)
	}
	return l.ipCounter[ip]
}

func (l *connectionLimiter) Middleware(next ssh.Handler) ssh.Handler {
	return func(s ssh.Session) {
		ip := getIP(s)

		currentCount, ok := l.acquire(ip)
		if !ok {
			log.Warn("Connection denied: IP limit exceeded", "ip", ip, "attempted_count", currentCount+1, "current_limit", l.max)
			errorMessage := fmt.Sprintf("Too many active connections from your IP (%d/%d). Please try again later.\r\n", currentCount+1, l.max)
			s.Write([]byte(errorMessage))
			s.Close()
			return
		}

		log.Info("Connection accepted", "ip", ip, "current_count", currentCount+1, "limit", l.max)
		next(s)
		log.Info("Connection closed and counter decremented", "ip", ip, "count_after", l.release(ip))
	}
}

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Fatal("Could not read .env", "error", err)
	}
	cfg, err := config.ParseServer(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatal("Bad configuration", "error", err)
	}
	level, err := cfg.Level()
	if err != nil {
		log.Fatal("Bad configuration", "error", err)
	}
	log.SetLevel(level)

	history, err := game.NewMatchHistoryService(cfg.HistoryDBPath)
	if err != nil {
		log.Fatal("Could not open match history", "path", cfg.HistoryDBPath, "error", err)
	}
	defer history.Close()

	lobbyCtx, stopLobby := context.WithCancel(context.Background())
	defer stopLobby()
	lobby := multiplayer.NewLobby()
	go lobby.Run(lobbyCtx)

	opts := ui.Options{
		History:      history,
		Lobby:        lobby,
		KillerScript: cfg.KillerScript,
		VictimScript: cfg.VictimScript,
	}
	viewHandler := func(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
		pty, _, _ := sshSession.Pty()
		controllerModel := ui.NewControllerModel(sshSession.Context(), opts, pty.Window.Width, pty.Window.Height)
		return controllerModel, []tea.ProgramOption{tea.WithAltScreen()}
	}

	limiter := newConnectionLimiter(cfg.MaxConnectionsPerIP)
	sshServer, serverCreateErr := wish.NewServer(
		wish.WithAddress(cfg.Addr()),
		wish.WithHostKeyPath(cfg.HostKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(viewHandler),
			logging.Middleware(),
			activeterm.Middleware(),
			limiter.Middleware,
		),
	)
	if serverCreateErr != nil {
		log.Fatal("Failed to create ssh server", "error", serverCreateErr)
	}

	serverDoneChannel := make(chan os.Signal, 1)
	signal.Notify(serverDoneChannel, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	log.Info("Starting SSH server", "host", cfg.Host, "port", cfg.Port)
	go func() {
		if err := sshServer.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Error("Could not start server", "error", err)
			serverDoneChannel <- nil
		}
	}()

	<-serverDoneChannel

	log.Info("Stopping SSH server")
	stopLobby()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := sshServer.Shutdown(ctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		log.Error("Could not stop server", "error", err)
	}
}
