package main

import (
	_ "embed"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"

	"github.com/tomz197/invaders/internal/config"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var htmlPage string

// landingPage serves the static page with the SSH host filled in.
func landingPage(sshHost string) http.HandlerFunc {
	page := strings.ReplaceAll(htmlPage, "{{.SSHHost}}", sshHost)
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	}
}

func main() {
	logger, err := config.NewLogger(os.Stderr, "invaders-web")
	if err != nil {
		fmt.Fprintf(os.Stderr, "invaders-web: %v\n", err)
		os.Exit(1)
	}

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")

	http.HandleFunc("/", landingPage(sshHost))

	addr := net.JoinHostPort(host, port)
	logger.Info("starting web server", "addr", "http://"+addr, "ssh_host", sshHost)
	if err := http.ListenAndServe(addr, nil); err != nil {
		logger.Fatal("server error", "err", err)
	}
}
