package serve

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
)

// Config describes how to run an HTTP server.
type Config struct {
	ListenAddr          string
	Handler             http.Handler
	TCPKeepAlive        time.Duration
	ShutdownGracePeriod time.Duration
	ReadTimeout         time.Duration
	WriteTimeout        time.Duration
	IdleTimeout         time.Duration
	OnStarting          func()
	OnStopping          func()
}

// run starts the server described by conf and blocks until the process
// receives SIGINT or SIGTERM, then drains in-flight requests for up to
// ShutdownGracePeriod before returning.
func run(conf Config) {
	if conf.OnStarting != nil {
		conf.OnStarting()
	}

	srv := &http.Server{
		Addr:         conf.ListenAddr,
		Handler:      conf.Handler,
		ReadTimeout:  conf.ReadTimeout,
		WriteTimeout: conf.WriteTimeout,
		IdleTimeout:  conf.IdleTimeout,
	}

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit

		if conf.OnStopping != nil {
			conf.OnStopping()
		}

		gracePeriod := conf.ShutdownGracePeriod
		if gracePeriod <= 0 {
			gracePeriod = 10 * time.Second
		}
		ctx, cancel := context.WithTimeout(context.Background(), gracePeriod)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logrus.Errorf("error gracefully shutting down the server: %s", err)
		}
	}()

	listener, err := net.Listen("tcp", conf.ListenAddr)
	if err != nil {
		logrus.Fatalf("error listening on %s: %s", conf.ListenAddr, err)
	}
	if conf.TCPKeepAlive > 0 {
		listener = tcpKeepAliveListener{listener.(*net.TCPListener), conf.TCPKeepAlive}
	}

	if err = srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logrus.Fatalf("error serving on %s: %s", conf.ListenAddr, err)
	}
	<-shutdownDone
}

// tcpKeepAliveListener enables TCP keep-alives on accepted connections so
// connections to dead clients are eventually released.
type tcpKeepAliveListener struct {
	*net.TCPListener
	keepAlivePeriod time.Duration
}

func (ln tcpKeepAliveListener) Accept() (net.Conn, error) {
	conn, err := ln.AcceptTCP()
	if err != nil {
		return nil, err
	}
	if err = conn.SetKeepAlive(true); err != nil {
		return nil, err
	}
	if err = conn.SetKeepAlivePeriod(ln.keepAlivePeriod); err != nil {
		return nil, err
	}
	return conn, nil
}
