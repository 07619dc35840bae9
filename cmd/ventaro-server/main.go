package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ventaroai/ventaro-server/config"
	"github.com/ventaroai/ventaro-server/internal/app"
	"github.com/ventaroai/ventaro-server/internal/mailer"
	"github.com/ventaroai/ventaro-server/internal/restapi"
	"github.com/ventaroai/ventaro-server/internal/webserver"
	"go.uber.org/zap"
)

var (
	h        bool
	showVer  bool
	conffile string
	initdb   bool
)

func init() {
	flag.BoolVar(&h, "h", false, "help usage")
	flag.BoolVar(&showVer, "v", false, "print version")
	flag.StringVar(&conffile, "c", "", "config file, eg: ventaro.yml")
	flag.BoolVar(&initdb, "initdb", false, "drop and recreate all tables, then exit")
}

func main() {
	flag.Parse()
	if h {
		flag.Usage()
		return
	}
	if showVer {
		fmt.Println(config.Version)
		return
	}

	cfg := config.LoadConfig(conffile)

	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if initdb {
		application.InitDb()
		zap.S().Info("database initialized")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := mailer.NewMailer(cfg.Mail, application.DB())
	if err := m.Subscribe(application.Bus()); err != nil {
		zap.S().Errorf("mailer subscription failed: %v", err)
	}

	application.StartBackgroundJobs(ctx)

	ws := webserver.Init(application)
	restapi.RegisterRoutes(application)

	errchan := make(chan error, 1)
	go func() {
		errchan <- ws.Start()
	}()

	sigchan := make(chan os.Signal, 1)
	signal.Notify(sigchan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errchan:
		zap.S().Errorf("web server stopped: %v", err)
	case sig := <-sigchan:
		zap.S().Infof("received signal %s, shutting down", sig)
	}
}
