package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/tacusci/logging/v2"
	"github.com/takama/daemon"
	"github.com/tauraamui/graydaemon/pkg/bridge"
	"github.com/tauraamui/graydaemon/pkg/config"
	"github.com/tauraamui/graydaemon/pkg/configdef"
	"github.com/tauraamui/graydaemon/pkg/convert/convbackend"
	"github.com/tauraamui/graydaemon/pkg/log"
	"github.com/tauraamui/graydaemon/pkg/transport"
	"gocv.io/x/gocv"
)

const (
	name        = "gray_daemon"
	description = "Gray service daemon which republishes color camera topics as 12-bit grayscale"
)

type Service struct {
	daemon.Daemon
}

// Setup writes the default config file
func (service *Service) Setup() (string, error) {
	log.Info("Setting up graydaemon service...")

	err := config.DefaultCreator().Create()
	if err != nil {
		if !errors.Is(err, configdef.ErrConfigAlreadyExists) {
			return "", err
		}
		log.Error(err.Error())
	}

	return "Setup successful...", nil
}

func (service *Service) RemoveSetup() (string, error) {
	log.Info("Removing setup for graydaemon service...")
	err := config.DefaultDestroyer().Destroy()
	if err != nil {
		log.Error("unable to delete config file: %s", err.Error())
	}

	return "Removing setup successful...", nil
}

func (service *Service) Manage() (string, error) {
	usage := "Usage: graydaemon setup | remove-setup | install | remove | start | stop | status"

	if len(os.Args) > 1 {
		command := os.Args[1]
		switch command {
		case "setup":
			return service.Setup()
		case "remove-setup":
			return service.RemoveSetup()
		case "install":
			return service.Install()
		case "remove":
			return service.Remove()
		case "start":
			return service.Start()
		case "stop":
			return service.Stop()
		case "status":
			return service.Status()
		default:
			return usage, nil
		}
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	log.Info("Starting gray daemon...")

	backend := convbackend.Resolve(os.Getenv("GRAYD_BACKEND"))
	server, err := bridge.New(
		config.DefaultResolver(), transport.Resolve(os.Getenv("GRAYD_TRANSPORT")), backend,
	)
	if err != nil {
		log.Fatal(err.Error())
	}

	ctx, cancelStartup := context.WithCancel(context.Background())
	go startupServer(ctx, server)

	killSignal := <-interrupt
	fmt.Print("\r")
	log.Error("Received signal: %s", killSignal)

	cancelStartup()
	log.Info("Shutting down server...")
	<-server.Shutdown()

	if backend.Name() == "opencv" {
		var b bytes.Buffer
		gocv.MatProfile.WriteTo(&b, 1) //nolint
		fmt.Print(b.String())
	}

	return "Shutdown successful... BYE! 👋", nil
}

func startupServer(ctx context.Context, server *bridge.Bridge) {
	if err := server.ConnectWithCancel(ctx); err != nil {
		log.Error(err.Error())
		return
	}
	if err := server.Run(); err != nil {
		log.Error(err.Error())
	}
}

func init() {
	log.SetLevel(os.Getenv("GRAYD_LOGGING_LEVEL"))
}

func main() {
	daemonType := daemon.SystemDaemon
	if runtime.GOOS == "darwin" {
		daemonType = daemon.UserAgent
	}

	srv, err := daemon.New(name, description, daemonType)
	if err != nil {
		logging.Error(err.Error()) //nolint
		os.Exit(1)
	}

	service := &Service{srv}
	status, err := service.Manage()
	if err != nil {
		logging.Error(err.Error()) //nolint
		os.Exit(1)
	}

	logging.Info(status) //nolint
}
