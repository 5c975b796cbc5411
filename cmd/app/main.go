// entry point to app :)
package main

import (
	"github.com/ds124wfegd/jpegify/config"
	"github.com/ds124wfegd/jpegify/internal/appServer"
	"github.com/ds124wfegd/jpegify/internal/pkg/logging"
	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetFormatter(new(logrus.JSONFormatter))

	viperInstance, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Cannot load config. Error: {%s}", err.Error())
	}

	cfg, err := config.ParseConfig(viperInstance)
	if err != nil {
		logrus.Fatalf("Cannot parse config. Error: {%s}", err.Error())
	}

	if err := logging.Setup(cfg.Log); err != nil {
		logrus.Fatalf("Cannot set up logging. Error: {%s}", err.Error())
	}

	if err := appServer.NewServer(cfg); err != nil {
		logrus.Fatal(err)
	}
}
