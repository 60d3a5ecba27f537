package main

import (
	"context"
	"fmt"
	"os"

	"github.com/DavidGamba/go-getoptions"
	"github.com/cyverse-de/configurate"
	"github.com/cyverse-de/notification-preferences/common"
	"github.com/cyverse-de/notification-preferences/feedback"
	"github.com/cyverse-de/notification-preferences/handlers"
	"github.com/cyverse-de/notification-preferences/metrics"
	"github.com/cyverse-de/notification-preferences/storage"
	"github.com/cyverse-de/notification-preferences/store"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const serviceName = "notification-preferences"

var log = logrus.WithFields(logrus.Fields{
	"service": serviceName,
	"art-id":  serviceName,
	"group":   "org.cyverse",
})

// commandLineOptionValues represents the values of the command-line options that were passed on the command line when
// this service was invoked.
type commandLineOptionValues struct {
	Config  string
	EnvFile string
}

func parseCommandLine() *commandLineOptionValues {
	optionValues := &commandLineOptionValues{}
	opt := getoptions.New()

	// Default option values.
	defaultConfigPath := "/etc/iplant/de/notification-preferences.yml"

	// Define the command-line options.
	opt.Bool("help", false, opt.Alias("h", "?"))
	opt.StringVar(&optionValues.Config, "config", defaultConfigPath,
		opt.Alias("c"),
		opt.Description("the path to the configuration file"))
	opt.StringVar(&optionValues.EnvFile, "env-file", "",
		opt.Description("an optional file of environment variables to load before reading the configuration"))

	// Parse the command line, handling requests for help and usage errors.
	_, err := opt.Parse(os.Args[1:])
	if opt.Called("help") {
		fmt.Fprint(os.Stderr, opt.Help())
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n\n", err)
		fmt.Fprint(os.Stderr, opt.Help(getoptions.HelpSynopsis))
		os.Exit(1)
	}

	return optionValues
}

// initLogging sets the log level, falling back to info if the configured level isn't recognized.
func initLogging(levelName string) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	level, err := logrus.ParseLevel(levelName)
	if err != nil {
		log.Warnf("unrecognized log level %q, using info", levelName)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

// initNotifier creates the feedback notifier. Feedback is published to AMQP when it's enabled and
// logged otherwise.
func initNotifier(settings *common.AMQPSettings) (feedback.Notifier, func()) {
	if !settings.Enabled {
		return feedback.NewLog(log), func() {}
	}

	notifier, err := feedback.DialAMQP(settings)
	if err != nil {
		log.Errorf("AMQP feedback is unavailable, logging feedback instead: %s", err.Error())
		return feedback.NewLog(log), func() {}
	}
	return notifier, notifier.Close
}

func main() {
	// Parse the command-line.
	optionValues := parseCommandLine()

	// Load the environment file if one was requested.
	if optionValues.EnvFile != "" {
		if err := godotenv.Load(optionValues.EnvFile); err != nil {
			log.Fatal(err)
		}
	}

	// Read in the configuration file.
	cfg, err := configurate.InitDefaults(optionValues.Config, common.DefaultConfig)
	if err != nil {
		log.Fatal(err)
	}
	settings := common.LoadSettings(cfg)

	// Initialize logging.
	initLogging(settings.LogLevel)

	// Set up the storage backend.
	backend, err := storage.New(context.Background(), &settings.Storage)
	if err != nil {
		log.Fatal(err)
	}
	defer backend.Close()

	// Set up the feedback notifier.
	notifier, closeNotifier := initNotifier(&settings.AMQP)
	defer closeNotifier()

	// Load the stored settings.
	collector := metrics.NewCollector(serviceName)
	h := handlers.New(store.New(backend, settings.Storage.Key), notifier, collector)
	h.Load(context.Background())

	// Set up the router.
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	if err = h.Register(router); err != nil {
		log.Fatal(err)
	}

	log.Infof("listening on %s using the %s storage backend", settings.Listen, settings.Storage.Backend)
	if err = router.Run(settings.Listen); err != nil {
		log.Fatal(err)
	}
}
