package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/aazevedo/nistsync/config"
	"github.com/aazevedo/nistsync/daytime"
	"github.com/aazevedo/nistsync/logger"
	"github.com/aazevedo/nistsync/svchost"
	"github.com/aazevedo/nistsync/syncer"
	"github.com/aazevedo/nistsync/sysclock"
)

type options struct {
	configPath  string
	interval    int
	intervalSet bool
	install     bool
	uninstall   bool
}

func main() {
	opts := parseFlags()

	cfg, err := loadConfig(opts)
	if err != nil {
		log.Fatal(err)
	}

	if opts.install || opts.uninstall {
		if err = manageService(opts, cfg); err != nil {
			log.Fatal(err)
		}
		return
	}

	params, err := build(cfg)
	if err != nil {
		log.Fatal(err)
	}

	if err = run(params); err != nil {
		log.Fatal(err)
	}
}

func parseFlags() options {
	o := options{}
	flag.StringVar(&o.configPath, "config", "config/config.yaml", "path to the YAML config file")
	flag.IntVar(&o.interval, "interval", 0, "sync interval in minutes (overrides config)")
	flag.BoolVar(&o.install, "install", false, "install the windows service and start it")
	flag.BoolVar(&o.uninstall, "uninstall", false, "stop and remove the windows service")
	flag.Parse()

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "interval" {
			o.intervalSet = true
		}
	})
	return o
}

func loadConfig(o options) (*config.AppConfig, error) {
	cfg, err := config.LoadWithDefaults(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// Env overrides keep the server and service name injectable without
	// touching config files, mainly for tests against a mock source.
	if server := strings.TrimSpace(os.Getenv("NISTSYNC_SERVER")); server != "" {
		cfg.Daytime.Server = server
	}
	if name := strings.TrimSpace(os.Getenv("NISTSYNC_SERVICE_NAME")); name != "" {
		cfg.Service.Name = name
	}

	if o.intervalSet {
		cfg.Sync.IntervalMinutes = o.interval
	}
	if err = cfg.Sync.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func manageService(o options, cfg *config.AppConfig) error {
	if o.install && o.uninstall {
		return fmt.Errorf("-install and -uninstall are mutually exclusive")
	}

	if o.uninstall {
		if err := svchost.Uninstall(cfg.Service.Name); err != nil {
			return err
		}
		fmt.Println("Service uninstalled")
		return nil
	}

	args := []string{"-config", o.configPath}
	if o.intervalSet {
		args = append(args, "-interval", fmt.Sprint(o.interval))
	}

	err := svchost.Install(svchost.InstallParams{
		Name:        cfg.Service.Name,
		DisplayName: cfg.Service.DisplayName,
		Description: cfg.Service.Description,
		Args:        args,
	})
	if err != nil {
		return err
	}
	fmt.Println("Service installed")
	return nil
}

type runParams struct {
	Config *config.AppConfig
	Logger logger.Logger
	Syncer syncer.Syncer
}

func build(cfg *config.AppConfig) (runParams, error) {
	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return runParams{}, fmt.Errorf("initialize logger: %w", err)
	}

	client := daytime.New(daytime.Params{Config: cfg.Daytime})

	sync, err := syncer.New(syncer.Params{
		Client:   client,
		Setter:   sysclock.System(),
		Interval: cfg.Sync.Interval(),
		Logger:   appLogger,
	})
	if err != nil {
		return runParams{}, err
	}

	return runParams{
		Config: cfg,
		Logger: appLogger,
		Syncer: sync,
	}, nil
}

// run hosts the syncer until shutdown, picking service or foreground
// mode from how the process was started.
func run(p runParams) error {
	defer p.Logger.Sync()

	mode, err := svchost.Detect()
	if err != nil {
		return err
	}

	p.Logger.InfoW("syncing system time",
		"server", p.Config.Daytime.Server,
		"interval_minutes", p.Config.Sync.IntervalMinutes,
		"managed_service", mode == svchost.ManagedService)

	return svchost.Run(mode, svchost.Params{
		Syncer: p.Syncer,
		Logger: p.Logger,
		Name:   p.Config.Service.Name,
	})
}
