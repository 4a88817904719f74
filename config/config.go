// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/btcsuite/btcutil"
	"github.com/emberchain/emberd/logger"
	"github.com/emberchain/emberd/version"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

const (
	defaultConfigFilename = "emberd.conf"
	defaultDataDirname    = "data"
	defaultLogLevel       = "info"
	defaultLogDirname     = "logs"
	defaultLogFilename    = "emberd.log"
	defaultErrLogFilename = "emberd_err.log"
	defaultMaxRPCClients  = 10
)

var (
	// DefaultAppDir is the default home directory for emberd.
	DefaultAppDir = btcutil.AppDataDir("emberd", false)

	defaultConfigFile = filepath.Join(DefaultAppDir, defaultConfigFilename)
	defaultLogDir     = filepath.Join(DefaultAppDir, defaultLogDirname)
)

// Config defines the configuration options for emberd.
//
// See loadConfig for details on the configuration load process.
type Config struct {
	ShowVersion   bool     `short:"V" long:"version" description:"Display version information and exit"`
	ConfigFile    string   `short:"C" long:"configfile" description:"Path to configuration file"`
	AppDir        string   `short:"b" long:"appdir" description:"Directory to store data"`
	LogDir        string   `long:"logdir" description:"Directory to log output"`
	DebugLevel    string   `short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems -- Use show to list available subsystems"`
	RPCUser       string   `short:"u" long:"rpcuser" description:"Username for RPC connections"`
	RPCPass       string   `short:"P" long:"rpcpass" default-mask:"-" description:"Password for RPC connections"`
	RPCListeners  []string `long:"rpclisten" description:"Add an interface/port to listen for RPC connections (default port: 8645, testnet: 18645)"`
	RPCMaxClients int      `long:"rpcmaxclients" description:"Max number of RPC clients for standard connections"`
	DisableRPC    bool     `long:"norpc" description:"Disable built-in RPC server"`
	NetworkFlags
}

// DataDir returns the directory the chain database lives in, normalized per
// the active network.
func (cfg *Config) DataDir() string {
	return filepath.Join(cfg.AppDir, defaultDataDirname)
}

// LogFile returns the path of the main log file.
func (cfg *Config) LogFile() string {
	return filepath.Join(cfg.LogDir, defaultLogFilename)
}

// ErrLogFile returns the path of the error log file.
func (cfg *Config) ErrLogFile() string {
	return filepath.Join(cfg.LogDir, defaultErrLogFilename)
}

// cleanAndExpandPath expands environment variables and leading ~ in the
// passed path, cleans the result, and returns it.
func cleanAndExpandPath(path string) string {
	// Expand initial ~ to OS specific home directory.
	if strings.HasPrefix(path, "~") {
		homeDir := filepath.Dir(DefaultAppDir)
		path = strings.Replace(path, "~", homeDir, 1)
	}

	// NOTE: The os.ExpandEnv doesn't work with Windows-style %VARIABLE%,
	// but the variables can still be expanded via POSIX-style $VARIABLE.
	return filepath.Clean(os.ExpandEnv(path))
}

// LoadConfig initializes and parses the config using a config file and
// command line options.
//
// The configuration proceeds as follows:
//  1. Start with a default config with sane settings
//  2. Pre-parse the command line to check for an alternative config file
//  3. Load configuration file overwriting defaults with any specified options
//  4. Parse CLI options and overwrite/add any specified options
func LoadConfig() (*Config, []string, error) {
	cfg := Config{
		ConfigFile:    defaultConfigFile,
		AppDir:        DefaultAppDir,
		LogDir:        defaultLogDir,
		DebugLevel:    defaultLogLevel,
		RPCMaxClients: defaultMaxRPCClients,
	}

	// Pre-parse the command line options to see if an alternative config
	// file or the version flag was specified.
	preCfg := cfg
	preParser := flags.NewParser(&preCfg, flags.HelpFlag)
	_, err := preParser.Parse()
	if err != nil {
		var flagsErr *flags.Error
		if ok := errors.As(err, &flagsErr); ok && flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(os.Stdout, err)
			os.Exit(0)
		}
		return nil, nil, err
	}

	appName := filepath.Base(os.Args[0])
	appName = strings.TrimSuffix(appName, filepath.Ext(appName))
	if preCfg.ShowVersion {
		fmt.Println(appName, "version", version.Version())
		os.Exit(0)
	}

	// Load additional config from file.
	parser := flags.NewParser(&cfg, flags.Default)
	if _, statErr := os.Stat(preCfg.ConfigFile); statErr == nil ||
		preCfg.ConfigFile != defaultConfigFile {

		err = flags.NewIniParser(parser).ParseFile(preCfg.ConfigFile)
		if err != nil {
			var pathErr *os.PathError
			if ok := errors.As(err, &pathErr); !ok {
				fmt.Fprintf(os.Stderr, "Error parsing config file: %s\n", err)
				parser.WriteHelp(os.Stderr)
				return nil, nil, err
			}
			// A missing default config file is fine; a missing
			// explicitly-requested one is not.
			if preCfg.ConfigFile != defaultConfigFile {
				return nil, nil, err
			}
		}
	}

	// Parse command line options again to ensure they take precedence.
	remainingArgs, err := parser.Parse()
	if err != nil {
		var flagsErr *flags.Error
		if ok := errors.As(err, &flagsErr); !ok || flagsErr.Type != flags.ErrHelp {
			parser.WriteHelp(os.Stderr)
		}
		return nil, nil, err
	}

	err = cfg.ResolveNetwork(parser)
	if err != nil {
		return nil, nil, err
	}

	// Append the network type to the app and log directories so it is
	// "namespaced" per network.
	cfg.AppDir = cleanAndExpandPath(cfg.AppDir)
	cfg.AppDir = filepath.Join(cfg.AppDir, cfg.ActiveNetParams.Name)
	cfg.LogDir = cleanAndExpandPath(cfg.LogDir)
	cfg.LogDir = filepath.Join(cfg.LogDir, cfg.ActiveNetParams.Name)

	// Create the app directory if it doesn't already exist.
	funcName := "LoadConfig"
	err = os.MkdirAll(cfg.AppDir, 0700)
	if err != nil {
		str := "%s: failed to create home directory: %s"
		err := errors.Errorf(str, funcName, err)
		fmt.Fprintln(os.Stderr, err)
		return nil, nil, err
	}

	// The RPC server is disabled when no credentials were provided.
	if cfg.RPCUser == "" || cfg.RPCPass == "" {
		if !cfg.DisableRPC && (cfg.RPCUser != "" || cfg.RPCPass != "") {
			str := "%s: both rpcuser and rpcpass must be set together"
			err := errors.Errorf(str, funcName)
			fmt.Fprintln(os.Stderr, err)
			return nil, nil, err
		}
	}

	// Default RPC to listen on localhost only.
	if !cfg.DisableRPC && len(cfg.RPCListeners) == 0 {
		addrs, err := net.LookupHost("localhost")
		if err != nil {
			return nil, nil, err
		}
		cfg.RPCListeners = make([]string, 0, len(addrs))
		for _, addr := range addrs {
			addr = net.JoinHostPort(addr, cfg.ActiveNetParams.RPCPort)
			cfg.RPCListeners = append(cfg.RPCListeners, addr)
		}
	}

	// Special show command to list supported subsystems and exit.
	if cfg.DebugLevel == "show" {
		fmt.Println("Supported subsystems", logger.SupportedSubsystems())
		os.Exit(0)
	}

	// Parse, validate, and set debug log level(s).
	err = logger.ParseAndSetDebugLevels(cfg.DebugLevel)
	if err != nil {
		err := errors.Errorf("%s: %s", funcName, err.Error())
		fmt.Fprintln(os.Stderr, err)
		parser.WriteHelp(os.Stderr)
		return nil, nil, err
	}

	return &cfg, remainingArgs, nil
}
