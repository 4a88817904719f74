package logger

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/emberchain/emberd/logs"
	"github.com/pkg/errors"
)

// BackendLog is the logging backend used to create all subsystem loggers.
var BackendLog = logs.NewBackend()

var (
	subsystemLoggersMutex sync.Mutex
	subsystemLoggers      = map[string]*logs.Logger{}
)

// SubsystemTags is an enum-like struct of all the subsystem tags used by
// emberd loggers.
var SubsystemTags = struct {
	EMBR,
	CNFG,
	DTBS,
	DBAC,
	CHQR,
	RPCS,
	SIGN string
}{
	EMBR: "EMBR",
	CNFG: "CNFG",
	DTBS: "DTBS",
	DBAC: "DBAC",
	CHQR: "CHQR",
	RPCS: "RPCS",
	SIGN: "SIGN",
}

// InitLog attaches log file and error log file to the backend log.
func InitLog(logFile, errLogFile string) {
	err := BackendLog.AddLogFile(logFile, logs.LevelTrace)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error adding log file %s as log rotator for level %s: %s\n",
			logFile, logs.LevelTrace, err)
		os.Exit(1)
	}
	err = BackendLog.AddLogFile(errLogFile, logs.LevelWarn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error adding log file %s as log rotator for level %s: %s\n",
			errLogFile, logs.LevelWarn, err)
		os.Exit(1)
	}
	err = BackendLog.AddLogWriter(os.Stdout, logs.LevelInfo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error adding stdout to the logger: %s\n", err)
		os.Exit(1)
	}
	err = BackendLog.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting the logger: %s\n", err)
		os.Exit(1)
	}
}

// Get returns a logger of a specific sub-system, creating it if one doesn't
// exist yet.
func Get(tag string) (*logs.Logger, error) {
	subsystemLoggersMutex.Lock()
	defer subsystemLoggersMutex.Unlock()

	logger, ok := subsystemLoggers[tag]
	if !ok {
		logger = BackendLog.Logger(tag)
		subsystemLoggers[tag] = logger
	}
	return logger, nil
}

// SetLogLevel sets the logging level for the provided subsystem. Invalid
// subsystems are ignored. Uninitialized subsystems are dynamically created as
// needed.
func SetLogLevel(subsystemID string, logLevel string) {
	level, _ := logs.LevelFromString(logLevel)

	subsystemLoggersMutex.Lock()
	defer subsystemLoggersMutex.Unlock()

	logger, ok := subsystemLoggers[subsystemID]
	if !ok {
		logger = BackendLog.Logger(subsystemID)
		subsystemLoggers[subsystemID] = logger
	}
	logger.SetLevel(level)
}

// SetLogLevels sets the log level for all subsystem loggers to the passed
// level. It also dynamically creates the subsystem loggers as needed, so it
// can be used to initialize the logging system.
func SetLogLevels(logLevel string) {
	for _, subsystemID := range SupportedSubsystems() {
		SetLogLevel(subsystemID, logLevel)
	}
}

// SupportedSubsystems returns a sorted slice of the supported subsystems for
// logging purposes.
func SupportedSubsystems() []string {
	subsystems := []string{
		SubsystemTags.EMBR,
		SubsystemTags.CNFG,
		SubsystemTags.DTBS,
		SubsystemTags.DBAC,
		SubsystemTags.CHQR,
		SubsystemTags.RPCS,
		SubsystemTags.SIGN,
	}
	sort.Strings(subsystems)
	return subsystems
}

func validLogLevel(logLevel string) bool {
	_, ok := logs.LevelFromString(logLevel)
	return ok
}

func validSubsystem(subsystemID string) bool {
	for _, subsystem := range SupportedSubsystems() {
		if subsystem == subsystemID {
			return true
		}
	}
	return false
}

// ParseAndSetDebugLevels attempts to parse the specified debug level and set
// the levels accordingly. An appropriate error is returned if anything is
// invalid.
func ParseAndSetDebugLevels(debugLevel string) error {
	// When the specified string doesn't have any delimiters, treat it as
	// the log level for all subsystems.
	if !strings.Contains(debugLevel, ",") && !strings.Contains(debugLevel, "=") {
		if !validLogLevel(debugLevel) {
			return errors.Errorf("The specified debug level [%s] is invalid", debugLevel)
		}

		SetLogLevels(debugLevel)
		return nil
	}

	// Split the specified string into subsystem/level pairs while detecting
	// issues and update the log levels accordingly.
	for _, logLevelPair := range strings.Split(debugLevel, ",") {
		if !strings.Contains(logLevelPair, "=") {
			return errors.Errorf("The specified debug level contains an invalid "+
				"subsystem/level pair [%s]", logLevelPair)
		}

		fields := strings.Split(logLevelPair, "=")
		subsystemID, logLevel := fields[0], fields[1]

		if !validSubsystem(subsystemID) {
			return errors.Errorf("The specified subsystem [%s] is invalid -- "+
				"supported subsystems %s", subsystemID, SupportedSubsystems())
		}

		if !validLogLevel(logLevel) {
			return errors.Errorf("The specified debug level [%s] is invalid", logLevel)
		}

		SetLogLevel(subsystemID, logLevel)
	}

	return nil
}
