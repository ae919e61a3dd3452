package utils

const (
	// ConfigFileName is the application configuration file discovered in the working directory.
	ConfigFileName = ".dirsnap.yaml"
	// GlobalConfigDirectoryName is the directory under the user home holding global configuration.
	GlobalConfigDirectoryName = ".dirsnap"
	// GlobalConfigFileName is the configuration file inside the global configuration directory.
	GlobalConfigFileName = "config.yaml"

	// LoggerInitializationFailedMessageFormat reports a failure to construct the application logger.
	LoggerInitializationFailedMessageFormat = "logger initialization failed: %w"
	// ApplicationExecutionFailedMessage reports a fatal command execution failure.
	ApplicationExecutionFailedMessage = "application execution failed"
)
