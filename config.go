package surfdoc

import "github.com/goliatone/go-surfdoc/internal/runtimeconfig"

var (
	ErrLoggingProviderUnknown = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid    = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid   = runtimeconfig.ErrLoggingFormatInvalid
	ErrLoaderPatternInvalid   = runtimeconfig.ErrLoaderPatternInvalid
)

type (
	Config        = runtimeconfig.Config
	LoaderConfig  = runtimeconfig.LoaderConfig
	LoggingConfig = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
