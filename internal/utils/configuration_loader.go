package utils

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const (
	environmentKeySeparatorOldConstant              = "."
	environmentKeySeparatorNewConstant              = "_"
	listSeparatorConstant                           = ","
	workingDirectorySearchPathConstant              = "."
	xdgConfigHomeEnvironmentVariableConstant        = "XDG_CONFIG_HOME"
	configurationReadErrorTemplateConstant          = "failed to read configuration: %w"
	configurationUnmarshalErrorTemplateConstant     = "failed to parse configuration: %w"
	embeddedConfigurationMergeErrorTemplateConstant = "failed to merge embedded configuration: %w"
)

// ConfigurationSources describes where configuration values come from. Later
// sources override earlier ones: embedded defaults, the configuration file,
// then environment variables.
type ConfigurationSources struct {
	FileName              string
	FileType              string
	EnvironmentPrefix     string
	SearchDirectories     []string
	EmbeddedConfiguration []byte
}

// ConfigurationLoader resolves layered configuration into a mapstructure-tagged struct.
type ConfigurationLoader struct {
	sources                ConfigurationSources
	environmentKeyReplacer *strings.Replacer
}

// LoadedConfiguration surfaces metadata about the resolved configuration.
type LoadedConfiguration struct {
	ConfigFileUsed string
}

// NewConfigurationLoader creates a loader for the provided sources.
func NewConfigurationLoader(sources ConfigurationSources) *ConfigurationLoader {
	sources.SearchDirectories = append([]string{}, sources.SearchDirectories...)
	sources.EmbeddedConfiguration = append([]byte(nil), sources.EmbeddedConfiguration...)
	return &ConfigurationLoader{
		sources:                sources,
		environmentKeyReplacer: strings.NewReplacer(environmentKeySeparatorOldConstant, environmentKeySeparatorNewConstant),
	}
}

// ConfigurationSearchDirectories lists the working directory followed by the
// per-user configuration directory for applicationName. XDG_CONFIG_HOME wins
// over the platform default when set.
func ConfigurationSearchDirectories(applicationName string) []string {
	directories := []string{workingDirectorySearchPathConstant}

	configurationHome := strings.TrimSpace(os.Getenv(xdgConfigHomeEnvironmentVariableConstant))
	if len(configurationHome) == 0 {
		userConfigurationDirectory, userConfigurationError := os.UserConfigDir()
		if userConfigurationError != nil {
			return directories
		}
		configurationHome = userConfigurationDirectory
	}
	return append(directories, filepath.Join(configurationHome, applicationName))
}

// LoadConfiguration populates targetConfiguration. An explicit configurationFilePath
// replaces the search directories and must exist.
func (loader *ConfigurationLoader) LoadConfiguration(configurationFilePath string, targetConfiguration any) (LoadedConfiguration, error) {
	viperInstance := viper.New()

	if len(loader.sources.EmbeddedConfiguration) > 0 {
		viperInstance.SetConfigType(loader.sources.FileType)
		if mergeError := viperInstance.MergeConfig(bytes.NewReader(loader.sources.EmbeddedConfiguration)); mergeError != nil {
			return LoadedConfiguration{}, fmt.Errorf(embeddedConfigurationMergeErrorTemplateConstant, mergeError)
		}
	}

	viperInstance.SetConfigName(loader.sources.FileName)
	viperInstance.SetConfigType(loader.sources.FileType)
	for _, searchDirectory := range loader.sources.SearchDirectories {
		viperInstance.AddConfigPath(searchDirectory)
	}
	if len(configurationFilePath) > 0 {
		viperInstance.SetConfigFile(configurationFilePath)
	}

	viperInstance.SetEnvPrefix(loader.sources.EnvironmentPrefix)
	viperInstance.SetEnvKeyReplacer(loader.environmentKeyReplacer)
	viperInstance.AutomaticEnv()

	if readError := viperInstance.MergeInConfig(); readError != nil {
		var notFoundError viper.ConfigFileNotFoundError
		if !errors.As(readError, &notFoundError) {
			return LoadedConfiguration{}, fmt.Errorf(configurationReadErrorTemplateConstant, readError)
		}
	}

	unmarshalError := viperInstance.Unmarshal(targetConfiguration, func(decoderConfiguration *mapstructure.DecoderConfig) {
		decoderConfiguration.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToSliceHookFunc(listSeparatorConstant),
			mapstructure.StringToTimeDurationHookFunc(),
		)
	})
	if unmarshalError != nil {
		return LoadedConfiguration{}, fmt.Errorf(configurationUnmarshalErrorTemplateConstant, unmarshalError)
	}

	return LoadedConfiguration{ConfigFileUsed: viperInstance.ConfigFileUsed()}, nil
}
