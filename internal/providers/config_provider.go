package providers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"sfd/internal/structures"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "SFD_LOG_LEVEL")
	viper.BindEnv("persistence.saveInterval", "SFD_SAVE_INTERVAL")
	viper.BindEnv("feedback.statsInterval", "SFD_STATS_INTERVAL")
	viper.BindEnv("cache.enabled", "SFD_CACHE_ENABLED")
	viper.BindEnv("cache.size", "SFD_CACHE_SIZE")
	viper.BindEnv("admin.username", "SFD_ADMIN_USERNAME")
	viper.BindEnv("admin.password", "SFD_ADMIN_PASSWORD")
	viper.BindEnv("admin.jwtSecret", "SFD_ADMIN_JWT_SECRET")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "SimpleFeedbackDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
