package config

import (
	"fmt"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/leighmacdonald/tracks/consts"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
	"io"
	"net/url"
	"os"
)

const (
	// GeneralRunMode defines the application run mode.
	// debug|release|test
	GeneralRunMode = "general_run_mode"

	// GeneralLogLevel sets the logrus Logger level
	// info|warn|debug|trace
	GeneralLogLevel = "general_log_level"

	// GeneralLogColour toggles between colourised console output
	// true|false
	GeneralLogColour = "general_log_colour"

	// GeneralLogFile enables writing a copy of the log output to a rotated file
	// ./log/tracks.log
	GeneralLogFile = "general_log_file"
	// GeneralLogMaxSize is the size in megabytes a log file can reach before being rotated
	// 100
	GeneralLogMaxSize = "general_log_max_size"
	// GeneralLogMaxBackups is the number of rotated log files to keep
	// 3
	GeneralLogMaxBackups = "general_log_max_backups"
	// GeneralLogMaxAge is the number of days to retain rotated log files
	// 28
	GeneralLogMaxAge = "general_log_max_age"

	// APIListen sets the host and port that the API should bind to
	// localhost:8000
	APIListen = "api_listen"
	// APITLS enables TLS on the API interface.
	// true|false
	APITLS = "api_tls"
	// APITLSCert is the path to the PEM encoded certificate used when api_tls is enabled
	APITLSCert = "api_tls_cert"
	// APITLSKey is the path to the PEM encoded private key used when api_tls is enabled
	APITLSKey = "api_tls_key"

	// SeedEnabled toggles loading the seed file into the track store on startup.
	// Disable this for persistent stores that already hold their data.
	// true|false
	SeedEnabled = "seed_enabled"
	// SeedPath is the JSON or YAML file loaded into the track store on startup
	// data/tracks.json
	SeedPath = "seed_path"

	// StoreTracksType sets the backing store type to be used for tracks
	// memory|redis|postgres|mysql|sqlite|http
	StoreTracksType = "store_tracks_type"
	// StoreTracksHost is the host to connect to
	// localhost
	StoreTracksHost = "store_tracks_host"
	// StoreTracksPort is the port to connect to
	// 3306|5432|6379|8000
	StoreTracksPort = "store_tracks_port"
	// StoreTracksDatabase is the database / schema name to open on the backing store
	// Redis uses numeric values 0-16 by default, sqlite uses a file path
	// tracks|0|./tracks.db
	StoreTracksDatabase = "store_tracks_database"
	// StoreTracksUser user to connect with
	// tracks
	StoreTracksUser = "store_tracks_user"
	// StoreTracksPassword password to connect with
	// tracks
	StoreTracksPassword = "store_tracks_password"
	// StoreTracksProperties additional properties passed to the backing store configuration
	StoreTracksProperties = "store_tracks_properties"

	// ClientURL is the base url of the API used by the track client commands
	// http://localhost:8000
	ClientURL = "client_url"
)

// StoreConfig provides a common config struct for backing stores
type StoreConfig struct {
	Type       string
	Host       string
	Port       int
	Username   string
	Password   string
	Database   string
	Properties string
}

// DSN constructs a URI for database connection strings
//
// [user]:[password]@tcp([host]:[port])[/database][?properties]
func (c StoreConfig) DSN() string {
	props := c.Properties
	if props != "" {
		props = "?" + props
	}
	s := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s%s",
		c.Username, c.Password, c.Host, c.Port, c.Database, props)
	u, err := url.Parse(s)
	if err != nil {
		log.Fatalf("Failed to construct valid database DSN: %s", err.Error())
		return ""
	}
	return u.String()
}

// URL constructs a URL style connection string using the scheme provided
//
// scheme://[user]:[password]@[host]:[port][/database][?properties]
func (c StoreConfig) URL(scheme string) string {
	u := url.URL{
		Scheme:   scheme,
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.Database,
		RawQuery: c.Properties,
	}
	if c.Username != "" {
		u.User = url.UserPassword(c.Username, c.Password)
	}
	return u.String()
}

// GetStoreConfig returns the config options for the track store
func GetStoreConfig() *StoreConfig {
	return &StoreConfig{
		Type:       viper.GetString(StoreTracksType),
		Host:       viper.GetString(StoreTracksHost),
		Port:       viper.GetInt(StoreTracksPort),
		Username:   viper.GetString(StoreTracksUser),
		Password:   viper.GetString(StoreTracksPassword),
		Database:   viper.GetString(StoreTracksDatabase),
		Properties: viper.GetString(StoreTracksProperties),
	}
}

// GetString is a convenience wrapper around viper.GetString
func GetString(key string) string {
	return viper.GetString(key)
}

// GetBool is a convenience wrapper around viper.GetBool
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetInt is a convenience wrapper around viper.GetInt
func GetInt(key string) int {
	return viper.GetInt(key)
}

func setDefaults() {
	viper.SetDefault(GeneralRunMode, gin.ReleaseMode)
	viper.SetDefault(GeneralLogLevel, "info")
	viper.SetDefault(GeneralLogColour, true)
	viper.SetDefault(GeneralLogFile, "")
	viper.SetDefault(GeneralLogMaxSize, 100)
	viper.SetDefault(GeneralLogMaxBackups, 3)
	viper.SetDefault(GeneralLogMaxAge, 28)
	viper.SetDefault(APIListen, ":8000")
	viper.SetDefault(APITLS, false)
	viper.SetDefault(SeedEnabled, true)
	viper.SetDefault(SeedPath, "data/tracks.json")
	viper.SetDefault(StoreTracksType, "memory")
	viper.SetDefault(StoreTracksHost, "localhost")
	viper.SetDefault(StoreTracksPort, 0)
	viper.SetDefault(StoreTracksDatabase, "tracks")
	viper.SetDefault(ClientURL, "http://localhost:8000")
}

// Read reads in config file and ENV variables if set.
//
// An explicitly provided config file that cannot be read results in consts.ErrInvalidConfig.
// When searching the default locations a missing config file is not an error and the
// defaults are used instead.
func Read(cfgFile string) error {
	// Values already set in the environment take precedence over the .env file
	if err := godotenv.Load(); err == nil {
		log.Debugf("Loaded .env file")
	}
	setDefaults()
	explicit := true
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else if os.Getenv("TRACKS_CONFIG") != "" {
		viper.SetConfigFile(os.Getenv("TRACKS_CONFIG"))
	} else {
		explicit = false
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			return errors.Wrap(err, "Could not determine home directory")
		}

		// Search config in home directory with name "tracks" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.AddConfigPath("../")
		viper.SetConfigName("tracks")
	}

	viper.AutomaticEnv() // read in environment variables that match

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); explicit || !notFound {
			return errors.Wrap(consts.ErrInvalidConfig, err.Error())
		}
	} else {
		log.Debugf("Using config file: %s", viper.ConfigFileUsed())
	}
	if err := setupLogger(viper.GetString(GeneralLogLevel), viper.GetBool(GeneralLogColour)); err != nil {
		return err
	}
	switch mode := viper.GetString(GeneralRunMode); mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		gin.SetMode(mode)
	default:
		return errors.Wrapf(consts.ErrInvalidConfig, "Invalid run mode: %s", mode)
	}
	return nil
}

func logOutput() io.Writer {
	logFile := viper.GetString(GeneralLogFile)
	if logFile == "" {
		return os.Stdout
	}
	return io.MultiWriter(os.Stdout, &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    viper.GetInt(GeneralLogMaxSize),
		MaxBackups: viper.GetInt(GeneralLogMaxBackups),
		MaxAge:     viper.GetInt(GeneralLogMaxAge),
	})
}

func setupLogger(levelStr string, colour bool) error {
	level, err := log.ParseLevel(levelStr)
	if err != nil {
		return errors.Wrapf(consts.ErrInvalidConfig, "Invalid log level defined: %s", levelStr)
	}
	log.SetFormatter(&log.TextFormatter{
		ForceColors:      colour,
		DisableTimestamp: true,
	})
	log.SetOutput(logOutput())
	log.SetLevel(level)
	return nil
}
