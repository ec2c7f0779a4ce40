package config

import (
	"encoding/json"
	"log"
	"os"
	"sync"
)

// AppConfig holds the structure of the configuration
type AppConfig struct {
	SelfPath         string `json:"selfpath"`
	Port             string `json:"port"`
	Blocksize        int    `json:"blocksize"`
	DBPath           string `json:"dbpath"`
	BoardDir         string `json:"boarddir"`
	TileDir          string `json:"tiledir"`
	RefreshInterval  int    `json:"refresh_interval"`
	StreamIntervalMs int    `json:"stream_interval_ms"`
}

var (
	instance = defaultConfig()
	once     sync.Once
	mu       sync.RWMutex
)

func defaultConfig() *AppConfig {
	return &AppConfig{
		SelfPath:         "http://www.example.com", // Default value
		Port:             "38870",                  // Default value
		Blocksize:        20,
		DBPath:           "game.db",
		BoardDir:         "boards",
		TileDir:          "tiles",
		RefreshInterval:  0,
		StreamIntervalMs: 500,
	}
}

// LoadConfig initializes and returns the instance of AppConfig
func LoadConfig(filePath string) *AppConfig {
	once.Do(func() {
		mu.Lock()
		defer mu.Unlock()
		// Load the config file if it exists, otherwise create one
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			saveConfig(filePath)
			log.Printf("Created default config %s", filePath)
		} else {
			loadConfig(filePath)
		}
	})
	c := Get()
	return &c
}

// loadConfig loads the settings from the file
func loadConfig(filePath string) {
	file, err := os.Open(filePath)
	if err != nil {
		panic(err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	if err := decoder.Decode(instance); err != nil {
		panic(err)
	}
}

// saveConfig saves the current settings to the file
func saveConfig(filePath string) {
	file, err := os.Create(filePath)
	if err != nil {
		panic(err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(instance); err != nil {
		panic(err)
	}
}

// Get returns a copy of the current configuration.
func Get() AppConfig {
	mu.RLock()
	defer mu.RUnlock()
	return *instance
}

// Set replaces the current configuration.
func Set(c AppConfig) {
	mu.Lock()
	defer mu.Unlock()
	*instance = c
}

// GetConfigValue returns the value of the configuration by key
func GetConfigValue(key string) interface{} {
	c := Get()
	switch key {
	case "selfpath":
		return c.SelfPath
	case "port":
		return c.Port
	case "blocksize":
		return c.Blocksize
	case "dbpath":
		return c.DBPath
	case "boarddir":
		return c.BoardDir
	case "tiledir":
		return c.TileDir
	case "refresh_interval":
		return c.RefreshInterval
	case "stream_interval_ms":
		return c.StreamIntervalMs
	default:
		return ""
	}
}
