package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// AppConfig holds the structure of the configuration
type AppConfig struct {
	SelfPath        string `json:"selfpath"`
	Port            string `json:"port"`
	Blocksize       int    `json:"blocksize"`
	Width           int    `json:"width"`            // 地图宽度，格子数
	Height          int    `json:"height"`           // 地图高度，格子数
	WrapAround      bool   `json:"wrap_around"`      // 是否穿墙
	StepEvery       int    `json:"step_every"`       // 每多少帧走一步
	RefreshInterval int    `json:"refresh_interval"` // HTTP会话一步对应的秒数
	ScoreFile       string `json:"score_file"`       // 排行榜文件路径
	SpritesDir      string `json:"sprites_dir"`      // 贴图目录
}

var (
	instance *AppConfig
	mu       sync.RWMutex
	once     sync.Once
)

// LoadConfig initializes and returns the instance of AppConfig
func LoadConfig(filePath string) *AppConfig {
	once.Do(func() {
		instance = &AppConfig{
			SelfPath:        "http://www.example.com", // Default value
			Port:            "38870",                  // Default value
			Blocksize:       25,
			Width:           30,
			Height:          20,
			WrapAround:      true,
			StepEvery:       15,
			RefreshInterval: 3,
			ScoreFile:       "high_scores.txt",
			SpritesDir:      "./sprites",
		}
		// Load the config file if it exists, otherwise create one
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			saveConfig(filePath)
		} else {
			loadConfig(filePath)
		}
	})
	return instance
}

// loadConfig loads the settings from the file
func loadConfig(filePath string) {
	file, err := os.Open(filePath)
	if err != nil {
		panic(err)
	}
	defer file.Close()

	mu.Lock()
	defer mu.Unlock()
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
	if err := encoder.Encode(instance); err != nil {
		panic(err)
	}
}

// WatchConfig 监听配置文件改动并热更新到内存
func WatchConfig(filePath string) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fmt.Println("error creating config watcher:", err)
		return
	}
	defer watcher.Close()

	done := make(chan bool)
	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&fsnotify.Write == fsnotify.Write {
					loadConfig(filePath)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				fmt.Println("error:", err)
			}
		}
	}()

	if err = watcher.Add(filePath); err != nil {
		fmt.Println("error watching config file:", err)
		return
	}
	<-done
}

// Get returns the current configuration snapshot
func Get() AppConfig {
	mu.RLock()
	defer mu.RUnlock()
	return *instance
}

// GetConfigValue returns the value of the configuration by key
func GetConfigValue(key string) interface{} {
	mu.RLock()
	defer mu.RUnlock()
	switch key {
	case "selfpath":
		return instance.SelfPath
	case "port":
		return instance.Port
	case "blocksize":
		return instance.Blocksize
	case "width":
		return instance.Width
	case "height":
		return instance.Height
	case "wrap_around":
		return instance.WrapAround
	case "step_every":
		return instance.StepEvery
	case "refresh_interval":
		return instance.RefreshInterval
	case "score_file":
		return instance.ScoreFile
	case "sprites_dir":
		return instance.SpritesDir
	default:
		return ""
	}
}
