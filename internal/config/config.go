package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// 环境变量
const (
	EnvTaskAPIBaseURL = "CONTROLADORIA_TASKAPI_BASE_URL"
	EnvTaskAPIToken   = "CONTROLADORIA_TASKAPI_TOKEN"
)

// ConfigFileName 配置文件名，位于可执行文件同目录
const ConfigFileName = "config.toml"

// AppConfig 应用配置
type AppConfig struct {
	Server  ServerConfig  `toml:"server"`
	Data    DataConfig    `toml:"data"`
	Ingest  IngestConfig  `toml:"ingest"`
	TaskAPI TaskAPIConfig `toml:"taskapi"`
	Log     LogConfig     `toml:"log"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port          int  `toml:"port"`
	DevMode       bool `toml:"dev_mode"`
	MaxUploadMB   int  `toml:"max_upload_mb"`
	ReadTimeoutS  int  `toml:"read_timeout_seconds"`
	WriteTimeoutS int  `toml:"write_timeout_seconds"`
}

// DataConfig 数据配置
type DataConfig struct {
	DataDir string `toml:"data_dir"`
	DBFile  string `toml:"db_file"`
}

// IngestConfig 表格导入配置，表头行从 0 开始，-1 表示自动识别
type IngestConfig struct {
	FilingHeaderRow int `toml:"filing_header_row"`
	ClientHeaderRow int `toml:"client_header_row"`
}

// TaskAPIConfig 外部任务系统配置
type TaskAPIConfig struct {
	BaseURL        string `toml:"base_url"`
	Token          string `toml:"token"`
	PageSize       int    `toml:"page_size"`
	MaxPages       int    `toml:"max_pages"`
	MaxRetries     int    `toml:"max_retries"`
	RetryBackoffMS int    `toml:"retry_backoff_ms"`
	TimeoutS       int    `toml:"timeout_seconds"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `toml:"level"`  // debug/info/warn/error
	Format string `toml:"format"` // console/json
}

// LoadConfigInfo 配置加载元信息
type LoadConfigInfo struct {
	Path          string
	FileFound     bool
	PortSpecified bool
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:          20262,
			DevMode:       false,
			MaxUploadMB:   32,
			ReadTimeoutS:  30,
			WriteTimeoutS: 120,
		},
		Data: DataConfig{
			DataDir: "data",
			DBFile:  "controladoria.db",
		},
		Ingest: IngestConfig{
			FilingHeaderRow: 1,
			ClientHeaderRow: 0,
		},
		TaskAPI: TaskAPIConfig{
			PageSize:       1000,
			MaxPages:       50,
			MaxRetries:     3,
			RetryBackoffMS: 500,
			TimeoutS:       30,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate 检查配置取值
func (c *AppConfig) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}
	if c.Server.MaxUploadMB <= 0 {
		errs = append(errs, fmt.Errorf("server.max_upload_mb must be positive: %d", c.Server.MaxUploadMB))
	}
	for _, hr := range []struct {
		name string
		row  int
	}{
		{"ingest.filing_header_row", c.Ingest.FilingHeaderRow},
		{"ingest.client_header_row", c.Ingest.ClientHeaderRow},
	} {
		if hr.row < -1 {
			errs = append(errs, fmt.Errorf("%s must be >= -1: %d", hr.name, hr.row))
		}
	}
	if c.TaskAPI.PageSize <= 0 || c.TaskAPI.MaxPages <= 0 {
		errs = append(errs, fmt.Errorf("taskapi.page_size and taskapi.max_pages must be positive"))
	}
	if c.TaskAPI.MaxRetries < 0 {
		errs = append(errs, fmt.Errorf("taskapi.max_retries must be >= 0: %d", c.TaskAPI.MaxRetries))
	}
	switch strings.ToLower(c.Log.Format) {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be console or json: %q", c.Log.Format))
	}
	return errors.Join(errs...)
}

// RetryBackoff 首次重试等待时间
func (c TaskAPIConfig) RetryBackoff() time.Duration {
	return time.Duration(c.RetryBackoffMS) * time.Millisecond
}

// Timeout 单次请求超时
func (c TaskAPIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutS) * time.Second
}

// Configured 是否配置了任务系统地址
func (c TaskAPIConfig) Configured() bool {
	return strings.TrimSpace(c.BaseURL) != ""
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// DefaultConfigPath 可执行文件同目录下的 config.toml
func DefaultConfigPath() string {
	exeDir, err := GetExeDir()
	if err != nil {
		// 无法获取可执行文件目录，使用当前目录
		exeDir = "."
	}
	return filepath.Join(exeDir, ConfigFileName)
}

// LoadConfigWithInfo 从 config.toml 加载配置并返回元信息，path 为空时使用默认路径
func LoadConfigWithInfo(path string) (*AppConfig, LoadConfigInfo, error) {
	if path == "" {
		path = DefaultConfigPath()
	}
	info := LoadConfigInfo{Path: path}
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		info.FileFound = true
		info.PortSpecified = isPortSpecifiedInToml(data)
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, info, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// 配置文件不存在，使用默认配置
	default:
		return nil, info, fmt.Errorf("failed to read %s: %w", path, err)
	}

	// 环境变量覆盖（用于部署时注入凭据）
	if v := os.Getenv(EnvTaskAPIBaseURL); v != "" {
		config.TaskAPI.BaseURL = v
	}
	if v := os.Getenv(EnvTaskAPIToken); v != "" {
		config.TaskAPI.Token = v
	}

	if err := config.Validate(); err != nil {
		return nil, info, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return config, info, nil
}

// LoadConfig 从 config.toml 加载配置
func LoadConfig(path string) (*AppConfig, error) {
	config, _, err := LoadConfigWithInfo(path)
	return config, err
}

// SaveConfig 保存配置到 path
func SaveConfig(path string, config *AppConfig) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// EnsureDataDir 确保数据目录存在，相对路径以可执行文件目录为基准
func EnsureDataDir(config *AppConfig) (string, error) {
	dataDir := config.Data.DataDir
	if !filepath.IsAbs(dataDir) {
		exeDir, err := GetExeDir()
		if err != nil {
			exeDir = "."
		}
		dataDir = filepath.Join(exeDir, dataDir)
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}
	return dataDir, nil
}

// DBPath 导入日志数据库路径
func DBPath(config *AppConfig, dataDir string) string {
	return filepath.Join(dataDir, config.Data.DBFile)
}
