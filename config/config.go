package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Server  ServerConfig  `yaml:"server"`
	Content ContentConfig `yaml:"content"`
	Cache   CacheConfig   `yaml:"cache"`
	Stats   StatsConfig   `yaml:"stats"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// ServerConfig 는 API 서버 리슨 주소와 CORS 허용 origin 을 정의한다.
type ServerConfig struct {
	Addr                 string        `yaml:"addr"`
	AllowedOrigins       []string      `yaml:"allowed_origins"`
	SlowRequestThreshold time.Duration `yaml:"slow_request_threshold"`
}

// ContentConfig 는 포스트 원본(MDX) 위치와 매니페스트를 정의한다.
//
// BaseURL 이 설정되어 있으면 HTTP 로 가져오고, 비어 있으면 Root 디렉터리에서 읽는다.
type ContentConfig struct {
	Root         string            `yaml:"root"`
	BaseURL      string            `yaml:"base_url"`
	Extension    string            `yaml:"extension"`
	FetchTimeout time.Duration     `yaml:"fetch_timeout"`
	Manifest     []string          `yaml:"manifest"`
	Categories   map[string]string `yaml:"categories"`
	// Watch 가 true 이고 Root 에서 읽는 경우 파일 변경 시 즉시 재로딩한다.
	Watch        bool              `yaml:"watch"`
}

// CacheConfig 는 포스트 목록 메모리 캐시 설정이다.
type CacheConfig struct {
	Key             string        `yaml:"key"`
	FreshnessWindow time.Duration `yaml:"freshness_window"`
}

// StatsConfig 는 조회수/좋아요 통계 저장소(MongoDB) 설정이다.
// Enabled 가 false 이면 메타데이터에 기록된 값만 사용한다.
type StatsConfig struct {
	Enabled  bool          `yaml:"enabled"`
	MongoURI string        `yaml:"mongo_uri"`
	MongoDB  string        `yaml:"mongo_db"`
	Timeout  time.Duration `yaml:"timeout"`
}

// DefaultCategories 는 카테고리 폴더 키 -> 표시 이름 매핑이다.
// 매핑에 없는 키는 그대로 표시 이름으로 사용된다.
var DefaultCategories = map[string]string{
	"react":       "React",
	"typescript":  "TypeScript",
	"javascript":  "JavaScript",
	"css":         "CSS",
	"performance": "Performance",
	"tools":       "Tools",
	"tutorial":    "Tutorial",
}

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	c, err := Load(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		panic(err)
	}
	config = c
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

// Load reads a config file, expands ${VAR} references and applies defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var c AppConfig
	if err := yaml.Unmarshal([]byte(expanded), &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// 상대 경로의 content root 는 설정 파일 위치 기준으로 해석한다.
	if c.Content.Root != "" && !filepath.IsAbs(c.Content.Root) {
		c.Content.Root = filepath.Join(filepath.Dir(path), c.Content.Root)
	}

	c.setDefaults()
	return &c, nil
}

func (c *AppConfig) setDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.SlowRequestThreshold == 0 {
		c.Server.SlowRequestThreshold = time.Second
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"*"}
	}
	if c.Content.Extension == "" {
		c.Content.Extension = ".mdx"
	}
	if c.Content.FetchTimeout == 0 {
		c.Content.FetchTimeout = 5 * time.Second
	}
	if len(c.Content.Categories) == 0 {
		c.Content.Categories = DefaultCategories
	}
	if c.Cache.Key == "" {
		c.Cache.Key = "default"
	}
	if c.Cache.FreshnessWindow == 0 {
		c.Cache.FreshnessWindow = 5 * time.Minute
	}
	if c.Stats.MongoDB == "" {
		c.Stats.MongoDB = "techblog"
	}
	if c.Stats.Timeout == 0 {
		c.Stats.Timeout = 2 * time.Second
	}
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
