package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

const (
	defaultAPIBaseURL     = "http://localhost:8000"
	defaultWebBaseURL     = "http://localhost:5173"
	defaultRequestTimeout = 10 * time.Second
	defaultHomeDirName    = ".math-helper"
)

type AppConfig struct {
	Logging LoggingConfig `yaml:"logging"`

	// APIBaseURL 는 모든 요청 경로 앞에 붙는 원격 API 주소다. (예: http://localhost:8000)
	APIBaseURL string `yaml:"api_base_url"`
	// WebBaseURL 은 로그인 페이지 안내에 사용하는 웹 프론트엔드 주소다.
	WebBaseURL string `yaml:"web_base_url"`
	// LoginPath 는 인증이 필요할 때 안내하는 로그인 경로다.
	LoginPath string `yaml:"login_path"`

	// RequestTimeout 은 모든 아웃바운드 호출에 적용되는 deadline 이다.
	// 만료되면 일반 전송 실패와 동일하게 취급한다.
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// CredentialStorePath 는 access 토큰을 보관하는 로컬 저장소(sqlite) 경로다.
	CredentialStorePath string `yaml:"credential_store_path"`

	Articles ArticlesConfig `yaml:"articles"`
	StubAPI  StubAPIConfig  `yaml:"stub_api"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	// File 이 비어 있지 않으면 TUI 화면을 가리지 않도록 로그를 파일로 보낸다.
	File string `yaml:"file"`
}

// ArticlesConfig 는 기사 목록 미리보기 계산에 쓰이는 값들이다.
type ArticlesConfig struct {
	PreviewLength  int    `yaml:"preview_length"`
	WordsPerMinute int    `yaml:"words_per_minute"`
	PDFReadMinutes int    `yaml:"pdf_read_minutes"`
	TextExtractor  string `yaml:"text_extractor"`
}

// StubAPIConfig is the local development stub of the remote API.
type StubAPIConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	// Tokens 가 비어 있으면 비어 있지 않은 모든 bearer 토큰을 허용한다.
	Tokens []string `yaml:"tokens"`
}

var (
	config   *AppConfig
	configMu sync.Mutex
)

func InitApp() {
	c, err := Load(GetBasePath())
	if err != nil {
		panic(err)
	}

	configMu.Lock()
	config = &c
	configMu.Unlock()
}

// Load 는 baseDir 의 .env 와 config.yaml 을 읽어 설정을 만든다.
// config.yaml 이 없으면 기본값과 환경변수만으로 구성한다.
func Load(baseDir string) (AppConfig, error) {
	// load environment variables
	_ = godotenv.Load(filepath.Join(baseDir, ENV_FILE))

	c := Defaults()

	data, err := os.ReadFile(filepath.Join(baseDir, CONFIG_FILE))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &c); err != nil {
			return AppConfig{}, fmt.Errorf("parse %s: %w", CONFIG_FILE, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return AppConfig{}, fmt.Errorf("read %s: %w", CONFIG_FILE, err)
	}

	applyEnv(&c)
	c.fillDefaults()

	if err := c.Validate(); err != nil {
		return AppConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return c, nil
}

// Defaults 는 config.yaml 이 없을 때 사용하는 기본 설정이다.
func Defaults() AppConfig {
	home := homeDir()
	return AppConfig{
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(home, "client.log"),
		},
		APIBaseURL:          defaultAPIBaseURL,
		WebBaseURL:          defaultWebBaseURL,
		LoginPath:           "/login",
		RequestTimeout:      defaultRequestTimeout,
		CredentialStorePath: filepath.Join(home, "storage.db"),
		Articles: ArticlesConfig{
			PreviewLength:  100,
			WordsPerMinute: 200,
			PDFReadMinutes: 3,
			TextExtractor:  "readability",
		},
		StubAPI: StubAPIConfig{
			Addr: ":8000",
		},
	}
}

func applyEnv(c *AppConfig) {
	if v := os.Getenv("API_URL"); v != "" {
		c.APIBaseURL = v
	}
	if v := os.Getenv("WEB_BASE_URL"); v != "" {
		c.WebBaseURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv("STUB_API_ADDR"); v != "" {
		c.StubAPI.Addr = v
	}
}

// fillDefaults 는 yaml 에서 0 값으로 덮어쓴 항목을 기본값으로 되돌린다.
func (c *AppConfig) fillDefaults() {
	d := Defaults()
	if c.Logging.Level == "" {
		c.Logging.Level = d.Logging.Level
	}
	if c.LoginPath == "" {
		c.LoginPath = d.LoginPath
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = d.RequestTimeout
	}
	if c.CredentialStorePath == "" {
		c.CredentialStorePath = d.CredentialStorePath
	}
	if c.Articles.PreviewLength <= 0 {
		c.Articles.PreviewLength = d.Articles.PreviewLength
	}
	if c.Articles.WordsPerMinute <= 0 {
		c.Articles.WordsPerMinute = d.Articles.WordsPerMinute
	}
	if c.Articles.PDFReadMinutes <= 0 {
		c.Articles.PDFReadMinutes = d.Articles.PDFReadMinutes
	}
	if c.Articles.TextExtractor == "" {
		c.Articles.TextExtractor = d.Articles.TextExtractor
	}
	if c.StubAPI.Addr == "" {
		c.StubAPI.Addr = d.StubAPI.Addr
	}
}

// Validate checks that the required fields are set.
func (c AppConfig) Validate() error {
	if strings.TrimSpace(c.APIBaseURL) == "" {
		return errors.New("api_base_url cannot be empty")
	}
	switch c.Articles.TextExtractor {
	case "readability", "trafilatura", "plain":
	default:
		return fmt.Errorf("unknown articles.text_extractor %q", c.Articles.TextExtractor)
	}
	return nil
}

// LoginURL 은 웹 프론트엔드의 로그인 페이지 전체 주소를 반환한다.
func (c AppConfig) LoginURL() string {
	return strings.TrimRight(c.WebBaseURL, "/") + "/" + strings.TrimLeft(c.LoginPath, "/")
}

func GetConfig() AppConfig {
	configMu.Lock()
	loaded := config != nil
	configMu.Unlock()
	if !loaded {
		InitApp()
	}

	configMu.Lock()
	defer configMu.Unlock()
	return *config
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

	return cwd
}

// homeDir 는 로컬 상태(토큰 저장소, 로그)를 두는 디렉터리다.
// MATH_HELPER_HOME 이 있으면 그것을 우선한다.
func homeDir() string {
	if v := os.Getenv("MATH_HELPER_HOME"); v != "" {
		return v
	}
	if h, err := os.UserHomeDir(); err == nil && h != "" {
		return filepath.Join(h, defaultHomeDirName)
	}
	return defaultHomeDirName
}
