package frontend

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultServerPort     = "8080"
	DefaultRequestTimeout = 10 * time.Second
	DefaultBcryptCost     = 10
	DefaultPublicDir      = "public"
	DefaultURLPrefix      = "/doctors"
	DefaultUploadLimit    = "10M"
)

type PhotoDriver string

const (
	PhotoDriverLocal PhotoDriver = "local"
	PhotoDriverS3    PhotoDriver = "s3"
)

var (
	ErrInvalidBackendApiRoot = errors.New("config: backend_api_root is invalid")
	ErrInvalidPhotos         = errors.New("config: photos is invalid")
	ErrInvalidUploadLimit    = errors.New("config: upload_limit is invalid")
)

type FrontendConfig struct {
	// ServerPort is the port where the web server listens.
	ServerPort string

	// BackendApiRoot is the root URL of the MyHelp API.
	BackendApiRoot string

	// Production makes cookies Secure.
	Production bool

	// RequestTimeout bounds each request to the MyHelp API.
	RequestTimeout time.Duration

	// BcryptCost is the cost of password hashes created on registration.
	BcryptCost int

	// UploadLimit bounds bodies of photo uploads, like "10M" or "512K".
	UploadLimit string

	Photos PhotosConfig
}

// PhotosConfig tells where doctor photos are stored.
type PhotosConfig struct {
	Driver PhotoDriver

	// PublicDir is the directory served as web root. Local driver only.
	PublicDir string

	// URLPrefix is prepended to names of photos to make their public path.
	//
	// For local driver, it is also the subdirectory of PublicDir where photos are stored.
	// For s3 driver, it is the URL where objects in the bucket are published.
	URLPrefix string

	Bucket    string
	Region    string
	Endpoint  string
	PathStyle bool
}

func (c *FrontendConfig) UnmarshalYAML(node *yaml.Node) error {
	raw := struct {
		ServerPort     string        `yaml:"server_port"`
		BackendApiRoot string        `yaml:"backend_api_root"`
		Production     bool          `yaml:"production"`
		RequestTimeout string        `yaml:"request_timeout"`
		BcryptCost     int           `yaml:"bcrypt_cost"`
		UploadLimit    string        `yaml:"upload_limit"`
		Photos         *PhotosConfig `yaml:"photos"`
	}{}
	if err := node.Decode(&raw); err != nil {
		return err
	}

	var timeout time.Duration
	if raw.RequestTimeout != "" {
		t, err := time.ParseDuration(raw.RequestTimeout)
		if err != nil {
			return fmt.Errorf("config: request_timeout: %w", err)
		}
		timeout = t
	}

	*c = FrontendConfig{
		ServerPort:     raw.ServerPort,
		BackendApiRoot: raw.BackendApiRoot,
		Production:     raw.Production,
		RequestTimeout: timeout,
		BcryptCost:     raw.BcryptCost,
		UploadLimit:    raw.UploadLimit,
	}
	if raw.Photos != nil {
		c.Photos = *raw.Photos
	}
	return nil
}

func (p *PhotosConfig) UnmarshalYAML(node *yaml.Node) error {
	raw := struct {
		Driver    string `yaml:"driver"`
		PublicDir string `yaml:"public_dir"`
		URLPrefix string `yaml:"url_prefix"`
		Bucket    string `yaml:"bucket"`
		Region    string `yaml:"region"`
		Endpoint  string `yaml:"endpoint"`
		PathStyle bool   `yaml:"path_style"`
	}{}
	if err := node.Decode(&raw); err != nil {
		return err
	}

	*p = PhotosConfig{
		Driver:    PhotoDriver(raw.Driver),
		PublicDir: raw.PublicDir,
		URLPrefix: raw.URLPrefix,
		Bucket:    raw.Bucket,
		Region:    raw.Region,
		Endpoint:  raw.Endpoint,
		PathStyle: raw.PathStyle,
	}
	return nil
}
