package frontend

import (
	"fmt"
	"net/url"
	"os"

	"github.com/labstack/gommon/bytes"
	"gopkg.in/yaml.v3"
)

func LoadFrontendConfig(filepath string) (*FrontendConfig, error) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}
	return Unmarshal(content)
}

// Unmarshal reads config from yaml, fills defaults and validates it.
func Unmarshal(conf []byte) (*FrontendConfig, error) {
	var out FrontendConfig
	if err := yaml.Unmarshal(conf, &out); err != nil {
		return nil, err
	}
	out.fillDefaults()
	if err := out.validate(); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *FrontendConfig) fillDefaults() {
	if c.ServerPort == "" {
		c.ServerPort = DefaultServerPort
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	if c.BcryptCost == 0 {
		c.BcryptCost = DefaultBcryptCost
	}
	if c.UploadLimit == "" {
		c.UploadLimit = DefaultUploadLimit
	}

	p := &c.Photos
	if p.Driver == "" {
		p.Driver = PhotoDriverLocal
	}
	if p.PublicDir == "" {
		p.PublicDir = DefaultPublicDir
	}
	if p.URLPrefix == "" {
		p.URLPrefix = DefaultURLPrefix
	}
}

func (c *FrontendConfig) validate() error {
	api, err := url.Parse(c.BackendApiRoot)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBackendApiRoot, err)
	}
	if !api.IsAbs() || api.Hostname() == "" {
		return fmt.Errorf("%w: should be absolute URL with host: %q", ErrInvalidBackendApiRoot, c.BackendApiRoot)
	}

	if n, err := bytes.Parse(c.UploadLimit); err != nil || n <= 0 {
		return fmt.Errorf("%w: %q", ErrInvalidUploadLimit, c.UploadLimit)
	}

	switch c.Photos.Driver {
	case PhotoDriverLocal:
	case PhotoDriverS3:
		if c.Photos.Bucket == "" {
			return fmt.Errorf("%w: bucket is required for s3 driver", ErrInvalidPhotos)
		}
	default:
		return fmt.Errorf("%w: unknown driver: %q", ErrInvalidPhotos, c.Photos.Driver)
	}
	return nil
}
