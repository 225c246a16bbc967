package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-ldap/ldap/v3"
	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

// Provider names accepted in the hosting section.
const (
	ProviderGitea  = "gitea"
	ProviderGitHub = "github"
)

// Directory attribute defaults matching the common posixGroup schema.
const (
	DefaultGroupAttribute  = "cn"
	DefaultMemberAttribute = "memberUid"
)

// Config represents the complete teamsync configuration. It is loaded
// once per run and never mutated afterwards; components receive it at
// construction.
type Config struct {
	Hosting   Hosting   `json:"hosting" yaml:"hosting"`
	Directory Directory `json:"directory" yaml:"directory"`
	Mapping   Mapping   `json:"mapping" yaml:"mapping"`
}

// Hosting represents the Git hosting service connection settings
type Hosting struct {
	Provider string `json:"provider" yaml:"provider"`
	BaseURL  string `json:"base_url" yaml:"base_url"`
	Token    string `json:"token" yaml:"token"`
}

// Directory represents the LDAP connection and search settings
type Directory struct {
	Host            string `json:"host" yaml:"host"`
	BindDN          string `json:"bind_dn" yaml:"bind_dn"`
	BindPassword    string `json:"bind_password" yaml:"bind_password"`
	SearchBase      string `json:"search_base" yaml:"search_base"`
	SearchFilter    string `json:"search_filter" yaml:"search_filter"`
	GroupAttribute  string `json:"group_attribute" yaml:"group_attribute"`
	MemberAttribute string `json:"member_attribute" yaml:"member_attribute"`
}

// Load reads, decodes and validates a configuration file. JSON is the
// canonical format; files ending in .yaml or .yml are decoded as YAML.
// Every failure is reported as a *ConfigError, which callers treat as
// fatal.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: fmt.Errorf("failed to read config file: %w", err)}
	}

	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}

	return cfg, nil
}

// Parse decodes and validates raw configuration bytes. The format is
// chosen by the file extension; anything other than .yaml/.yml decodes
// as JSON.
func Parse(data []byte, ext string) (*Config, error) {
	var cfg Config
	var err error

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.normalize()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// normalize trims surrounding whitespace and lowercases the names both
// services treat case-insensitively: the provider, directory group
// names and the org/team mapping targets. Usernames and the bind
// password are never touched.
func (c *Config) normalize() {
	c.Hosting.Provider = strings.ToLower(strings.TrimSpace(c.Hosting.Provider))
	c.Hosting.BaseURL = strings.TrimSpace(c.Hosting.BaseURL)
	c.Hosting.Token = strings.TrimSpace(c.Hosting.Token)

	c.Directory.Host = strings.TrimSpace(c.Directory.Host)
	c.Directory.BindDN = strings.TrimSpace(c.Directory.BindDN)
	c.Directory.SearchBase = strings.TrimSpace(c.Directory.SearchBase)
	c.Directory.SearchFilter = strings.TrimSpace(c.Directory.SearchFilter)
	c.Directory.GroupAttribute = strings.TrimSpace(c.Directory.GroupAttribute)
	c.Directory.MemberAttribute = strings.TrimSpace(c.Directory.MemberAttribute)

	if c.Mapping == nil {
		return
	}
	normalized := make(Mapping, len(c.Mapping))
	for group, targets := range c.Mapping {
		key := strings.ToLower(strings.TrimSpace(group))
		lowered := make([]string, 0, len(targets))
		for _, target := range targets {
			lowered = append(lowered, strings.ToLower(strings.TrimSpace(target)))
		}
		normalized[key] = append(normalized[key], lowered...)
	}
	c.Mapping = normalized
}

func (c *Config) applyDefaults() {
	if c.Hosting.Provider == "" {
		c.Hosting.Provider = ProviderGitea
	}
	if c.Directory.GroupAttribute == "" {
		c.Directory.GroupAttribute = DefaultGroupAttribute
	}
	if c.Directory.MemberAttribute == "" {
		c.Directory.MemberAttribute = DefaultMemberAttribute
	}
}

var ldapURLPattern = regexp.MustCompile(`^ldap[si]?://`)

// Validate checks every recognized field and reports all problems at
// once rather than stopping at the first.
func (c *Config) Validate() error {
	var errs *multierror.Error

	switch c.Hosting.Provider {
	case ProviderGitea, ProviderGitHub:
	default:
		errs = multierror.Append(errs, &ValidationError{
			Field:   "hosting.provider",
			Value:   c.Hosting.Provider,
			Message: fmt.Sprintf("provider must be %q or %q", ProviderGitea, ProviderGitHub),
		})
	}

	if c.Hosting.Token == "" {
		errs = multierror.Append(errs, &ValidationError{
			Field:   "hosting.token",
			Message: "access token is required",
		})
	}

	if c.Hosting.BaseURL == "" {
		// The public GitHub API needs no base URL; a Gitea instance does.
		if c.Hosting.Provider == ProviderGitea {
			errs = multierror.Append(errs, &ValidationError{
				Field:   "hosting.base_url",
				Message: "base URL is required for the gitea provider",
			})
		}
	} else if strings.Contains(c.Hosting.BaseURL, "://") &&
		!strings.HasPrefix(c.Hosting.BaseURL, "http://") &&
		!strings.HasPrefix(c.Hosting.BaseURL, "https://") {
		errs = multierror.Append(errs, &ValidationError{
			Field:   "hosting.base_url",
			Value:   c.Hosting.BaseURL,
			Message: "base URL must use the http or https scheme",
		})
	}

	if c.Directory.Host == "" {
		errs = multierror.Append(errs, &ValidationError{
			Field:   "directory.host",
			Message: "directory host is required",
		})
	} else if !ldapURLPattern.MatchString(c.Directory.Host) {
		errs = multierror.Append(errs, &ValidationError{
			Field:   "directory.host",
			Value:   c.Directory.Host,
			Message: "directory host must be an ldap://, ldaps:// or ldapi:// URL",
		})
	}

	if c.Directory.BindDN == "" {
		errs = multierror.Append(errs, &ValidationError{
			Field:   "directory.bind_dn",
			Message: "bind DN is required",
		})
	}
	if c.Directory.BindPassword == "" {
		errs = multierror.Append(errs, &ValidationError{
			Field:   "directory.bind_password",
			Message: "bind password is required",
		})
	}
	if c.Directory.SearchBase == "" {
		errs = multierror.Append(errs, &ValidationError{
			Field:   "directory.search_base",
			Message: "search base is required",
		})
	}

	if c.Directory.SearchFilter == "" {
		errs = multierror.Append(errs, &ValidationError{
			Field:   "directory.search_filter",
			Message: "search filter is required",
		})
	} else if _, err := ldap.CompileFilter(c.Directory.SearchFilter); err != nil {
		errs = multierror.Append(errs, &ValidationError{
			Field:   "directory.search_filter",
			Value:   c.Directory.SearchFilter,
			Message: fmt.Sprintf("search filter is not a valid LDAP filter: %v", err),
		})
	}

	for _, group := range c.Mapping.Groups() {
		if group == "" {
			errs = multierror.Append(errs, &ValidationError{
				Field:   "mapping",
				Message: "directory group name cannot be empty",
			})
			continue
		}
		for _, target := range c.Mapping[group] {
			if _, err := ParseTeamRef(target); err != nil {
				errs = multierror.Append(errs, &ValidationError{
					Field:   "mapping." + group,
					Value:   target,
					Message: "mapping target must have the form org/team",
				})
			}
		}
	}

	return errs.ErrorOrNil()
}
