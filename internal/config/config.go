package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

// Connection describes how to reach the Jira instance being populated.
type Connection struct {
	URL      string
	Username string
	Password string

	// DeleteProjects deletes and recreates projects that already exist.
	DeleteProjects bool
}

// NewViper returns a viper instance with the connection defaults registered
// and environment lookup enabled (ob.setup.jira.url -> OB_SETUP_JIRA_URL).
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyURL, DefaultURL)
	v.SetDefault(KeyUsername, DefaultUsername)
	v.SetDefault(KeyPassword, DefaultPassword)
	v.SetDefault(KeyDeleteProjects, false)
	return v
}

// LoadConnection resolves the connection settings from v. When propertiesFile
// is set, it is read first so that flags and environment still take precedence.
func LoadConnection(v *viper.Viper, propertiesFile string) (*Connection, error) {
	if propertiesFile != "" {
		v.SetConfigFile(propertiesFile)
		v.SetConfigType("properties")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read properties file: %w", err)
		}
	}

	conn := &Connection{
		URL:            strings.TrimSpace(v.GetString(KeyURL)),
		Username:       v.GetString(KeyUsername),
		Password:       v.GetString(KeyPassword),
		DeleteProjects: v.GetBool(KeyDeleteProjects),
	}

	if err := conn.Validate(); err != nil {
		return nil, err
	}
	return conn, nil
}

// Validate checks that the URL is absolute http(s) and credentials are present.
func (c *Connection) Validate() error {
	if c.URL == "" {
		return invalid(KeyURL, "must not be empty")
	}
	u, err := url.Parse(c.URL)
	if err != nil {
		return invalid(KeyURL, "%v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return invalid(KeyURL, "scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return invalid(KeyURL, "missing host in %q", c.URL)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return invalid(KeyURL, "must not carry a query or fragment")
	}
	if c.Username == "" {
		return invalid(KeyUsername, "must not be empty")
	}
	if c.Password == "" {
		return invalid(KeyPassword, "must not be empty")
	}
	return nil
}

// Redacted returns a printable description without the password.
func (c *Connection) Redacted() string {
	return fmt.Sprintf("%s (user %s)", c.URL, c.Username)
}
