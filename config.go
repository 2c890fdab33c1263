package fluentq

import (
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
)

const (
	DefaultPort    = 3306
	DefaultCharset = "utf8mb4"
)

// Config carries everything needed to reach a MySQL server. The zero value
// of Port and Charset fall back to DefaultPort and DefaultCharset.
type Config struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Charset  string `yaml:"charset"`

	// Pool knobs, applied to the sql.DB after a successful connect. Zero
	// values leave the database/sql defaults in place.
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time"`
}

func (c Config) withDefaults() Config {
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.Charset == "" {
		c.Charset = DefaultCharset
	}
	return c
}

func (c Config) addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DSN renders the data source name for the configuration. Client-side
// interpolation stays disabled so every value travels to the server inside a
// prepared statement, and time columns come back as time.Time.
func (c Config) DSN() string {
	c = c.withDefaults()

	mc := mysql.NewConfig()
	mc.User = c.Username
	mc.Passwd = c.Password
	mc.Net = "tcp"
	mc.Addr = c.addr()
	mc.DBName = c.Database
	mc.ParseTime = true
	mc.InterpolateParams = false
	mc.Params = map[string]string{"charset": c.Charset}

	return mc.FormatDSN()
}
