package envreader

import (
	"fmt"
	"io/ioutil"
	"strconv"

	"github.com/gobuffalo/envy"
	"github.com/spf13/viper"
)

//IoutilInterface is the part of ioutil an EnvReader reads files with.
type IoutilInterface interface {
	ReadFile(filename string) ([]byte, error)
}

type osIoutil struct{}

func (osIoutil) ReadFile(filename string) ([]byte, error) { return ioutil.ReadFile(filename) }

//EnvReader reads configuration from the environment (and a .env file, through
//envy), falling back to an optional config file. Malformed keys and files
//that cannot be read are collected in MissingKeys and set Errors.
type EnvReader struct {
	MissingKeys []string
	Errors      bool
	ConfigError error
	config      *viper.Viper
	fs          IoutilInterface
}

//EnvReaderOption configures an EnvReader.
type EnvReaderOption func(*EnvReader)

//WithConfigFile reads keys missing from the environment from a config file.
//Any format viper understands works (yaml, toml, json, ...). A file that
//cannot be read sets ConfigError and Errors.
func WithConfigFile(path string) EnvReaderOption {
	return func(r *EnvReader) {
		v := viper.New()
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			r.Errors = true
			r.ConfigError = fmt.Errorf("could not read config file %s: %v", path, err)
			return
		}
		r.config = v
	}
}

//WithFilesystem replaces the filesystem GetFromFile reads from.
func WithFilesystem(fs IoutilInterface) EnvReaderOption {
	return func(r *EnvReader) {
		r.fs = fs
	}
}

//NewEnvReader creates an EnvReader.
func NewEnvReader(opts ...EnvReaderOption) *EnvReader {
	r := &EnvReader{fs: osIoutil{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *EnvReader) lookup(key string) (string, bool) {
	// an empty variable counts as unset
	if value, err := envy.MustGet(key); err == nil && value != "" {
		return value, true
	}
	if r.config != nil && r.config.IsSet(key) {
		return r.config.GetString(key), true
	}
	return "", false
}

func (r *EnvReader) missing(key string) {
	r.Errors = true
	r.MissingKeys = append(r.MissingKeys, key)
}

func (r *EnvReader) GetEnvOpt(key string) string {
	value, _ := r.lookup(key)
	return value
}

//GetEnvOptDefault returns def when key is not set.
func (r *EnvReader) GetEnvOptDefault(key string, def string) string {
	if value, ok := r.lookup(key); ok {
		return value
	}
	return def
}
func (r *EnvReader) GetFromFile(path string) string {
	content, err := r.fs.ReadFile(path)
	if err != nil {
		r.missing("file at: " + path)
		return ""
	}
	return string(content)
}

//GetEnvBoolOpt reads an optional bool. A set value that is not a bool
//counts as missing.
func (r *EnvReader) GetEnvBoolOpt(key string) bool {
	text, ok := r.lookup(key)
	if !ok {
		return false
	}
	value, err := strconv.ParseBool(text)
	if err != nil {
		r.missing(key)
		return false
	}
	return value
}

//GetEnvIntOpt reads an optional integer, returning def when the key is
//unset. A set value that is not an integer counts as missing.
func (r *EnvReader) GetEnvIntOpt(key string, def int64) int64 {
	text, ok := r.lookup(key)
	if !ok {
		return def
	}
	value, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		r.missing(key)
		return def
	}
	return value
}
