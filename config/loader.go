package config

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kbukum/hostkit/logger"
)

// FileSystem is the file access LoadConfig needs. Tests swap it for a map.
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// OSFileSystem reads from the real file system.
type OSFileSystem struct{}

func (OSFileSystem) Exists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}

func (OSFileSystem) LoadEnv(p string) error {
	return godotenv.Load(p)
}

// ResolvedFiles are the files one LoadConfig call reads. Empty means none.
type ResolvedFiles struct {
	ConfigFile string
	EnvFile    string
}

// Resolver locates the config.yml and .env files of a service.
type Resolver struct {
	FileSystem FileSystem
}

// Resolve returns explicit paths unchanged and searches for the rest. A
// service named "acme-hostd" is also looked up as "hostd".
func (r *Resolver) Resolve(service string, explicit ResolvedFiles) ResolvedFiles {
	files := explicit
	names := serviceNames(service)
	if files.ConfigFile == "" {
		files.ConfigFile = r.first(configCandidates(names))
	}
	if files.EnvFile == "" {
		files.EnvFile = r.first(envCandidates(service, names))
	}
	return files
}

func (r *Resolver) first(candidates []string) string {
	for _, c := range candidates {
		if r.FileSystem.Exists(c) {
			return c
		}
	}
	return ""
}

func serviceNames(service string) []string {
	if idx := strings.LastIndex(service, "-"); idx != -1 && idx < len(service)-1 {
		return []string{service, service[idx+1:]}
	}
	return []string{service}
}

// upward lists dir relative to the working directory and its two parents.
func upward(dir string) []string {
	return []string{
		"./" + dir,
		"../" + dir,
		"../../" + dir,
	}
}

func configCandidates(names []string) []string {
	var out []string
	for _, base := range []string{"./", "../", "../../"} {
		for _, n := range names {
			out = append(out, base+path.Join("cmd", n, "config.yml"))
		}
	}
	return append(out, "./config/config.yml", "../config/config.yml", "./config.yml")
}

// envCandidates prefers .env.<service> over .env, each searched from the
// most specific directory outwards.
func envCandidates(service string, names []string) []string {
	var dirs []string
	for _, n := range names {
		dirs = append(dirs, upward("cmd/"+n)...)
		dirs = append(dirs, upward("config/"+n)...)
	}
	dirs = append(dirs, upward("config")...)
	dirs = append(dirs, ".", "..", "../..")

	var out []string
	for _, file := range []string{".env." + service, ".env"} {
		out = append(out, file)
		for _, d := range dirs {
			out = append(out, d+"/"+file)
		}
	}
	return removeDuplicates(out)
}

// LoaderConfig collects LoadConfig options.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string
	EnvFile    string
	// EnvPrefix restricts env binding to variables starting with
	// EnvPrefix + "_", with the prefix stripped. Empty binds every variable.
	EnvPrefix string
}

// LoaderOption configures LoadConfig.
type LoaderOption func(*LoaderConfig)

// WithFileSystem replaces the file system used for lookups.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile skips the config.yml search.
func WithConfigFile(p string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = p }
}

// WithEnvFile skips the .env search.
func WithEnvFile(p string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = p }
}

// WithEnvPrefix only binds variables named PREFIX_*.
func WithEnvPrefix(prefix string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvPrefix = strings.ToUpper(strings.TrimSuffix(prefix, "_")) }
}

// LoadConfig fills cfg for a service. Values already set on cfg act as
// defaults; the YAML file overrides them and environment variables, including
// those from the .env file, override both. Missing files are not an error.
func LoadConfig(service string, cfg interface{}, opts ...LoaderOption) error {
	lc := LoaderConfig{FileSystem: OSFileSystem{}}
	for _, opt := range opts {
		opt(&lc)
	}

	resolver := &Resolver{FileSystem: lc.FileSystem}
	files := resolver.Resolve(service, ResolvedFiles{ConfigFile: lc.ConfigFile, EnvFile: lc.EnvFile})
	log := logger.WithComponent("config")

	v := viper.New()
	if files.ConfigFile != "" && lc.FileSystem.Exists(files.ConfigFile) {
		v.SetConfigFile(files.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			log.Warn("Failed to read config file", logger.Fields("file", files.ConfigFile, logger.FieldError, err.Error()))
		} else {
			log.Debug("Loaded config file", logger.Fields("file", files.ConfigFile))
		}
	}

	if files.EnvFile != "" && lc.FileSystem.Exists(files.EnvFile) {
		if err := lc.FileSystem.LoadEnv(files.EnvFile); err != nil {
			log.Warn("Failed to load env file", logger.Fields("file", files.EnvFile, logger.FieldError, err.Error()))
		}
	}
	bindEnv(v, lc.EnvPrefix, os.Environ())

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config for service %s: %w", service, err)
	}
	return nil
}

// bindEnv sets every key variant of each KEY=value pair on v so nested
// sections pick them up without a registered key list.
func bindEnv(v *viper.Viper, prefix string, environ []string) {
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		if prefix != "" {
			var found bool
			if key, found = strings.CutPrefix(key, prefix+"_"); !found || key == "" {
				continue
			}
		}
		for _, variant := range generateEnvKeyVariants(key) {
			v.Set(variant, value)
		}
	}
}

// generateEnvKeyVariants maps an env name to the keys it may address: the
// flat name, the fully dotted name and every split into a dotted section
// path plus an underscored field.
//
//	LIFECYCLE_REPORT_ROUTES -> lifecycle_report_routes, lifecycle.report.routes,
//	                           lifecycle.report_routes, lifecycle_report.routes
func generateEnvKeyVariants(envKey string) []string {
	lower := strings.ToLower(envKey)
	parts := strings.Split(lower, "_")
	if len(parts) == 1 {
		return []string{lower}
	}

	variants := []string{lower, strings.Join(parts, ".")}
	for i := 1; i < len(parts); i++ {
		variants = append(variants, strings.Join(parts[:i], ".")+"."+strings.Join(parts[i:], "_"))
		variants = append(variants, strings.Join(parts[:i], "_")+"."+strings.Join(parts[i:], "."))
	}
	return removeDuplicates(variants)
}

func removeDuplicates(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
