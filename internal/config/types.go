package config

import "strings"

// Config 是 growthcalc 的主配置载体。
type Config struct {
	App        AppConfig        `toml:"app"`
	Data       DataConfig       `toml:"data"`
	Calculator CalculatorConfig `toml:"calculator"`
}

type AppConfig struct {
	Env      string `toml:"env"`
	LogLevel string `toml:"log_level"`
	HTTPAddr string `toml:"http_addr"`
	LogPath  string `toml:"log_path"`
}

// DataConfig 描述参考表数据来源。Tables are read-only after load; when
// db_path is set the lookups are served from the sqlite store instead of
// the embedded tables.
type DataConfig struct {
	ManifestPath string `toml:"manifest_path"` // external manifest; empty = embedded tables
	DBPath       string `toml:"db_path"`       // sqlite store; empty = in-memory catalog
	Seed         bool   `toml:"seed"`          // force re-seeding the sqlite store
}

// CalculatorConfig 控制默认标准与批量并发。
type CalculatorConfig struct {
	DefaultStandard string `toml:"default_standard"` // AUTO | CDC | WHO
	BatchWorkers    int    `toml:"batch_workers"`
}

// keySet 用于追踪配置文件中显式设置的字段路径。
type keySet map[string]struct{}

func (k keySet) mark(path string) {
	path = strings.ToLower(strings.TrimSpace(path))
	if path == "" {
		return
	}
	k[path] = struct{}{}
}

func (k keySet) isSet(path string) bool {
	if len(k) == 0 {
		return false
	}
	path = strings.ToLower(strings.TrimSpace(path))
	if path == "" {
		return false
	}
	_, ok := k[path]
	return ok
}

// fieldDefault 描述单个字段的默认值设置规则。
type fieldDefault struct {
	key   string
	need  func() bool
	apply func()
}

func applyFieldDefaults(keys keySet, fields ...fieldDefault) {
	for _, f := range fields {
		if keys.isSet(f.key) {
			continue
		}
		if f.need == nil || f.need() {
			f.apply()
		}
	}
}

func stringFieldDefault(key string, target *string, fallback string) fieldDefault {
	return fieldDefault{
		key:   key,
		need:  func() bool { return strings.TrimSpace(*target) == "" },
		apply: func() { *target = fallback },
	}
}
