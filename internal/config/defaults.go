package config

// 默认值常量
const (
	defaultAppEnv       = "dev"
	defaultAppLogLevel  = "info"
	defaultAppHTTPAddr  = ":8642"
	defaultStandard     = "AUTO"
	defaultBatchWorkers = 4
	maxBatchWorkers     = 64
)

// applyDefaults 为所有子配置应用默认值。
func (c *Config) applyDefaults(keys keySet) {
	c.App.applyDefaults(keys)
	c.Calculator.applyDefaults(keys)
}

func (a *AppConfig) applyDefaults(keys keySet) {
	if a == nil {
		return
	}
	applyFieldDefaults(keys,
		stringFieldDefault("app.env", &a.Env, defaultAppEnv),
		stringFieldDefault("app.log_level", &a.LogLevel, defaultAppLogLevel),
		stringFieldDefault("app.http_addr", &a.HTTPAddr, defaultAppHTTPAddr),
	)
}

func (c *CalculatorConfig) applyDefaults(keys keySet) {
	if c == nil {
		return
	}
	applyFieldDefaults(keys,
		stringFieldDefault("calculator.default_standard", &c.DefaultStandard, defaultStandard),
		fieldDefault{
			key:   "calculator.batch_workers",
			need:  func() bool { return c.BatchWorkers <= 0 },
			apply: func() { c.BatchWorkers = defaultBatchWorkers },
		},
	)
}
